package store

import (
	"context"
	"errors"
	"fmt"

	"datatable-backend/internal/permission"
)

// SyncPermissions inserts the given permission keys, skipping those that
// already exist, and returns how many were added.
func (s *Store) SyncPermissions(ctx context.Context, keys []string) (int64, error) {
	var added int64
	for _, k := range keys {
		pb := s.Dialect.NewParamBuilder()
		n, err := Exec(ctx, s.DB,
			fmt.Sprintf("INSERT INTO permissions (name) VALUES (%s) ON CONFLICT (name) DO NOTHING", pb.Add(k)),
			pb.Params()...)
		if err != nil {
			return added, fmt.Errorf("sync permission %s: %w", k, MapError(s.Dialect, err))
		}
		added += n
	}
	return added, nil
}

// GrantRole attaches existing permission keys to a role.
func (s *Store) GrantRole(ctx context.Context, roleID int64, keys ...string) error {
	for _, k := range keys {
		pb := s.Dialect.NewParamBuilder()
		query := fmt.Sprintf(`INSERT INTO role_permissions (role_id, permission_id)
SELECT %s, id FROM permissions WHERE name = %s
ON CONFLICT DO NOTHING`, pb.Add(roleID), pb.Add(k))
		if _, err := Exec(ctx, s.DB, query, pb.Params()...); err != nil {
			return fmt.Errorf("grant %s: %w", k, err)
		}
	}
	return nil
}

// PermissionResolver loads a user's grants through users → roles →
// role_permissions. Members of the super role receive every known key.
type PermissionResolver struct {
	store     *Store
	superRole string
}

func NewPermissionResolver(s *Store, superRole string) *PermissionResolver {
	return &PermissionResolver{store: s, superRole: superRole}
}

func (r *PermissionResolver) Resolve(ctx context.Context, userID string) (*permission.User, error) {
	d := r.store.Dialect
	pb := d.NewParamBuilder()
	row, err := QueryRow(ctx, r.store.DB, fmt.Sprintf(
		`SELECT u.%s AS role_id, r.%s AS role FROM %s u LEFT JOIN %s r ON r.%s = u.%s WHERE u.%s = %s`,
		QuoteIdent("roleId"), QuoteIdent("name"),
		QuoteIdent("users"), QuoteIdent("roles"),
		QuoteIdent("id"), QuoteIdent("roleId"),
		QuoteIdent("id"), pb.Add(userID),
	), pb.Params()...)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("resolve user %s: %w", userID, err)
	}

	u := &permission.User{ID: userID, Grants: permission.NewGrants()}
	role, _ := row["role"].(string)
	u.Role = role
	if row["role_id"] == nil {
		return u, nil
	}

	var query string
	pb = d.NewParamBuilder()
	if r.superRole != "" && role == r.superRole {
		query = "SELECT name FROM permissions"
	} else {
		query = fmt.Sprintf(`SELECT p.name FROM role_permissions rp
JOIN permissions p ON p.id = rp.permission_id
WHERE rp.role_id = %s`, pb.Add(row["role_id"]))
	}
	rows, err := QueryRows(ctx, r.store.DB, query, pb.Params()...)
	if err != nil {
		return nil, fmt.Errorf("load permissions of %s: %w", userID, err)
	}
	for _, p := range rows {
		if name, ok := p["name"].(string); ok {
			u.Grants[name] = struct{}{}
		}
	}
	return u, nil
}
