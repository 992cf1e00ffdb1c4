package store

import (
	"context"
	"fmt"
	"strings"

	"datatable-backend/internal/models"
)

// Bootstrap creates the permission tables and one table per catalog model.
// Existing tables are left untouched.
func (s *Store) Bootstrap(ctx context.Context, cat *models.Catalog) error {
	for _, m := range cat.All() {
		if _, err := s.DB.ExecContext(ctx, createTableSQL(s.Dialect, m)); err != nil {
			return fmt.Errorf("bootstrap table %s: %w", m.Table, err)
		}
	}
	for _, stmt := range s.permissionTablesSQL() {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap permission tables: %w", err)
		}
	}
	return nil
}

func createTableSQL(d Dialect, m *models.Model) string {
	cols := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		cols[i] = "    " + ColumnDDL(d, f)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)", QuoteIdent(m.Table), strings.Join(cols, ",\n"))
}

func (s *Store) permissionTablesSQL() []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS permissions (
    id   %s,
    name TEXT NOT NULL UNIQUE
)`, s.Dialect.SerialKey()),
		`CREATE TABLE IF NOT EXISTS role_permissions (
    role_id       INTEGER NOT NULL,
    permission_id INTEGER NOT NULL REFERENCES permissions(id) ON DELETE CASCADE,
    PRIMARY KEY (role_id, permission_id)
)`,
	}
}
