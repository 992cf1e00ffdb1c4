package permission

import (
	"context"
	"sort"
)

// Grants is a user's resolved permission set.
type Grants map[string]struct{}

// NewGrants builds grants from rendered keys. Blank entries are ignored.
func NewGrants(keys ...string) Grants {
	g := make(Grants, len(keys))
	for _, k := range keys {
		if k != "" {
			g[k] = struct{}{}
		}
	}
	return g
}

// Has is a plain membership test.
func (g Grants) Has(k Key) bool {
	s := k.String()
	if s == "" {
		return false
	}
	_, ok := g[s]
	return ok
}

// List returns the granted keys sorted.
func (g Grants) List() []string {
	out := make([]string, 0, len(g))
	for k := range g {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// User is the authenticated principal as far as the gate is concerned.
type User struct {
	ID     string `json:"id"`
	Role   string `json:"role,omitempty"`
	Grants Grants `json:"-"`
}

// Allowed is the gate: nil users and absent keys are denied.
func Allowed(u *User, k Key) bool {
	if u == nil {
		return false
	}
	return u.Grants.Has(k)
}

// Flags is the set of action affordances a user gets on one entity.
type Flags struct {
	Access bool `json:"access"`
	View   bool `json:"view"`
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// Flags evaluates every key of the set for u. Without access, every other
// flag is false too.
func (s Set) Flags(u *User) Flags {
	if !Allowed(u, s.Access) {
		return Flags{}
	}
	return Flags{
		Access: true,
		View:   Allowed(u, s.View),
		Create: Allowed(u, s.Create),
		Edit:   Allowed(u, s.Edit),
		Delete: Allowed(u, s.Delete),
	}
}

// Resolver loads the principal of a user id, grants included.
type Resolver interface {
	Resolve(ctx context.Context, userID string) (*User, error)
}

// StaticResolver serves fixed principals. Unknown ids resolve to a user with
// no grants.
type StaticResolver map[string]*User

func (r StaticResolver) Resolve(_ context.Context, userID string) (*User, error) {
	if u, ok := r[userID]; ok {
		return u, nil
	}
	return &User{ID: userID, Grants: Grants{}}, nil
}
