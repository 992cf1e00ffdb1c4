package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_String(t *testing.T) {
	assert.Equal(t, "access.ecosystem.market", Key{Access, ResourceMarket}.String())
	assert.Equal(t, "", Key{}.String())
	assert.Equal(t, "", Key{Action: View}.String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{"access.user", Key{Access, ResourceUser}, false},
		{"edit.ext.copy_trading.leader", Key{Edit, ResourceCopyTradingLeader}, false},
		{" view.role ", Key{View, ResourceRole}, false},
		{"read.user", Key{}, true},
		{"access.", Key{}, true},
		{"access.User", Key{}, true},
		{"access..user", Key{}, true},
		{"", Key{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFor_BindsEveryAction(t *testing.T) {
	s := For(ResourceLedger)
	for _, a := range Actions {
		k := s.ByAction(a)
		assert.Equal(t, a, k.Action)
		assert.Equal(t, ResourceLedger, k.Resource)
		assert.True(t, k.Valid(), k.String())
	}
	assert.Len(t, s.Keys(), 5)
}

func TestAllowed(t *testing.T) {
	u := &User{ID: "u1", Grants: NewGrants("access.user", "view.user", "")}

	assert.True(t, Allowed(u, Key{Access, ResourceUser}))
	assert.False(t, Allowed(u, Key{Delete, ResourceUser}))
	assert.False(t, Allowed(u, Key{}))
	assert.False(t, Allowed(nil, Key{Access, ResourceUser}))
	assert.False(t, Allowed(&User{ID: "u2"}, Key{Access, ResourceUser}))
}

func TestSet_Flags(t *testing.T) {
	s := For(ResourceRole)

	full := &User{ID: "a", Grants: NewGrants("access.role", "view.role", "create.role", "edit.role", "delete.role")}
	assert.Equal(t, Flags{true, true, true, true, true}, s.Flags(full))

	partial := &User{ID: "b", Grants: NewGrants("access.role", "edit.role")}
	assert.Equal(t, Flags{Access: true, Edit: true}, s.Flags(partial))

	noAccess := &User{ID: "c", Grants: NewGrants("edit.role", "delete.role")}
	assert.Equal(t, Flags{}, s.Flags(noAccess))
}

func TestGrants_List(t *testing.T) {
	g := NewGrants("view.user", "access.user", "access.admin")
	assert.Equal(t, []string{"access.admin", "access.user", "view.user"}, g.List())
}

func TestStaticResolver(t *testing.T) {
	r := StaticResolver{"admin": {ID: "admin", Grants: NewGrants("access.admin")}}

	u, err := r.Resolve(t.Context(), "admin")
	require.NoError(t, err)
	assert.True(t, Allowed(u, Key{Access, ResourceAdmin}))

	u, err = r.Resolve(t.Context(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", u.ID)
	assert.Empty(t, u.Grants)
}
