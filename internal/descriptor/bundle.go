package descriptor

import (
	"sort"
	"sync"

	"datatable-backend/internal/i18n"
	"datatable-backend/internal/permission"
)

// Bundle is everything the DataTable needs for one entity page.
type Bundle struct {
	Scope       string             `json:"scope"`
	Entity      string             `json:"entity"`
	Model       string             `json:"model"`
	Title       i18n.Key           `json:"title"`
	Description i18n.Key           `json:"description,omitempty"`
	Endpoint    string             `json:"endpoint"`
	Permissions permission.Set     `json:"-"`
	Columns     []ColumnDefinition `json:"columns"`
	Form        FormConfig         `json:"form"`
	Analytics   AnalyticsConfig    `json:"analytics,omitempty"`
	// VirtualKeys are form keys that map to neither a column nor a model
	// field, such as relation id lists.
	VirtualKeys []string `json:"virtualKeys,omitempty"`
}

// ID is scope/entity, e.g. "admin/crm/user".
func (b *Bundle) ID() string {
	return b.Scope + "/" + b.Entity
}

// EndpointFor returns the REST collection path of an entity.
func EndpointFor(scope, entity string) string {
	return "/api/" + scope + "/" + entity
}

// Column finds a column by key.
func (b *Bundle) Column(key string) (ColumnDefinition, bool) {
	for _, c := range b.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return ColumnDefinition{}, false
}

// DeclaredKeys returns the column keys, compound sub-keys and virtual keys.
func (b *Bundle) DeclaredKeys() map[string]bool {
	keys := make(map[string]bool, len(b.Columns)+len(b.VirtualKeys))
	for _, c := range b.Columns {
		keys[c.Key] = true
		for _, k := range c.CompoundKeys() {
			keys[k] = true
		}
	}
	for _, k := range b.VirtualKeys {
		keys[k] = true
	}
	return keys
}

// Registry holds the loaded bundles keyed by ID.
type Registry struct {
	mu      sync.RWMutex
	bundles map[string]*Bundle
}

func NewRegistry() *Registry {
	return &Registry{bundles: make(map[string]*Bundle)}
}

// Get returns the bundle with the given ID, or nil.
func (r *Registry) Get(id string) *Bundle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bundles[id]
}

// All returns every bundle ordered by ID.
func (r *Registry) All() []*Bundle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Bundle, 0, len(r.bundles))
	for _, b := range r.bundles {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bundles)
}

// Load replaces all bundles in the registry.
// Called during startup and on admin reload.
func (r *Registry) Load(bundles []*Bundle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bundles = make(map[string]*Bundle, len(bundles))
	for _, b := range bundles {
		r.bundles[b.ID()] = b
	}
}

// PermissionKeys returns every distinct permission key the bundles reference,
// sorted.
func PermissionKeys(bundles []*Bundle) []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range bundles {
		for _, k := range b.Permissions.Keys() {
			s := k.String()
			if s != "" && !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}
