// Package models is the catalog of entity models the backend has registered.
// Descriptors reference models by name; the aggregation endpoint builds SQL only
// from identifiers found here.
package models

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Field types understood by the store dialects.
const (
	TypeString    = "string"
	TypeText      = "text"
	TypeInteger   = "integer"
	TypeDecimal   = "decimal"
	TypeBoolean   = "boolean"
	TypeTimestamp = "timestamp"
	TypeUUID      = "uuid"
	TypeEnum      = "enum"
	TypeJSON      = "json"
)

var validTypes = map[string]bool{
	TypeString: true, TypeText: true, TypeInteger: true, TypeDecimal: true,
	TypeBoolean: true, TypeTimestamp: true, TypeUUID: true, TypeEnum: true, TypeJSON: true,
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Field struct {
	Name   string   `yaml:"name" json:"name"`
	Type   string   `yaml:"type" json:"type"`
	Values []string `yaml:"values,omitempty" json:"values,omitempty"`
}

// IsNumeric reports whether SUM applies to the field.
func (f Field) IsNumeric() bool {
	return f.Type == TypeInteger || f.Type == TypeDecimal
}

type Model struct {
	Name      string  `yaml:"name" json:"name"`
	Table     string  `yaml:"table" json:"table"`
	Timestamp string  `yaml:"timestamp,omitempty" json:"timestamp,omitempty"`
	Fields    []Field `yaml:"fields" json:"fields"`

	byName map[string]int
}

// Field looks up a top-level field.
func (m *Model) Field(name string) (Field, bool) {
	i, ok := m.byName[name]
	if !ok {
		return Field{}, false
	}
	return m.Fields[i], true
}

// HasField reports whether name is a top-level field.
func (m *Model) HasField(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// HasPath reports whether a dotted path is addressable on the model: either a
// plain field, or a path rooted at a json field.
func (m *Model) HasPath(path string) bool {
	root, rest, nested := strings.Cut(path, ".")
	f, ok := m.Field(root)
	if !ok {
		return false
	}
	if !nested {
		return true
	}
	return f.Type == TypeJSON && rest != ""
}

type file struct {
	Models []Model `yaml:"models"`
}

// Catalog is safe for concurrent use. Models handed out are never mutated;
// Replace swaps the whole set on reload.
type Catalog struct {
	mu     sync.RWMutex
	models map[string]*Model
	names  []string
}

// Load reads the catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read models: %w", err)
	}
	return Parse(data)
}

// Parse reads the catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse models: %w", err)
	}
	return New(f.Models)
}

// New validates the models and builds a catalog.
func New(list []Model) (*Catalog, error) {
	c := &Catalog{models: make(map[string]*Model, len(list))}
	tables := make(map[string]string, len(list))

	for i := range list {
		m := list[i]
		if !identRe.MatchString(m.Name) {
			return nil, fmt.Errorf("model %q: invalid name", m.Name)
		}
		if _, dup := c.models[m.Name]; dup {
			return nil, fmt.Errorf("model %q: declared twice", m.Name)
		}
		if !identRe.MatchString(m.Table) {
			return nil, fmt.Errorf("model %s: invalid table %q", m.Name, m.Table)
		}
		if other, dup := tables[m.Table]; dup {
			return nil, fmt.Errorf("model %s: table %s already used by %s", m.Name, m.Table, other)
		}
		tables[m.Table] = m.Name

		m.byName = make(map[string]int, len(m.Fields))
		for j, f := range m.Fields {
			if !identRe.MatchString(f.Name) {
				return nil, fmt.Errorf("model %s: invalid field name %q", m.Name, f.Name)
			}
			if !validTypes[f.Type] {
				return nil, fmt.Errorf("model %s: field %s has unknown type %q", m.Name, f.Name, f.Type)
			}
			if f.Type == TypeEnum && len(f.Values) == 0 {
				return nil, fmt.Errorf("model %s: enum field %s has no values", m.Name, f.Name)
			}
			if _, dup := m.byName[f.Name]; dup {
				return nil, fmt.Errorf("model %s: field %s declared twice", m.Name, f.Name)
			}
			m.byName[f.Name] = j
		}

		if m.Timestamp == "" && m.HasField("createdAt") {
			m.Timestamp = "createdAt"
		}
		if m.Timestamp != "" {
			ts, ok := m.Field(m.Timestamp)
			if !ok || ts.Type != TypeTimestamp {
				return nil, fmt.Errorf("model %s: timestamp %q is not a timestamp field", m.Name, m.Timestamp)
			}
		}

		c.models[m.Name] = &m
		c.names = append(c.names, m.Name)
	}
	sort.Strings(c.names)
	return c, nil
}

// Replace takes over the models of next.
func (c *Catalog) Replace(next *Catalog) {
	next.mu.RLock()
	models, names := next.models, next.names
	next.mu.RUnlock()

	c.mu.Lock()
	c.models, c.names = models, names
	c.mu.Unlock()
}

// Get returns the named model, or nil.
func (c *Catalog) Get(name string) *Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.models[name]
}

func (c *Catalog) Has(name string) bool {
	return c.Get(name) != nil
}

// Names returns every registered model name, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// All returns the models in name order.
func (c *Catalog) All() []*Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Model, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.models[n])
	}
	return out
}
