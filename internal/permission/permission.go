// Package permission models the dotted permission keys of the admin UI as
// typed values, and answers whether a user holds one.
package permission

import (
	"fmt"
	"regexp"
	"strings"
)

// Action is the verb part of a permission key.
type Action string

const (
	Access Action = "access"
	View   Action = "view"
	Create Action = "create"
	Edit   Action = "edit"
	Delete Action = "delete"
)

// Actions lists every verb in display order.
var Actions = []Action{Access, View, Create, Edit, Delete}

// Valid reports whether a is one of the known verbs.
func (a Action) Valid() bool {
	switch a {
	case Access, View, Create, Edit, Delete:
		return true
	}
	return false
}

// Resource is the entity part of a permission key, optionally dotted with a
// sub-entity ("ecosystem.market").
type Resource string

// Key is a single permission, rendered as verb.entity[.subentity].
type Key struct {
	Action   Action
	Resource Resource
}

// Pattern is the accepted shape of a rendered key.
var Pattern = regexp.MustCompile(`^(access|view|create|edit|delete)\.[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)*$`)

func (k Key) String() string {
	if k.Action == "" || k.Resource == "" {
		return ""
	}
	return string(k.Action) + "." + string(k.Resource)
}

// IsZero reports whether the key is unset.
func (k Key) IsZero() bool { return k.Action == "" && k.Resource == "" }

// Valid reports whether the key renders to the accepted pattern.
func (k Key) Valid() bool { return Pattern.MatchString(k.String()) }

// Parse reads a rendered key.
func Parse(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if !Pattern.MatchString(s) {
		return Key{}, fmt.Errorf("invalid permission key %q", s)
	}
	verb, rest, _ := strings.Cut(s, ".")
	return Key{Action: Action(verb), Resource: Resource(rest)}, nil
}

// Set is the permission descriptor of one entity.
type Set struct {
	Access Key
	View   Key
	Create Key
	Edit   Key
	Delete Key
}

// For builds the conventional set of a resource.
func For(r Resource) Set {
	return Set{
		Access: Key{Access, r},
		View:   Key{View, r},
		Create: Key{Create, r},
		Edit:   Key{Edit, r},
		Delete: Key{Delete, r},
	}
}

// ByAction returns the key bound to an action.
func (s Set) ByAction(a Action) Key {
	switch a {
	case Access:
		return s.Access
	case View:
		return s.View
	case Create:
		return s.Create
	case Edit:
		return s.Edit
	case Delete:
		return s.Delete
	}
	return Key{}
}

// Keys returns the five keys in action order.
func (s Set) Keys() []Key {
	return []Key{s.Access, s.View, s.Create, s.Edit, s.Delete}
}
