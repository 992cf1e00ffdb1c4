// Package i18n resolves typed translation keys against YAML locale catalogs.
//
// Keys follow the namespace.path.field convention and are generated from the
// default locale, so a misspelled key is a compile error rather than a raw key
// showing up in the UI. Lookups never fail: a key missing from the requested
// locale falls back to the default locale and then to a humanized form of the
// key itself.
package i18n

//go:generate go run ../../cmd/i18ngen -in ../../locales/en.yaml -out keys_gen.go

import (
	"strings"

	"golang.org/x/text/language"
)

// Key is a dotted translation key.
type Key string

// String returns the raw key.
func (k Key) String() string { return string(k) }

// Translator resolves keys for a single negotiated locale.
type Translator interface {
	T(key Key) string
	Locale() string
}

type translator struct {
	tag      language.Tag
	primary  map[Key]string
	fallback map[Key]string
}

func (t *translator) T(key Key) string {
	if key == "" {
		return ""
	}
	if v, ok := t.primary[key]; ok && v != "" {
		return v
	}
	if v, ok := t.fallback[key]; ok && v != "" {
		return v
	}
	return Humanize(key)
}

func (t *translator) Locale() string { return t.tag.String() }

// Humanize renders the last segment of a key as text ("common.created_at" ->
// "Created at").
func Humanize(key Key) string {
	s := string(key)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
