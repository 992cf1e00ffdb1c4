package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Catalog holds the messages of every loaded locale.
type Catalog struct {
	mu       sync.RWMutex
	fallback language.Tag
	tags     []language.Tag
	messages map[language.Tag]map[Key]string
	matcher  language.Matcher
}

// NewCatalog builds a catalog from flat key maps, keyed by locale tag.
// The default locale must be present.
func NewCatalog(defaultLocale string, locales map[string]map[string]string) (*Catalog, error) {
	def, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("parse default locale %q: %w", defaultLocale, err)
	}

	c := &Catalog{
		fallback: def,
		messages: make(map[language.Tag]map[Key]string, len(locales)),
	}
	for name, flat := range locales {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", name, err)
		}
		msgs := make(map[Key]string, len(flat))
		for k, v := range flat {
			msgs[Key(k)] = v
		}
		c.messages[tag] = msgs
	}
	if _, ok := c.messages[def]; !ok {
		return nil, fmt.Errorf("default locale %q has no catalog", defaultLocale)
	}

	// The matcher prefers the first tag, so the default locale goes first.
	c.tags = append(c.tags, def)
	others := make([]language.Tag, 0, len(c.messages)-1)
	for tag := range c.messages {
		if tag != def {
			others = append(others, tag)
		}
	}
	sort.Slice(others, func(i, j int) bool { return others[i].String() < others[j].String() })
	c.tags = append(c.tags, others...)
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// LoadDir reads every <locale>.yaml file in dir.
func LoadDir(dir, defaultLocale string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read locale dir: %w", err)
	}

	locales := make(map[string]map[string]string)
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		flat := make(map[string]string)
		flattenInto("", tree, flat)
		locales[strings.TrimSuffix(e.Name(), ext)] = flat
	}
	return NewCatalog(defaultLocale, locales)
}

func flattenInto(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flattenInto(full, val, out)
		case string:
			out[full] = val
		case nil:
		default:
			out[full] = fmt.Sprint(val)
		}
	}
}

// For negotiates a translator from an Accept-Language header or a bare
// locale tag. Unknown or malformed input yields the default locale.
func (c *Catalog) For(accept string) Translator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tag := c.fallback
	if accept = strings.TrimSpace(accept); accept != "" {
		if prefs, _, err := language.ParseAcceptLanguage(accept); err == nil && len(prefs) > 0 {
			_, idx, conf := c.matcher.Match(prefs...)
			if conf != language.No {
				tag = c.tags[idx]
			}
		}
	}
	return &translator{
		tag:      tag,
		primary:  c.messages[tag],
		fallback: c.messages[c.fallback],
	}
}

// Replace takes over the locales of next. Translators already handed out
// keep the messages they were built with.
func (c *Catalog) Replace(next *Catalog) {
	next.mu.RLock()
	fallback, tags, messages, matcher := next.fallback, next.tags, next.messages, next.matcher
	next.mu.RUnlock()

	c.mu.Lock()
	c.fallback, c.tags, c.messages, c.matcher = fallback, tags, messages, matcher
	c.mu.Unlock()
}

// Default returns the translator of the default locale.
func (c *Catalog) Default() Translator {
	return c.For("")
}

// Locales lists the loaded locale tags, default first.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.tags))
	for i, t := range c.tags {
		out[i] = t.String()
	}
	return out
}

// Missing returns the keys that the default locale does not define.
func (c *Catalog) Missing(keys []Key) []Key {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def := c.messages[c.fallback]
	var out []Key
	seen := make(map[Key]bool, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		if _, ok := def[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}
