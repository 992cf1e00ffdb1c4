package descriptor

import (
	"fmt"
	"sort"
	"strings"

	"datatable-backend/internal/i18n"
	"datatable-backend/internal/models"
	"datatable-backend/internal/permission"
)

// Issue codes reported by Lint.
const (
	CodeFieldKeyUnknown       = "field_key_unknown"
	CodeRenderTypeInvalid     = "render_type_invalid"
	CodePermissionKeyInvalid  = "permission_key_invalid"
	CodeAnalyticsModelUnknown = "analytics_model_unknown"
	CodeAnalyticsFieldUnknown = "analytics_field_unknown"
	CodeAnalyticsShapeInvalid = "analytics_shape_invalid"
	CodeTimeframeInvalid      = "timeframe_invalid"
	CodeColumnKeyDuplicate    = "column_key_duplicate"
	CodeColumnKeyEmpty        = "column_key_empty"
	CodeExampleMissing        = "example_missing"
	CodeExampleRejected       = "example_rejected"
	CodeTranslationMissing    = "translation_missing"
	CodeEndpointMismatch      = "endpoint_mismatch"
	CodeExpressionInvalid     = "expression_invalid"
	CodeModelUnknown          = "model_unknown"
	CodeEntityDuplicate       = "entity_duplicate"
)

// warnings do not block a catalog reload.
var warnings = map[string]bool{
	CodeTranslationMissing: true,
	CodeExampleMissing:     true,
}

type Issue struct {
	Entity  string `json:"entity"`
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Blocking reports whether the issue should refuse a reload.
func (i Issue) Blocking() bool { return !warnings[i.Code] }

// HasBlocking reports whether any issue blocks.
func HasBlocking(issues []Issue) bool {
	for _, i := range issues {
		if i.Blocking() {
			return true
		}
	}
	return false
}

// KeySet reports which translation keys the default locale lacks.
type KeySet interface {
	Missing(keys []i18n.Key) []i18n.Key
}

// Lint checks bundles against the models catalog and the default locale.
// keys may be nil to skip translation checks.
func Lint(bundles []*Bundle, cat *models.Catalog, keys KeySet) []Issue {
	var issues []Issue
	seen := make(map[string]bool, len(bundles))
	for _, b := range bundles {
		if seen[b.ID()] {
			issues = append(issues, Issue{Entity: b.ID(), Code: CodeEntityDuplicate,
				Message: "entity declared more than once"})
		}
		seen[b.ID()] = true
		issues = append(issues, LintBundle(b, cat, keys)...)
	}
	return issues
}

// LintBundle checks a single bundle.
func LintBundle(b *Bundle, cat *models.Catalog, keys KeySet) []Issue {
	l := &linter{b: b, cat: cat}
	if cat != nil {
		l.model = cat.Get(b.Model)
	}

	l.checkEndpoint()
	l.checkPermissions()
	l.checkColumns()
	for _, mode := range []Mode{ModeCreate, ModeEdit} {
		if s := b.Form.Section(mode); s != nil {
			l.checkSection(mode, s)
		}
	}
	l.checkAnalytics()
	if keys != nil {
		l.checkTranslations(keys)
	}
	return l.issues
}

type linter struct {
	b      *Bundle
	cat    *models.Catalog
	model  *models.Model
	issues []Issue
	tkeys  []i18n.Key
}

func (l *linter) add(field, code, format string, args ...any) {
	l.issues = append(l.issues, Issue{
		Entity:  l.b.ID(),
		Field:   field,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

func (l *linter) key(k i18n.Key) {
	if k != "" {
		l.tkeys = append(l.tkeys, k)
	}
}

func (l *linter) checkEndpoint() {
	want := EndpointFor(l.b.Scope, l.b.Entity)
	if l.b.Endpoint != want {
		l.add("", CodeEndpointMismatch, "endpoint %q, want %q", l.b.Endpoint, want)
	}
	if l.model == nil {
		l.add("", CodeModelUnknown, "model %q is not registered", l.b.Model)
	}
}

func (l *linter) checkPermissions() {
	for _, a := range permission.Actions {
		k := l.b.Permissions.ByAction(a)
		switch {
		case k.String() == "":
			l.add(string(a), CodePermissionKeyInvalid, "%s permission is empty", a)
		case !k.Valid():
			l.add(string(a), CodePermissionKeyInvalid, "%q is not verb.entity[.subentity]", k.String())
		case k.Action != a:
			l.add(string(a), CodePermissionKeyInvalid, "%q is bound to %s", k.String(), a)
		}
	}
}

// addressable reports whether key names something on the entity.
func (l *linter) addressable(key string, declared map[string]bool) bool {
	if declared[key] {
		return true
	}
	root, _, nested := strings.Cut(key, ".")
	if nested && declared[root] {
		return true
	}
	return l.model != nil && l.model.HasPath(key)
}

func (l *linter) checkColumns() {
	seen := make(map[string]bool, len(l.b.Columns))
	virtual := make(map[string]bool, len(l.b.VirtualKeys))
	for _, k := range l.b.VirtualKeys {
		virtual[k] = true
	}

	for i, c := range l.b.Columns {
		l.key(c.Title)
		l.key(c.Description)
		for _, o := range c.Options {
			l.key(o.Label)
		}

		if strings.TrimSpace(c.Key) == "" {
			l.add(fmt.Sprintf("columns[%d]", i), CodeColumnKeyEmpty, "column key is empty")
			continue
		}
		if seen[c.Key] {
			l.add(c.Key, CodeColumnKeyDuplicate, "column %q declared twice", c.Key)
		}
		seen[c.Key] = true

		if !c.Type.Valid() {
			l.add(c.Key, CodeRenderTypeInvalid, "unknown column type %q", c.Type)
		} else if r := c.RenderType(); !c.Type.Allows(r) {
			l.add(c.Key, CodeRenderTypeInvalid, "%s column cannot render as %s (allowed: %v)", c.Type, r, AllowedRenders(c.Type))
		}

		if c.Type == ColumnCompound {
			var comp *Compound
			if c.Render != nil {
				comp = c.Render.Compound
			}
			if len(comp.Keys()) == 0 {
				l.add(c.Key, CodeRenderTypeInvalid, "compound column declares no parts")
			}
			for _, p := range comp.Parts() {
				l.key(p.Title)
				for _, k := range p.Keys {
					if !l.addressable(k, virtual) {
						l.add(c.Key+"."+k, CodeFieldKeyUnknown, "compound key %q is not a field of %s", k, l.b.Model)
					}
				}
			}
			continue
		}
		if !l.addressable(c.Key, virtual) {
			l.add(c.Key, CodeFieldKeyUnknown, "column %q is not a field of %s", c.Key, l.b.Model)
		}
		l.checkEndpointPath(c.Key, c.APIEndpoint)
	}
}

func (l *linter) checkEndpointPath(field, p string) {
	if p != "" && !strings.HasPrefix(p, "/api/") {
		l.add(field, CodeEndpointMismatch, "option endpoint %q is outside /api/", p)
	}
}

func (l *linter) checkSection(mode Mode, s *FormSection) {
	l.key(s.Title)
	l.key(s.Description)
	declared := l.b.DeclaredKeys()
	examples := s.Examples()
	groups := make(map[string]bool, len(s.Groups))

	for _, g := range s.Groups {
		l.key(g.Title)
		if groups[g.ID] {
			l.add(string(mode)+"."+g.ID, CodeColumnKeyDuplicate, "group %q declared twice", g.ID)
		}
		groups[g.ID] = true

		for _, f := range g.Fields {
			field := string(mode) + "." + f.Key
			l.key(f.Label)
			l.key(f.Description)
			l.key(f.Placeholder)
			for _, o := range f.Options {
				l.key(o.Label)
			}

			if !l.addressable(f.Key, declared) {
				l.add(field, CodeFieldKeyUnknown, "form key %q is neither a column, a declared key nor a field of %s", f.Key, l.b.Model)
			}
			l.checkEndpointPath(field, f.APIEndpoint)

			if f.VisibleWhen != "" {
				if _, err := CompileExpression(f.VisibleWhen); err != nil {
					l.add(field, CodeExpressionInvalid, "visibleWhen: %v", err)
				}
			}
			exprOK := true
			for _, r := range f.Rules {
				l.key(r.Message)
				switch r.Kind {
				case RuleExpression:
					if _, err := CompileExpression(r.Expression); err != nil {
						l.add(field, CodeExpressionInvalid, "rule: %v", err)
						exprOK = false
					}
				case RulePattern:
					src, _ := r.Value.(string)
					if _, err := compilePattern(src); err != nil || src == "" {
						l.add(field, CodeExpressionInvalid, "pattern %q does not compile", src)
						exprOK = false
					}
				}
			}

			if f.Example == nil {
				if f.Required {
					l.add(field, CodeExampleMissing, "required field has no example")
				}
				continue
			}
			if !exprOK {
				continue
			}
			if err := f.Check(f.Example, examples); err != nil {
				l.add(field, CodeExampleRejected, "example %v rejected: %v", f.Example, err)
			}
		}
	}
}

func (l *linter) checkAnalytics() {
	ids := make(map[string]bool)
	for gi, g := range l.b.Analytics {
		if g.Type != GroupKPI && g.Type != GroupChart {
			l.add(fmt.Sprintf("analytics[%d]", gi), CodeAnalyticsShapeInvalid, "unknown group type %q", g.Type)
			continue
		}
		for _, it := range g.Items {
			field := "analytics." + it.ID
			l.key(it.Title)

			if it.ID == "" || ids[it.ID] {
				l.add(field, CodeAnalyticsShapeInvalid, "item id %q is empty or duplicated", it.ID)
			}
			ids[it.ID] = true

			switch g.Type {
			case GroupKPI:
				if it.ChartType != "" {
					l.add(field, CodeAnalyticsShapeInvalid, "kpi item declares chart type %q", it.ChartType)
				}
			case GroupChart:
				if !it.ChartType.Valid() {
					l.add(field, CodeAnalyticsShapeInvalid, "chart item has chart type %q", it.ChartType)
				}
				if it.ChartType == ChartPie && len(it.Series) == 0 {
					l.add(field, CodeAnalyticsShapeInvalid, "pie chart declares no series")
				}
			}
			for _, tf := range it.Timeframes {
				if !tf.Valid() {
					l.add(field, CodeTimeframeInvalid, "timeframe %q", tf)
				}
			}

			var m *models.Model
			if l.cat != nil {
				m = l.cat.Get(it.Model)
			}
			if m == nil {
				l.add(field, CodeAnalyticsModelUnknown, "model %q is not registered", it.Model)
				continue
			}
			if g.Type == GroupChart && it.ChartType != ChartPie && m.Timestamp == "" {
				l.add(field, CodeAnalyticsShapeInvalid, "model %s has no timestamp to bucket by", m.Name)
			}
			if it.Aggregation != nil && !m.HasField(it.Aggregation.Field) {
				l.add(field, CodeAnalyticsFieldUnknown, "aggregation field %q is not a field of %s", it.Aggregation.Field, m.Name)
			}
			if it.Sum != "" {
				if f, ok := m.Field(it.Sum); !ok || !f.IsNumeric() {
					l.add(field, CodeAnalyticsFieldUnknown, "sum field %q is not a numeric field of %s", it.Sum, m.Name)
				}
			}
			for _, s := range it.Series {
				l.key(s.Title)
				if !m.HasField(s.Aggregation.Field) {
					l.add(field+"."+s.ID, CodeAnalyticsFieldUnknown, "series field %q is not a field of %s", s.Aggregation.Field, m.Name)
				}
			}
		}
	}
}

func (l *linter) checkTranslations(keys KeySet) {
	missing := keys.Missing(l.tkeys)
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	for _, k := range missing {
		l.add("", CodeTranslationMissing, "translation key %q missing from default locale", k)
	}
}
