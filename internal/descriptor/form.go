package descriptor

import (
	"sort"

	"datatable-backend/internal/i18n"
)

type FieldType string

const (
	FieldText        FieldType = "text"
	FieldTextarea    FieldType = "textarea"
	FieldEmail       FieldType = "email"
	FieldNumber      FieldType = "number"
	FieldSelect      FieldType = "select"
	FieldMultiselect FieldType = "multiselect"
	FieldToggle      FieldType = "toggle"
	FieldDate        FieldType = "date"
	FieldDatetime    FieldType = "datetime"
	FieldImage       FieldType = "image"
	FieldTags        FieldType = "tags"
	FieldJSON        FieldType = "json"
)

type RuleKind string

const (
	RuleRequired   RuleKind = "required"
	RuleMinLength  RuleKind = "min_length"
	RuleMaxLength  RuleKind = "max_length"
	RuleMin        RuleKind = "min"
	RuleMax        RuleKind = "max"
	RulePattern    RuleKind = "pattern"
	RuleEmail      RuleKind = "email"
	RuleOneOf      RuleKind = "one_of"
	RuleExpression RuleKind = "expression"
)

// Rule is a declarative field check. Expression rules are violated when the
// expression evaluates to true.
type Rule struct {
	Kind       RuleKind `json:"kind"`
	Value      any      `json:"value,omitempty"`
	Expression string   `json:"expression,omitempty"`
	Message    i18n.Key `json:"message,omitempty"`
}

type FieldDescriptor struct {
	Key         string    `json:"key"`
	Label       i18n.Key  `json:"label"`
	Description i18n.Key  `json:"description,omitempty"`
	Placeholder i18n.Key  `json:"placeholder,omitempty"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Options     []Option  `json:"options,omitempty"`
	APIEndpoint string    `json:"apiEndpoint,omitempty"`
	Rules       []Rule    `json:"rules,omitempty"`

	// Validate runs after the declarative rules. A nil error accepts.
	Validate func(value any) error `json:"-"`

	// VisibleWhen is a boolean expression over the submitted values. Hidden
	// fields are neither required nor validated.
	VisibleWhen string `json:"visibleWhen,omitempty"`
	Default     any    `json:"default,omitempty"`
	Example     any    `json:"example,omitempty"`
}

type FormGroup struct {
	ID       string            `json:"id"`
	Title    i18n.Key          `json:"title"`
	Icon     string            `json:"icon,omitempty"`
	Priority int               `json:"priority"`
	Fields   []FieldDescriptor `json:"fields"`
}

type FormSection struct {
	Title       i18n.Key    `json:"title"`
	Description i18n.Key    `json:"description,omitempty"`
	Groups      []FormGroup `json:"groups"`
}

// Fields flattens the section in group priority order.
func (s *FormSection) Fields() []FieldDescriptor {
	if s == nil {
		return nil
	}
	var out []FieldDescriptor
	for _, g := range s.SortedGroups() {
		out = append(out, g.Fields...)
	}
	return out
}

// SortedGroups returns the groups ordered by priority, stable on ties.
func (s *FormSection) SortedGroups() []FormGroup {
	groups := append([]FormGroup(nil), s.Groups...)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Priority < groups[j].Priority })
	return groups
}

// Field finds a field by key.
func (s *FormSection) Field(key string) (FieldDescriptor, bool) {
	if s == nil {
		return FieldDescriptor{}, false
	}
	for _, g := range s.Groups {
		for _, f := range g.Fields {
			if f.Key == key {
				return f, true
			}
		}
	}
	return FieldDescriptor{}, false
}

// Examples collects the example value of every field that declares one.
func (s *FormSection) Examples() map[string]any {
	values := make(map[string]any)
	for _, f := range s.Fields() {
		if f.Example != nil {
			setPath(values, f.Key, f.Example)
		}
	}
	return values
}

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

type FormConfig struct {
	Create *FormSection `json:"create,omitempty"`
	Edit   *FormSection `json:"edit,omitempty"`
}

// Section returns the section for mode, or nil.
func (f FormConfig) Section(m Mode) *FormSection {
	switch m {
	case ModeCreate:
		return f.Create
	case ModeEdit:
		return f.Edit
	}
	return nil
}

// Sections returns the declared sections keyed by mode.
func (f FormConfig) Sections() map[Mode]*FormSection {
	out := make(map[Mode]*FormSection, 2)
	if f.Create != nil {
		out[ModeCreate] = f.Create
	}
	if f.Edit != nil {
		out[ModeEdit] = f.Edit
	}
	return out
}
