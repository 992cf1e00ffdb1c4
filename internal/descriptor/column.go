// Package descriptor holds the declarative configuration a generic DataTable
// consumes: column definitions, grouped form fields with their validation,
// permission sets and analytics widgets, bundled per entity.
//
// Descriptors are plain data built by pure functions. They are never mutated
// after a registry load; translation and permission gating happen when a
// bundle is resolved into a View for one user and locale.
package descriptor

import "datatable-backend/internal/i18n"

type ColumnType string

const (
	ColumnText        ColumnType = "text"
	ColumnNumber      ColumnType = "number"
	ColumnBoolean     ColumnType = "boolean"
	ColumnDate        ColumnType = "date"
	ColumnSelect      ColumnType = "select"
	ColumnMultiselect ColumnType = "multiselect"
	ColumnTags        ColumnType = "tags"
	ColumnImage       ColumnType = "image"
	ColumnCompound    ColumnType = "compound"
	ColumnCustom      ColumnType = "custom"
	ColumnRating      ColumnType = "rating"
)

type RenderType string

const (
	RenderText     RenderType = "text"
	RenderBadge    RenderType = "badge"
	RenderToggle   RenderType = "toggle"
	RenderCurrency RenderType = "currency"
	RenderDate     RenderType = "date"
	RenderImage    RenderType = "image"
	RenderTags     RenderType = "tags"
	RenderCompound RenderType = "compound"
	RenderProgress RenderType = "progress"
	RenderLink     RenderType = "link"
	RenderCustom   RenderType = "custom"
)

var knownRenders = map[RenderType]bool{
	RenderText: true, RenderBadge: true, RenderToggle: true, RenderCurrency: true,
	RenderDate: true, RenderImage: true, RenderTags: true, RenderCompound: true,
	RenderProgress: true, RenderLink: true, RenderCustom: true,
}

// allowedRenders maps a column type to the renderers it accepts, the first
// entry being the default. Custom columns accept any known renderer.
var allowedRenders = map[ColumnType][]RenderType{
	ColumnText:        {RenderText, RenderLink, RenderBadge},
	ColumnNumber:      {RenderText, RenderCurrency, RenderProgress, RenderBadge},
	ColumnBoolean:     {RenderToggle, RenderBadge},
	ColumnDate:        {RenderDate, RenderText},
	ColumnSelect:      {RenderBadge, RenderText},
	ColumnMultiselect: {RenderTags, RenderBadge},
	ColumnTags:        {RenderTags, RenderBadge},
	ColumnImage:       {RenderImage},
	ColumnCompound:    {RenderCompound},
	ColumnRating:      {RenderProgress, RenderText},
	ColumnCustom:      {RenderCustom},
}

// Valid reports whether t is a known column type.
func (t ColumnType) Valid() bool {
	_, ok := allowedRenders[t]
	return ok
}

// Allows reports whether a column of type t may use renderer r.
func (t ColumnType) Allows(r RenderType) bool {
	if !knownRenders[r] {
		return false
	}
	if t == ColumnCustom {
		return true
	}
	for _, a := range allowedRenders[t] {
		if a == r {
			return true
		}
	}
	return false
}

// AllowedRenders returns the renderers accepted by t.
func AllowedRenders(t ColumnType) []RenderType {
	if t == ColumnCustom {
		out := make([]RenderType, 0, len(knownRenders))
		for r := range knownRenders {
			out = append(out, r)
		}
		return out
	}
	return append([]RenderType(nil), allowedRenders[t]...)
}

// Option is one choice of a select-like column or field.
type Option struct {
	Value string   `json:"value"`
	Label i18n.Key `json:"label"`
	Color string   `json:"color,omitempty"`
}

// CompoundPart addresses one or more entity keys shown in a compound cell.
type CompoundPart struct {
	Keys  []string   `json:"keys"`
	Title i18n.Key   `json:"title,omitempty"`
	Type  ColumnType `json:"type,omitempty"`
}

// Compound describes a multi-field cell (avatar, name, email, ...).
type Compound struct {
	Image     *CompoundPart  `json:"image,omitempty"`
	Primary   *CompoundPart  `json:"primary,omitempty"`
	Secondary *CompoundPart  `json:"secondary,omitempty"`
	Metadata  []CompoundPart `json:"metadata,omitempty"`
}

// Parts returns every part in display order.
func (c *Compound) Parts() []CompoundPart {
	if c == nil {
		return nil
	}
	var out []CompoundPart
	for _, p := range []*CompoundPart{c.Image, c.Primary, c.Secondary} {
		if p != nil {
			out = append(out, *p)
		}
	}
	return append(out, c.Metadata...)
}

// Keys returns the entity keys a compound cell declares.
func (c *Compound) Keys() []string {
	var out []string
	for _, p := range c.Parts() {
		out = append(out, p.Keys...)
	}
	return out
}

type Render struct {
	Type RenderType `json:"type"`
	// Format is a date layout or a currency code, depending on Type.
	Format   string            `json:"format,omitempty"`
	Variants map[string]string `json:"variants,omitempty"`
	Compound *Compound         `json:"compound,omitempty"`
}

type ColumnDefinition struct {
	Key          string     `json:"key"`
	Title        i18n.Key   `json:"title"`
	Description  i18n.Key   `json:"description,omitempty"`
	Type         ColumnType `json:"type"`
	Icon         string     `json:"icon,omitempty"`
	Sortable     bool       `json:"sortable"`
	Searchable   bool       `json:"searchable"`
	Filterable   bool       `json:"filterable"`
	Priority     int        `json:"priority"`
	ExpandedOnly bool       `json:"expandedOnly,omitempty"`
	Render       *Render    `json:"render,omitempty"`
	Options      []Option   `json:"options,omitempty"`
	APIEndpoint  string     `json:"apiEndpoint,omitempty"`
}

// RenderType returns the declared renderer, or the default of the column type.
func (c ColumnDefinition) RenderType() RenderType {
	if c.Render != nil && c.Render.Type != "" {
		return c.Render.Type
	}
	if r := allowedRenders[c.Type]; len(r) > 0 {
		return r[0]
	}
	return RenderText
}

// CompoundKeys returns the sub-keys of a compound column.
func (c ColumnDefinition) CompoundKeys() []string {
	if c.Render == nil {
		return nil
	}
	return c.Render.Compound.Keys()
}
