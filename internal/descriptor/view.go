package descriptor

import (
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/permission"
)

// View is a bundle resolved for one user and locale: every key translated and
// every affordance the user lacks left out.
type View struct {
	ID          string               `json:"id"`
	Scope       string               `json:"scope"`
	Entity      string               `json:"entity"`
	Model       string               `json:"model"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Endpoint    string               `json:"endpoint"`
	Locale      string               `json:"locale"`
	Permissions permission.Flags     `json:"permissions"`
	Columns     []ColumnView         `json:"columns"`
	Form        *FormView            `json:"form,omitempty"`
	Analytics   []AnalyticsGroupView `json:"analytics,omitempty"`
}

type OptionView struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

type CompoundPartView struct {
	Keys  []string   `json:"keys"`
	Title string     `json:"title,omitempty"`
	Type  ColumnType `json:"type,omitempty"`
}

type CompoundView struct {
	Image     *CompoundPartView  `json:"image,omitempty"`
	Primary   *CompoundPartView  `json:"primary,omitempty"`
	Secondary *CompoundPartView  `json:"secondary,omitempty"`
	Metadata  []CompoundPartView `json:"metadata,omitempty"`
}

type RenderView struct {
	Type     RenderType        `json:"type"`
	Format   string            `json:"format,omitempty"`
	Variants map[string]string `json:"variants,omitempty"`
	Compound *CompoundView     `json:"compound,omitempty"`
}

type ColumnView struct {
	Key          string       `json:"key"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Type         ColumnType   `json:"type"`
	Icon         string       `json:"icon,omitempty"`
	Sortable     bool         `json:"sortable"`
	Searchable   bool         `json:"searchable"`
	Filterable   bool         `json:"filterable"`
	Priority     int          `json:"priority"`
	ExpandedOnly bool         `json:"expandedOnly,omitempty"`
	Render       RenderView   `json:"render"`
	Options      []OptionView `json:"options,omitempty"`
	APIEndpoint  string       `json:"apiEndpoint,omitempty"`
}

type RuleView struct {
	Kind       RuleKind `json:"kind"`
	Value      any      `json:"value,omitempty"`
	Expression string   `json:"expression,omitempty"`
	Message    string   `json:"message"`
}

type FieldView struct {
	Key         string       `json:"key"`
	Label       string       `json:"label"`
	Description string       `json:"description,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Type        FieldType    `json:"type"`
	Required    bool         `json:"required"`
	Options     []OptionView `json:"options,omitempty"`
	APIEndpoint string       `json:"apiEndpoint,omitempty"`
	Rules       []RuleView   `json:"rules,omitempty"`
	VisibleWhen string       `json:"visibleWhen,omitempty"`
	Default     any          `json:"default,omitempty"`
}

type GroupView struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Icon     string      `json:"icon,omitempty"`
	Priority int         `json:"priority"`
	Fields   []FieldView `json:"fields"`
}

type SectionView struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Groups      []GroupView `json:"groups"`
}

type FormView struct {
	Create *SectionView `json:"create,omitempty"`
	Edit   *SectionView `json:"edit,omitempty"`
}

type SeriesView struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Color       string      `json:"color,omitempty"`
	Aggregation Aggregation `json:"aggregation"`
}

type AnalyticsItemView struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Model       string       `json:"model"`
	Metric      string       `json:"metric"`
	Aggregation *Aggregation `json:"aggregation,omitempty"`
	Sum         string       `json:"sum,omitempty"`
	Icon        string       `json:"icon,omitempty"`
	ChartType   ChartType    `json:"chartType,omitempty"`
	Timeframes  []Timeframe  `json:"timeframes,omitempty"`
	Series      []SeriesView `json:"series,omitempty"`
}

type AnalyticsGroupView struct {
	Type  GroupType           `json:"type"`
	Items []AnalyticsItemView `json:"items"`
}

// Summary is the listing entry of a bundle.
type Summary struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Endpoint    string           `json:"endpoint"`
	Permissions permission.Flags `json:"permissions"`
}

// Summarize resolves the listing entry of b for u.
func Summarize(b *Bundle, t i18n.Translator, u *permission.User) Summary {
	return Summary{
		ID:          b.ID(),
		Title:       t.T(b.Title),
		Description: t.T(b.Description),
		Endpoint:    b.Endpoint,
		Permissions: b.Permissions.Flags(u),
	}
}

// Resolve builds the view of b for u. The create form needs create.*, the
// edit form edit.*, analytics view.*.
func Resolve(b *Bundle, t i18n.Translator, u *permission.User) *View {
	flags := b.Permissions.Flags(u)
	v := &View{
		ID:          b.ID(),
		Scope:       b.Scope,
		Entity:      b.Entity,
		Model:       b.Model,
		Title:       t.T(b.Title),
		Description: t.T(b.Description),
		Endpoint:    b.Endpoint,
		Locale:      t.Locale(),
		Permissions: flags,
		Columns:     make([]ColumnView, 0, len(b.Columns)),
	}

	for _, c := range b.Columns {
		v.Columns = append(v.Columns, resolveColumn(c, t))
	}

	form := &FormView{}
	if flags.Create && b.Form.Create != nil {
		form.Create = resolveSection(b.Form.Create, t)
	}
	if flags.Edit && b.Form.Edit != nil {
		form.Edit = resolveSection(b.Form.Edit, t)
	}
	if form.Create != nil || form.Edit != nil {
		v.Form = form
	}

	if flags.View {
		for _, g := range b.Analytics {
			gv := AnalyticsGroupView{Type: g.Type, Items: make([]AnalyticsItemView, 0, len(g.Items))}
			for _, it := range g.Items {
				gv.Items = append(gv.Items, resolveItem(it, t))
			}
			v.Analytics = append(v.Analytics, gv)
		}
	}
	return v
}

func resolveOptions(opts []Option, t i18n.Translator) []OptionView {
	if len(opts) == 0 {
		return nil
	}
	out := make([]OptionView, len(opts))
	for i, o := range opts {
		out[i] = OptionView{Value: o.Value, Label: t.T(o.Label), Color: o.Color}
	}
	return out
}

func resolvePart(p *CompoundPart, t i18n.Translator) *CompoundPartView {
	if p == nil {
		return nil
	}
	return &CompoundPartView{Keys: p.Keys, Title: t.T(p.Title), Type: p.Type}
}

func resolveColumn(c ColumnDefinition, t i18n.Translator) ColumnView {
	cv := ColumnView{
		Key:          c.Key,
		Title:        t.T(c.Title),
		Description:  t.T(c.Description),
		Type:         c.Type,
		Icon:         c.Icon,
		Sortable:     c.Sortable,
		Searchable:   c.Searchable,
		Filterable:   c.Filterable,
		Priority:     c.Priority,
		ExpandedOnly: c.ExpandedOnly,
		Render:       RenderView{Type: c.RenderType()},
		Options:      resolveOptions(c.Options, t),
		APIEndpoint:  c.APIEndpoint,
	}
	if c.Render != nil {
		cv.Render.Format = c.Render.Format
		cv.Render.Variants = c.Render.Variants
		if comp := c.Render.Compound; comp != nil {
			view := &CompoundView{
				Image:     resolvePart(comp.Image, t),
				Primary:   resolvePart(comp.Primary, t),
				Secondary: resolvePart(comp.Secondary, t),
			}
			for i := range comp.Metadata {
				view.Metadata = append(view.Metadata, *resolvePart(&comp.Metadata[i], t))
			}
			cv.Render.Compound = view
		}
	}
	return cv
}

func resolveSection(s *FormSection, t i18n.Translator) *SectionView {
	sv := &SectionView{Title: t.T(s.Title), Description: t.T(s.Description)}
	for _, g := range s.SortedGroups() {
		gv := GroupView{ID: g.ID, Title: t.T(g.Title), Icon: g.Icon, Priority: g.Priority,
			Fields: make([]FieldView, 0, len(g.Fields))}
		for _, f := range g.Fields {
			fv := FieldView{
				Key:         f.Key,
				Label:       t.T(f.Label),
				Description: t.T(f.Description),
				Placeholder: t.T(f.Placeholder),
				Type:        f.Type,
				Required:    f.Required,
				Options:     resolveOptions(f.Options, t),
				APIEndpoint: f.APIEndpoint,
				VisibleWhen: f.VisibleWhen,
				Default:     f.Default,
			}
			for _, r := range f.Rules {
				fv.Rules = append(fv.Rules, RuleView{
					Kind:       r.Kind,
					Value:      r.Value,
					Expression: r.Expression,
					Message:    t.T(reject(r).Message),
				})
			}
			gv.Fields = append(gv.Fields, fv)
		}
		sv.Groups = append(sv.Groups, gv)
	}
	return sv
}

func resolveItem(it AnalyticsItem, t i18n.Translator) AnalyticsItemView {
	iv := AnalyticsItemView{
		ID:          it.ID,
		Title:       t.T(it.Title),
		Model:       it.Model,
		Metric:      it.Metric,
		Aggregation: it.Aggregation,
		Sum:         it.Sum,
		Icon:        it.Icon,
		ChartType:   it.ChartType,
		Timeframes:  it.Timeframes,
	}
	for _, s := range it.Series {
		iv.Series = append(iv.Series, SeriesView{ID: s.ID, Title: t.T(s.Title), Color: s.Color, Aggregation: s.Aggregation})
	}
	return iv
}
