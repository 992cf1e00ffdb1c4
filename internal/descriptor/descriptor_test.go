package descriptor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datatable-backend/internal/i18n"
	"datatable-backend/internal/models"
	"datatable-backend/internal/permission"
)

func TestColumnType_Allows(t *testing.T) {
	tests := []struct {
		typ  ColumnType
		ok   []RenderType
		deny []RenderType
	}{
		{ColumnBoolean, []RenderType{RenderToggle, RenderBadge}, []RenderType{RenderText, RenderCurrency}},
		{ColumnImage, []RenderType{RenderImage}, []RenderType{RenderText}},
		{ColumnCompound, []RenderType{RenderCompound}, []RenderType{RenderText}},
		{ColumnNumber, []RenderType{RenderCurrency, RenderProgress}, []RenderType{RenderToggle}},
		{ColumnDate, []RenderType{RenderDate, RenderText}, []RenderType{RenderBadge}},
		{ColumnCustom, []RenderType{RenderLink, RenderToggle}, []RenderType{"sparkline"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			for _, r := range tt.ok {
				assert.True(t, tt.typ.Allows(r), r)
			}
			for _, r := range tt.deny {
				assert.False(t, tt.typ.Allows(r), r)
			}
		})
	}
}

func TestColumnDefinition_RenderTypeDefault(t *testing.T) {
	assert.Equal(t, RenderToggle, ColumnDefinition{Type: ColumnBoolean}.RenderType())
	assert.Equal(t, RenderBadge, ColumnDefinition{Type: ColumnBoolean, Render: &Render{Type: RenderBadge}}.RenderType())
	assert.Equal(t, RenderText, ColumnDefinition{Type: "bogus"}.RenderType())
}

func TestFieldDescriptor_Validator(t *testing.T) {
	name := FieldDescriptor{
		Key: "name", Type: FieldText, Required: true,
		Rules: []Rule{{Kind: RuleMinLength, Value: 2}, {Kind: RuleMaxLength, Value: 5}},
	}
	v := name.Validator()

	assert.NoError(t, v("abc"))
	assertRule(t, RuleRequired, v(""))
	assertRule(t, RuleRequired, v("   "))
	assertRule(t, RuleRequired, v(nil))
	assertRule(t, RuleMinLength, v("a"))
	assertRule(t, RuleMaxLength, v("abcdef"))
	assert.NoError(t, v("ñáéíó"), "length counts runes")
}

func TestFieldDescriptor_NumericBounds(t *testing.T) {
	f := FieldDescriptor{Key: "fee", Type: FieldNumber,
		Rules: []Rule{{Kind: RuleMin, Value: "0.01"}, {Kind: RuleMax, Value: 100}}}

	assert.NoError(t, f.Check(0.01, nil))
	assert.NoError(t, f.Check("100", nil))
	assert.NoError(t, f.Check(nil, nil), "optional and empty")
	assertRule(t, RuleMin, f.Check(0.001, nil))
	assertRule(t, RuleMax, f.Check(100.5, nil))
	assertRule(t, "type", f.Check("abc", nil))
}

func TestFieldDescriptor_EmailPatternOneOf(t *testing.T) {
	email := FieldDescriptor{Key: "email", Type: FieldEmail, Required: true}
	assert.NoError(t, email.Check("jane@example.com", nil))
	assertRule(t, RuleEmail, email.Check("not-an-email", nil))

	sym := FieldDescriptor{Key: "symbol", Type: FieldText,
		Rules: []Rule{{Kind: RulePattern, Value: `^[A-Z0-9]{2,10}$`, Message: i18n.ICOOfferSymbolFormat}}}
	assert.NoError(t, sym.Check("BTC", nil))
	err := sym.Check("btc", nil)
	assertRule(t, RulePattern, err)
	var re *RuleError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, i18n.ICOOfferSymbolFormat, re.Message)

	status := FieldDescriptor{Key: "status", Type: FieldSelect, Options: []Option{{Value: "ACTIVE"}, {Value: "BANNED"}}}
	assert.NoError(t, status.Check("ACTIVE", nil))
	assertRule(t, RuleOneOf, status.Check("DELETED", nil))

	remote := FieldDescriptor{Key: "roleId", Type: FieldSelect, Options: []Option{{Value: "1"}}, APIEndpoint: "/api/admin/crm/role/options"}
	assert.NoError(t, remote.Check("7", nil), "endpoint-backed options are not enumerated locally")

	tags := FieldDescriptor{Key: "styles", Type: FieldMultiselect, Options: []Option{{Value: "DAY"}, {Value: "SWING"}}}
	assert.NoError(t, tags.Check([]any{"DAY", "SWING"}, nil))
	assertRule(t, RuleOneOf, tags.Check([]any{"DAY", "HODL"}, nil))
}

func TestFieldDescriptor_ExpressionRule(t *testing.T) {
	f := FieldDescriptor{Key: "maxLimit", Type: FieldNumber, Rules: []Rule{{
		Kind:       RuleExpression,
		Expression: `record.minLimit != nil && value < record.minLimit`,
		Message:    i18n.P2POfferMaxBelowMin,
	}}}

	assert.NoError(t, f.Check(500.0, map[string]any{"minLimit": 100.0}))
	assertRule(t, RuleExpression, f.Check(50.0, map[string]any{"minLimit": 100.0}))
	assert.NoError(t, f.Check(50.0, nil), "no minimum submitted")
}

func TestFieldDescriptor_CustomCallback(t *testing.T) {
	f := FieldDescriptor{Key: "x", Validate: func(v any) error {
		if v == "forbidden" {
			return errors.New("that value is reserved")
		}
		return nil
	}}
	assert.NoError(t, f.Check("ok", nil))
	assert.EqualError(t, f.Check("forbidden", nil), "that value is reserved")
}

func TestValidateSubmission_HiddenFieldsSkipped(t *testing.T) {
	section := &FormSection{Groups: []FormGroup{{ID: "basic", Fields: []FieldDescriptor{
		{Key: "type", Type: FieldSelect, Required: true, Options: []Option{{Value: "DOWNLOADABLE"}, {Value: "PHYSICAL"}}},
		{Key: "filePath", Type: FieldText, Required: true, VisibleWhen: `record.type == "DOWNLOADABLE"`},
		{Key: "profile.bio", Type: FieldTextarea, Rules: []Rule{{Kind: RuleMaxLength, Value: 3}}},
	}}}}

	assert.Empty(t, ValidateSubmission(section, map[string]any{"type": "PHYSICAL"}))

	got := ValidateSubmission(section, map[string]any{
		"type":    "DOWNLOADABLE",
		"profile": map[string]any{"bio": "too long"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "filePath", got[0].Field)
	assert.Equal(t, "required", got[0].Rule)
	assert.Equal(t, i18n.CommonValidationRequired, got[0].Key)
	assert.Equal(t, "profile.bio", got[1].Field)
	assert.Equal(t, "max_length", got[1].Rule)
}

func TestIsVisible_BrokenExpressionStaysVisible(t *testing.T) {
	assert.True(t, IsVisible(FieldDescriptor{VisibleWhen: "record.type =="}, nil))
	assert.True(t, IsVisible(FieldDescriptor{}, nil))
	assert.False(t, IsVisible(FieldDescriptor{VisibleWhen: `record.flag == true`}, map[string]any{"flag": false}))
}

func TestLookup(t *testing.T) {
	values := map[string]any{
		"a.b": 1,
		"a":   map[string]any{"b": 2, "c": map[string]any{"d": 3}},
	}
	v, ok := Lookup(values, "a.b")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = Lookup(values, "a.c.d")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = Lookup(values, "a.x.y")
	assert.False(t, ok)
}

func TestTimeframe_Buckets(t *testing.T) {
	now := time.Date(2024, 3, 15, 13, 42, 0, 0, time.UTC)

	h := Timeframe24h.Buckets(now)
	require.Len(t, h, 24)
	assert.Equal(t, time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC), h[23])
	assert.Equal(t, time.Date(2024, 3, 14, 14, 0, 0, 0, time.UTC), h[0])

	d := Timeframe7d.Buckets(now)
	require.Len(t, d, 7)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), d[0])

	m := Timeframe1y.Buckets(now)
	require.Len(t, m, 12)
	assert.Equal(t, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), m[0])
	assert.Equal(t, BucketMonth, Timeframe6m.Bucket())

	assert.Nil(t, Timeframe("2w").Buckets(now))
}

func testModels(t *testing.T) *models.Catalog {
	t.Helper()
	cat, err := models.New([]models.Model{{
		Name: "widget", Table: "widgets",
		Fields: []models.Field{
			{Name: "id", Type: models.TypeUUID},
			{Name: "name", Type: models.TypeString},
			{Name: "price", Type: models.TypeDecimal},
			{Name: "active", Type: models.TypeBoolean},
			{Name: "meta", Type: models.TypeJSON},
			{Name: "createdAt", Type: models.TypeTimestamp},
		},
	}})
	require.NoError(t, err)
	return cat
}

func widgetBundle() *Bundle {
	return &Bundle{
		Scope:       "admin/shop",
		Entity:      "widget",
		Model:       "widget",
		Title:       i18n.CommonName,
		Endpoint:    "/api/admin/shop/widget",
		Permissions: permission.For("shop.widget"),
		Columns: []ColumnDefinition{
			{Key: "id", Title: i18n.CommonID, Type: ColumnText},
			{Key: "name", Title: i18n.CommonName, Type: ColumnText, Sortable: true, Searchable: true},
			{Key: "active", Title: i18n.CommonStatus, Type: ColumnBoolean, Filterable: true},
		},
		Form: FormConfig{Create: &FormSection{Title: i18n.CommonName, Groups: []FormGroup{{
			ID: "basic", Title: i18n.CommonGroupsBasic,
			Fields: []FieldDescriptor{
				{Key: "name", Label: i18n.CommonName, Type: FieldText, Required: true, Example: "Gizmo"},
				{Key: "meta.color", Label: i18n.CommonType, Type: FieldText},
			},
		}}}},
		Analytics: AnalyticsConfig{
			{Type: GroupKPI, Items: []AnalyticsItem{{ID: "total", Title: i18n.CommonAnalyticsTotal, Model: "widget", Metric: "total"}}},
			{Type: GroupChart, Items: []AnalyticsItem{{ID: "growth", Title: i18n.CommonAnalyticsGrowth, Model: "widget", Metric: "created",
				ChartType: ChartLine, Timeframes: []Timeframe{Timeframe7d, Timeframe30d}}}},
		},
	}
}

func issueCodes(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Code)
	}
	return out
}

func TestLint_CleanBundle(t *testing.T) {
	assert.Empty(t, Lint([]*Bundle{widgetBundle()}, testModels(t), nil))
}

func TestLint_ReportsEachDefect(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *Bundle)
		code   string
	}{
		{"boolean rendered as text", func(b *Bundle) { b.Columns[2].Render = &Render{Type: RenderText} }, CodeRenderTypeInvalid},
		{"unknown column type", func(b *Bundle) { b.Columns[1].Type = "json" }, CodeRenderTypeInvalid},
		{"duplicate column", func(b *Bundle) { b.Columns = append(b.Columns, b.Columns[0]) }, CodeColumnKeyDuplicate},
		{"empty column", func(b *Bundle) { b.Columns[0].Key = "" }, CodeColumnKeyEmpty},
		{"column off the model", func(b *Bundle) { b.Columns[1].Key = "nickname" }, CodeFieldKeyUnknown},
		{"form key unknown", func(b *Bundle) { b.Form.Create.Groups[0].Fields[1].Key = "weight" }, CodeFieldKeyUnknown},
		{"empty permission", func(b *Bundle) { b.Permissions.Delete = permission.Key{} }, CodePermissionKeyInvalid},
		{"wrong verb", func(b *Bundle) { b.Permissions.Edit = b.Permissions.View }, CodePermissionKeyInvalid},
		{"malformed permission", func(b *Bundle) { b.Permissions.View.Resource = "Shop Widget" }, CodePermissionKeyInvalid},
		{"unknown analytics model", func(b *Bundle) { b.Analytics[0].Items[0].Model = "gadget" }, CodeAnalyticsModelUnknown},
		{"unknown aggregation field", func(b *Bundle) {
			b.Analytics[0].Items[0].Aggregation = &Aggregation{Field: "colour", Value: "red"}
		}, CodeAnalyticsFieldUnknown},
		{"sum of text", func(b *Bundle) { b.Analytics[0].Items[0].Sum = "name" }, CodeAnalyticsFieldUnknown},
		{"kpi with chart type", func(b *Bundle) { b.Analytics[0].Items[0].ChartType = ChartBar }, CodeAnalyticsShapeInvalid},
		{"pie without series", func(b *Bundle) { b.Analytics[1].Items[0].ChartType = ChartPie }, CodeAnalyticsShapeInvalid},
		{"bad timeframe", func(b *Bundle) { b.Analytics[1].Items[0].Timeframes = []Timeframe{"2w"} }, CodeTimeframeInvalid},
		{"missing example", func(b *Bundle) { b.Form.Create.Groups[0].Fields[0].Example = nil }, CodeExampleMissing},
		{"rejected example", func(b *Bundle) {
			f := &b.Form.Create.Groups[0].Fields[0]
			f.Rules = []Rule{{Kind: RuleMinLength, Value: 10}}
		}, CodeExampleRejected},
		{"broken expression", func(b *Bundle) { b.Form.Create.Groups[0].Fields[1].VisibleWhen = "record.x ==" }, CodeExpressionInvalid},
		{"broken pattern", func(b *Bundle) {
			b.Form.Create.Groups[0].Fields[1].Rules = []Rule{{Kind: RulePattern, Value: "(["}}
		}, CodeExpressionInvalid},
		{"endpoint mismatch", func(b *Bundle) { b.Endpoint = "/api/widgets" }, CodeEndpointMismatch},
		{"unknown model", func(b *Bundle) { b.Model = "gadget" }, CodeModelUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := widgetBundle()
			tt.mutate(b)
			issues := Lint([]*Bundle{b}, testModels(t), nil)
			assert.Contains(t, issueCodes(issues), tt.code)
		})
	}
}

func TestLint_TranslationsAndDuplicates(t *testing.T) {
	cat, err := i18n.NewCatalog("en", map[string]map[string]string{"en": {"common.name": "Name"}})
	require.NoError(t, err)

	issues := Lint([]*Bundle{widgetBundle(), widgetBundle()}, testModels(t), cat)
	codes := issueCodes(issues)
	assert.Contains(t, codes, CodeTranslationMissing)
	assert.Contains(t, codes, CodeEntityDuplicate)
	assert.True(t, HasBlocking(issues))

	var warnOnly []Issue
	for _, i := range issues {
		if i.Code == CodeTranslationMissing {
			warnOnly = append(warnOnly, i)
		}
	}
	assert.False(t, HasBlocking(warnOnly))
}

func TestResolve_GatesByPermission(t *testing.T) {
	b := widgetBundle()
	b.Form.Edit = b.Form.Create
	cat, err := i18n.NewCatalog("en", map[string]map[string]string{
		"en": {"common.name": "Name", "common.status": "Status"},
		"es": {"common.name": "Nombre"},
	})
	require.NoError(t, err)

	viewer := &permission.User{ID: "v", Grants: permission.NewGrants("access.shop.widget", "view.shop.widget")}
	v := Resolve(b, cat.For("es"), viewer)
	assert.Equal(t, "es", v.Locale)
	assert.Equal(t, "Nombre", v.Title)
	assert.Equal(t, "Status", v.Columns[2].Title, "falls back to the default locale")
	assert.Equal(t, "Id", v.Columns[0].Title, "falls back to the humanized key")
	assert.Equal(t, RenderToggle, v.Columns[2].Render.Type)
	assert.Nil(t, v.Form)
	assert.Len(t, v.Analytics, 2)

	editor := &permission.User{ID: "e", Grants: permission.NewGrants("access.shop.widget", "edit.shop.widget")}
	v = Resolve(b, cat.Default(), editor)
	require.NotNil(t, v.Form)
	assert.Nil(t, v.Form.Create)
	require.NotNil(t, v.Form.Edit)
	assert.Equal(t, "Name", v.Form.Edit.Groups[0].Fields[0].Label)
	assert.Empty(t, v.Analytics)
	assert.Equal(t, permission.Flags{Access: true, Edit: true}, v.Permissions)
}

func TestRegistry_LoadReplaces(t *testing.T) {
	r := NewRegistry()
	r.Load([]*Bundle{widgetBundle()})
	require.NotNil(t, r.Get("admin/shop/widget"))

	other := widgetBundle()
	other.Entity = "gadget"
	r.Load([]*Bundle{other})
	assert.Nil(t, r.Get("admin/shop/widget"))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, "admin/shop/gadget", r.All()[0].ID())
}

func TestPermissionKeys(t *testing.T) {
	keys := PermissionKeys([]*Bundle{widgetBundle(), widgetBundle()})
	assert.Equal(t, []string{
		"access.shop.widget", "create.shop.widget", "delete.shop.widget", "edit.shop.widget", "view.shop.widget",
	}, keys)
}

func assertRule(t *testing.T, want RuleKind, err error) {
	t.Helper()
	var re *RuleError
	if assert.True(t, errors.As(err, &re), "want *RuleError, got %v", err) {
		assert.Equal(t, want, re.Rule)
	}
}
