package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datatable-backend/internal/cache"
	"datatable-backend/internal/descriptor"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/permission"
	"datatable-backend/internal/state"
	"datatable-backend/internal/store"
)

type fakeAnalyzer struct {
	calls     int
	timeframe descriptor.Timeframe
}

func (f *fakeAnalyzer) Run(_ context.Context, _ descriptor.AnalyticsConfig, tf descriptor.Timeframe) (*store.Report, error) {
	f.calls++
	f.timeframe = tf
	return &store.Report{
		Timeframe: tf,
		KPIs:      []store.Metric{{ID: "total", Value: decimal.NewFromInt(3)}},
		Charts:    []store.Chart{},
	}, nil
}

func widget() *descriptor.Bundle {
	return &descriptor.Bundle{
		Scope:       "admin/shop",
		Entity:      "widget",
		Model:       "widget",
		Title:       i18n.CommonName,
		Endpoint:    "/api/admin/shop/widget",
		Permissions: permission.For("shop.widget"),
		Columns: []descriptor.ColumnDefinition{
			{Key: "id", Title: i18n.CommonID, Type: descriptor.ColumnText},
			{Key: "name", Title: i18n.CommonName, Type: descriptor.ColumnText, Sortable: true, Searchable: true},
		},
		Form: descriptor.FormConfig{Create: &descriptor.FormSection{Title: i18n.CommonName, Groups: []descriptor.FormGroup{{
			ID: "basic",
			Fields: []descriptor.FieldDescriptor{
				{Key: "name", Label: i18n.CommonName, Type: descriptor.FieldText, Required: true, Example: "Gizmo"},
			},
		}}}},
		Analytics: descriptor.AnalyticsConfig{
			{Type: descriptor.GroupKPI, Items: []descriptor.AnalyticsItem{{ID: "total", Model: "widget"}}},
		},
	}
}

type fixture struct {
	app      *fiber.App
	analyzer *fakeAnalyzer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := descriptor.NewRegistry()
	reg.Load([]*descriptor.Bundle{widget()})

	locales, err := i18n.NewCatalog("en", map[string]map[string]string{
		"en": {"common.name": "Name", "common.validation.required": "This field is required"},
		"es": {"common.name": "Nombre", "common.validation.required": "Este campo es obligatorio"},
	})
	require.NoError(t, err)

	users := permission.StaticResolver{
		"reader": {ID: "reader", Grants: permission.NewGrants("access.shop.widget")},
		"editor": {ID: "editor", Grants: permission.NewGrants("access.shop.widget", "view.shop.widget", "create.shop.widget")},
		"none":   {ID: "none", Grants: permission.NewGrants()},
	}
	fakeAuth := func(c *fiber.Ctx) error {
		u, _ := users.Resolve(c.UserContext(), c.Get("X-User"))
		c.Locals("user", u)
		return c.Next()
	}

	an := &fakeAnalyzer{}
	h := NewHandler(reg, locales, state.NewStore(cache.NewMemory(), time.Hour), an, nil)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *AppError
			if errors.As(err, &appErr) {
				return c.Status(appErr.Status).JSON(ErrorResponse{Error: appErr})
			}
			return c.Status(500).JSON(ErrorResponse{Error: &AppError{Code: "INTERNAL_ERROR", Message: err.Error()}})
		},
	})
	RegisterRoutes(app, h, fakeAuth)
	return &fixture{app: app, analyzer: an}
}

func (f *fixture) do(t *testing.T, method, path, user string, body any, headers ...string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("X-User", user)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestList_OmitsInaccessible(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, "GET", "/api/descriptors", "reader", nil)
	require.Equal(t, 200, status)
	assert.Len(t, body["data"], 1)

	status, body = f.do(t, "GET", "/api/descriptors", "none", nil)
	require.Equal(t, 200, status)
	assert.Empty(t, body["data"])
}

func TestGet_Descriptor(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, "GET", "/api/descriptors/admin/shop/widget", "editor", nil, "Accept-Language", "es-ES,es;q=0.9")
	require.Equal(t, 200, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Nombre", data["title"])
	assert.Equal(t, "es", data["locale"])
	assert.NotNil(t, data["form"])

	status, body = f.do(t, "GET", "/api/descriptors/admin/shop/widget?locale=en", "reader", nil, "Accept-Language", "es")
	require.Equal(t, 200, status)
	data = body["data"].(map[string]any)
	assert.Equal(t, "Name", data["title"])
	assert.Nil(t, data["form"], "reader has no create or edit permission")
	assert.Nil(t, data["analytics"], "reader has no view permission")

	status, body = f.do(t, "GET", "/api/descriptors/admin/shop/widget", "none", nil)
	assert.Equal(t, 403, status)
	assert.Equal(t, "FORBIDDEN", errorCode(body))

	status, body = f.do(t, "GET", "/api/descriptors/admin/shop/gadget", "editor", nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "UNKNOWN_ENTITY", errorCode(body))
}

func TestValidate(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, "POST", "/api/validate/admin/shop/widget?mode=create", "editor", map[string]any{"name": "Gizmo"})
	require.Equal(t, 200, status)
	assert.Equal(t, true, body["data"].(map[string]any)["valid"])

	status, body = f.do(t, "POST", "/api/validate/admin/shop/widget?mode=create&locale=es", "editor", map[string]any{"name": ""})
	require.Equal(t, 422, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
	details := body["error"].(map[string]any)["details"].([]any)
	require.Len(t, details, 1)
	d := details[0].(map[string]any)
	assert.Equal(t, "name", d["field"])
	assert.Equal(t, "required", d["rule"])
	assert.Equal(t, "Este campo es obligatorio", d["message"])

	status, _ = f.do(t, "POST", "/api/validate/admin/shop/widget?mode=create", "reader", map[string]any{"name": "x"})
	assert.Equal(t, 403, status)

	status, _ = f.do(t, "POST", "/api/validate/admin/shop/widget?mode=delete", "editor", map[string]any{})
	assert.Equal(t, 400, status)
}

func TestValidate_EmptyBodyReportsRequired(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, "POST", "/api/validate/admin/shop/widget?mode=create", "editor", nil)
	require.Equal(t, 422, status)
	details := body["error"].(map[string]any)["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "name", details[0].(map[string]any)["field"])
	assert.Equal(t, "required", details[0].(map[string]any)["rule"])
}

func TestAnalytics(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, "POST", "/api/analytics/admin/shop/widget", "editor", map[string]any{"timeframe": "30d"})
	require.Equal(t, 200, status)
	assert.Equal(t, descriptor.Timeframe30d, f.analyzer.timeframe)
	data := body["data"].(map[string]any)
	assert.Equal(t, "30d", data["timeframe"])

	status, _ = f.do(t, "POST", "/api/analytics/admin/shop/widget", "editor", nil)
	require.Equal(t, 200, status)
	assert.Equal(t, descriptor.Timeframe7d, f.analyzer.timeframe)

	status, _ = f.do(t, "POST", "/api/analytics/admin/shop/widget", "editor", map[string]any{"timeframe": "2w"})
	assert.Equal(t, 400, status)

	status, _ = f.do(t, "POST", "/api/analytics/admin/shop/widget", "reader", nil)
	assert.Equal(t, 403, status)
	assert.Equal(t, 2, f.analyzer.calls)
}

func TestState_Lifecycle(t *testing.T) {
	f := newFixture(t)
	path := "/api/state/admin/shop/widget"

	status, body := f.do(t, "GET", path, "reader", nil)
	require.Equal(t, 200, status)
	assert.Equal(t, float64(10), body["data"].(map[string]any)["pageSize"])

	status, body = f.do(t, "PUT", path, "reader", map[string]any{"page": 2, "pageSize": 20, "sort": []any{map[string]any{"key": "name"}}})
	require.Equal(t, 200, status)
	rev := body["data"].(map[string]any)["revision"].(string)
	assert.NotEmpty(t, rev)

	status, body = f.do(t, "PUT", path, "reader", map[string]any{"sort": []any{map[string]any{"key": "id"}}})
	assert.Equal(t, 422, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, _ = f.do(t, "PUT", path, "reader", map[string]any{"page": 3, "revision": "01ARZ3NDEKTSV4RRFFQ69G5FAV"})
	assert.Equal(t, 409, status)

	status, body = f.do(t, "GET", path, "reader", nil)
	require.Equal(t, 200, status)
	assert.Equal(t, float64(20), body["data"].(map[string]any)["pageSize"])

	status, _ = f.do(t, "DELETE", "/api/state", "reader", nil)
	assert.Equal(t, 204, status)

	status, body = f.do(t, "GET", path, "reader", nil)
	require.Equal(t, 200, status)
	assert.Equal(t, float64(10), body["data"].(map[string]any)["pageSize"])
}
