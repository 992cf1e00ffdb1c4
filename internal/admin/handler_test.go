package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datatable-backend/internal/descriptor"
	"datatable-backend/internal/engine"
	"datatable-backend/internal/entities"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/instrument"
	"datatable-backend/internal/models"
	"datatable-backend/internal/store"
)

var shipped = Source{
	ModelsPath:    "../../config/models.yaml",
	LocalesDir:    "../../locales",
	DefaultLocale: "en",
	Build:         entities.All,
}

type fixture struct {
	app      *fiber.App
	registry *descriptor.Registry
	models   *models.Catalog
	metrics  *instrument.Metrics
}

func newFixture(t *testing.T, src Source) *fixture {
	t.Helper()
	cat, err := models.New(nil)
	require.NoError(t, err)
	locales, err := i18n.NewCatalog("en", map[string]map[string]string{"en": {}})
	require.NoError(t, err)

	f := &fixture{registry: descriptor.NewRegistry(), models: cat, metrics: instrument.NewMetrics("test")}
	h := NewHandler(f.registry, cat, locales, src, f.metrics, nil)
	f.app = fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *engine.AppError
			if errors.As(err, &appErr) {
				return c.Status(appErr.Status).JSON(engine.ErrorResponse{Error: appErr})
			}
			return c.Status(500).SendString(err.Error())
		},
	})
	RegisterAdminRoutes(f.app, h)
	return f
}

func (f *fixture) do(t *testing.T, method, path string) (int, map[string]any) {
	t.Helper()
	resp, err := f.app.Test(httptest.NewRequest(method, path, nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestReload_ShippedCatalog(t *testing.T) {
	f := newFixture(t, shipped)

	status, body := f.do(t, "POST", "/api/_admin/reload")
	require.Equal(t, 200, status, body)
	assert.Equal(t, float64(15), body["data"].(map[string]any)["entities"])
	assert.Equal(t, 15, f.registry.Len())
	assert.True(t, f.models.Has("user"))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CatalogReloads.WithLabelValues("ok")))

	status, body = f.do(t, "GET", "/api/_admin/entities")
	require.Equal(t, 200, status)
	list := body["data"].([]any)
	require.Len(t, list, 15)

	status, body = f.do(t, "GET", "/api/_admin/entities/admin/crm/role")
	require.Equal(t, 200, status)
	data := body["data"].(map[string]any)
	assert.Contains(t, data["permissions"], "access.role")
	assert.Empty(t, data["issues"])

	status, body = f.do(t, "GET", "/api/_admin/lint")
	require.Equal(t, 200, status)
	assert.Equal(t, false, body["blocking"])
}

func TestReload_RejectsBlockingLint(t *testing.T) {
	src := shipped
	src.Build = func() []*descriptor.Bundle {
		b := entities.Role()
		b.Columns[0].Render = &descriptor.Render{Type: descriptor.RenderImage}
		return []*descriptor.Bundle{b}
	}
	f := newFixture(t, src)

	status, body := f.do(t, "POST", "/api/_admin/reload")
	require.Equal(t, 422, status)
	e := body["error"].(map[string]any)
	assert.Equal(t, "LINT_FAILED", e["code"])
	require.NotEmpty(t, e["details"])
	assert.Equal(t, descriptor.CodeRenderTypeInvalid, e["details"].([]any)[0].(map[string]any)["rule"])

	assert.Equal(t, 0, f.registry.Len())
	assert.False(t, f.models.Has("user"), "models must not be swapped on a rejected reload")
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CatalogReloads.WithLabelValues("rejected")))
}

func TestReload_MissingModelsFile(t *testing.T) {
	src := shipped
	src.ModelsPath = "does-not-exist.yaml"
	f := newFixture(t, src)

	status, body := f.do(t, "POST", "/api/_admin/reload")
	assert.Equal(t, 422, status)
	assert.Equal(t, "RELOAD_FAILED", body["error"].(map[string]any)["code"])
}

func TestGetEntity_Unknown(t *testing.T) {
	f := newFixture(t, shipped)
	status, body := f.do(t, "GET", "/api/_admin/entities/admin/crm/ghost")
	assert.Equal(t, 404, status)
	assert.Equal(t, "UNKNOWN_ENTITY", body["error"].(map[string]any)["code"])
}

type grantCache struct{ flushed int }

func (g *grantCache) InvalidateAll(context.Context) error {
	g.flushed++
	return nil
}

func TestReload_AppliesSchemaAndFlushesGrants(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(ctx, "sqlite", ":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	shippedModels, err := os.ReadFile(shipped.ModelsPath)
	require.NoError(t, err)
	extra := "\n  - name: gadget\n    table: gadgets\n    fields:\n" +
		"      - { name: id, type: uuid }\n      - { name: createdAt, type: timestamp }\n"
	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, append(shippedModels, extra...), 0o600))

	grants := &grantCache{}
	src := shipped
	src.ModelsPath = path
	src.Schema = db
	src.SyncPermissions = true
	src.ExtraPermissions = []string{"access.admin"}
	src.Grants = grants
	f := newFixture(t, src)

	status, body := f.do(t, "POST", "/api/_admin/reload")
	require.Equal(t, 200, status, body)
	assert.True(t, f.models.Has("gadget"))
	assert.Equal(t, 1, grants.flushed)

	for _, table := range []string{"gadgets", "users", "permissions"} {
		ok, err := db.Dialect.TableExists(ctx, db.DB, table)
		require.NoError(t, err)
		assert.True(t, ok, table)
	}
	row, err := store.QueryRow(ctx, db.DB, "SELECT COUNT(*) AS n FROM permissions WHERE name = ?1", "access.admin")
	require.NoError(t, err)
	assert.EqualValues(t, 1, row["n"])
	row, err = store.QueryRow(ctx, db.DB, "SELECT COUNT(*) AS n FROM permissions WHERE name = ?1", "access.role")
	require.NoError(t, err)
	assert.EqualValues(t, 1, row["n"])
}

func TestReload_RejectedLeavesSchemaAndGrantsAlone(t *testing.T) {
	grants := &grantCache{}
	src := shipped
	src.Build = func() []*descriptor.Bundle {
		b := entities.Role()
		b.Columns[0].Render = &descriptor.Render{Type: descriptor.RenderImage}
		return []*descriptor.Bundle{b}
	}
	src.Grants = grants
	f := newFixture(t, src)

	status, _ := f.do(t, "POST", "/api/_admin/reload")
	require.Equal(t, 422, status)
	assert.Zero(t, grants.flushed)
}
