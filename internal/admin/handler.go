package admin

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"datatable-backend/internal/descriptor"
	"datatable-backend/internal/engine"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/instrument"
	"datatable-backend/internal/models"
)

// Schema applies a models catalog and permission keys to the database.
// *store.Store implements it.
type Schema interface {
	Bootstrap(ctx context.Context, cat *models.Catalog) error
	SyncPermissions(ctx context.Context, keys []string) (int64, error)
}

// GrantCache drops cached permission grants. *auth.CachedResolver
// implements it.
type GrantCache interface {
	InvalidateAll(ctx context.Context) error
}

// Source says where a reload reads its inputs from and what it refreshes.
type Source struct {
	ModelsPath    string
	LocalesDir    string
	DefaultLocale string
	// Build returns freshly built descriptor bundles.
	Build func() []*descriptor.Bundle

	// Schema, when set, gets tables for new models before the swap.
	Schema Schema
	// SyncPermissions also inserts the permission keys of the new bundles
	// plus ExtraPermissions.
	SyncPermissions  bool
	ExtraPermissions []string
	// Grants, when set, is flushed after a successful reload.
	Grants GrantCache
}

type Handler struct {
	registry *descriptor.Registry
	models   *models.Catalog
	locales  *i18n.Catalog
	source   Source
	metrics  *instrument.Metrics
	log      *zap.Logger

	reloadMu sync.Mutex
}

func NewHandler(reg *descriptor.Registry, cat *models.Catalog, locales *i18n.Catalog, src Source, m *instrument.Metrics, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{registry: reg, models: cat, locales: locales, source: src, metrics: m, log: log}
}

// RegisterAdminRoutes mounts the admin API. middleware typically
// authenticates and requires access.admin.
func RegisterAdminRoutes(app *fiber.App, h *Handler, middleware ...fiber.Handler) {
	admin := app.Group("/api/_admin")
	with := func(fn fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, middleware...), fn)
	}

	admin.Get("/entities", with(h.ListEntities)...)
	admin.Get("/entities/*", with(h.GetEntity)...)
	admin.Get("/lint", with(h.Lint)...)
	admin.Post("/reload", with(h.Reload)...)
}

// EntityInfo is the admin listing entry of a bundle.
type EntityInfo struct {
	ID          string   `json:"id"`
	Model       string   `json:"model"`
	Endpoint    string   `json:"endpoint"`
	Permissions []string `json:"permissions"`
	Columns     int      `json:"columns"`
	Forms       []string `json:"forms"`
	Analytics   int      `json:"analytics"`
}

func info(b *descriptor.Bundle) EntityInfo {
	e := EntityInfo{
		ID:          b.ID(),
		Model:       b.Model,
		Endpoint:    b.Endpoint,
		Permissions: descriptor.PermissionKeys([]*descriptor.Bundle{b}),
		Columns:     len(b.Columns),
		Forms:       []string{},
		Analytics:   len(b.Analytics.Items()),
	}
	for _, m := range []descriptor.Mode{descriptor.ModeCreate, descriptor.ModeEdit} {
		if b.Form.Section(m) != nil {
			e.Forms = append(e.Forms, string(m))
		}
	}
	return e
}

// --- Entity Endpoints ---

func (h *Handler) ListEntities(c *fiber.Ctx) error {
	bundles := h.registry.All()
	out := make([]EntityInfo, len(bundles))
	for i, b := range bundles {
		out[i] = info(b)
	}
	return c.JSON(fiber.Map{"data": out})
}

// GetEntity returns the unresolved bundle: translation keys are left as
// keys and no permission gating applies.
func (h *Handler) GetEntity(c *fiber.Ctx) error {
	id := strings.Trim(c.Params("*"), "/")
	b := h.registry.Get(id)
	if b == nil {
		return engine.UnknownEntityError(id)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"bundle":      b,
		"permissions": descriptor.PermissionKeys([]*descriptor.Bundle{b}),
		"issues":      nonNil(descriptor.LintBundle(b, h.models, h.locales)),
	}})
}

// --- Lint & Reload ---

func (h *Handler) Lint(c *fiber.Ctx) error {
	issues := descriptor.Lint(h.registry.All(), h.models, h.locales)
	return c.JSON(fiber.Map{"data": nonNil(issues), "blocking": descriptor.HasBlocking(issues)})
}

// Reload re-reads the models catalog and locales, rebuilds every bundle and
// swaps them in. Nothing changes when lint reports a blocking issue.
func (h *Handler) Reload(c *fiber.Ctx) error {
	issues, err := h.reload(c.UserContext())
	if err != nil {
		h.countReload("error")
		return err
	}
	if descriptor.HasBlocking(issues) {
		h.countReload("rejected")
		details := make([]engine.ErrorDetail, 0, len(issues))
		for _, is := range issues {
			if !is.Blocking() {
				continue
			}
			details = append(details, engine.ErrorDetail{Field: is.Entity + "." + is.Field, Rule: is.Code, Message: is.Message})
		}
		return &engine.AppError{Code: "LINT_FAILED", Status: 422, Message: "Descriptor lint failed; catalog not reloaded", Details: details}
	}
	h.countReload("ok")
	return c.JSON(fiber.Map{"data": fiber.Map{
		"entities": h.registry.Len(),
		"warnings": nonNil(issues),
	}})
}

func (h *Handler) reload(ctx context.Context) ([]descriptor.Issue, error) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	cat, err := models.Load(h.source.ModelsPath)
	if err != nil {
		return nil, engine.NewAppError("RELOAD_FAILED", 422, err.Error())
	}
	locales, err := i18n.LoadDir(h.source.LocalesDir, h.source.DefaultLocale)
	if err != nil {
		return nil, engine.NewAppError("RELOAD_FAILED", 422, err.Error())
	}
	bundles := h.source.Build()

	issues := descriptor.Lint(bundles, cat, locales)
	if descriptor.HasBlocking(issues) {
		h.log.Warn("reload rejected by lint", zap.Int("issues", len(issues)))
		return issues, nil
	}

	if err := h.applySchema(ctx, cat, bundles); err != nil {
		return nil, err
	}

	h.models.Replace(cat)
	h.locales.Replace(locales)
	h.registry.Load(bundles)
	if h.source.Grants != nil {
		if err := h.source.Grants.InvalidateAll(ctx); err != nil {
			h.log.Warn("grant cache not flushed", zap.Error(err))
		}
	}
	Report(h.log, h.metrics, h.registry.Len(), issues)
	return issues, nil
}

// applySchema creates missing tables and permission rows so analytics and
// grants never see a model or key the database lacks.
func (h *Handler) applySchema(ctx context.Context, cat *models.Catalog, bundles []*descriptor.Bundle) error {
	db := h.source.Schema
	if db == nil {
		return nil
	}
	if err := db.Bootstrap(ctx, cat); err != nil {
		return fmt.Errorf("bootstrap reloaded models: %w", err)
	}
	if !h.source.SyncPermissions {
		return nil
	}
	keys := append(descriptor.PermissionKeys(bundles), h.source.ExtraPermissions...)
	n, err := db.SyncPermissions(ctx, keys)
	if err != nil {
		return fmt.Errorf("sync permissions: %w", err)
	}
	h.log.Info("permissions synced", zap.Int("keys", len(keys)), zap.Int64("added", n))
	return nil
}

func (h *Handler) countReload(result string) {
	if h.metrics != nil {
		h.metrics.CatalogReloads.WithLabelValues(result).Inc()
	}
}

// Report logs lint issues as warnings and publishes them as metrics. Lint
// findings are configuration errors; they never reach end users.
func Report(log *zap.Logger, m *instrument.Metrics, loaded int, issues []descriptor.Issue) {
	counts := make(map[string]int)
	for _, is := range issues {
		counts[is.Code]++
		log.Warn("descriptor lint",
			zap.String("entity", is.Entity),
			zap.String("field", is.Field),
			zap.String("code", is.Code),
			zap.String("message", is.Message),
			zap.Bool("blocking", is.Blocking()),
		)
	}
	log.Info("descriptors loaded", zap.Int("entities", loaded), zap.Int("lint_issues", len(issues)))
	if m != nil {
		m.RecordLint(counts)
		m.DescriptorsLoaded.Set(float64(loaded))
	}
}

func nonNil(issues []descriptor.Issue) []descriptor.Issue {
	if issues == nil {
		return []descriptor.Issue{}
	}
	return issues
}
