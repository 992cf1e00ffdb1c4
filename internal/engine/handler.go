package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"datatable-backend/internal/descriptor"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/permission"
	"datatable-backend/internal/state"
	"datatable-backend/internal/store"
)

// Analyzer evaluates analytics descriptors. *store.Aggregator implements it.
type Analyzer interface {
	Run(ctx context.Context, cfg descriptor.AnalyticsConfig, tf descriptor.Timeframe) (*store.Report, error)
}

// Handler serves resolved descriptors, submission validation, analytics and
// table state.
type Handler struct {
	registry  *descriptor.Registry
	locales   *i18n.Catalog
	states    *state.Store
	analytics Analyzer
	log       *zap.Logger
}

func NewHandler(reg *descriptor.Registry, locales *i18n.Catalog, states *state.Store, analytics Analyzer, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{registry: reg, locales: locales, states: states, analytics: analytics, log: log}
}

// List handles GET /api/descriptors. Bundles the caller cannot access are
// left out without an error.
func (h *Handler) List(c *fiber.Ctx) error {
	user := getUser(c)
	t := h.translator(c)
	out := make([]descriptor.Summary, 0, h.registry.Len())
	for _, b := range h.registry.All() {
		if !permission.Allowed(user, b.Permissions.Access) {
			continue
		}
		out = append(out, descriptor.Summarize(b, t, user))
	}
	return c.JSON(fiber.Map{"data": out, "locale": t.Locale()})
}

// Get handles GET /api/descriptors/*.
func (h *Handler) Get(c *fiber.Ctx) error {
	b, err := h.resolveBundle(c, permission.Access)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": descriptor.Resolve(b, h.translator(c), getUser(c))})
}

// Validate handles POST /api/validate/*?mode=create|edit.
func (h *Handler) Validate(c *fiber.Ctx) error {
	mode := descriptor.Mode(c.Query("mode", string(descriptor.ModeCreate)))
	var action permission.Action
	switch mode {
	case descriptor.ModeCreate:
		action = permission.Create
	case descriptor.ModeEdit:
		action = permission.Edit
	default:
		return BadRequestError("mode must be create or edit")
	}

	b, err := h.resolveBundle(c, action)
	if err != nil {
		return err
	}
	section := b.Form.Section(mode)
	if section == nil {
		return NotFoundError("form", b.ID()+"#"+string(mode))
	}

	// A blank submission is an empty form, so required fields report inline.
	values := map[string]any{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&values); err != nil {
			return BadRequestError("Invalid JSON body")
		}
	}

	violations := descriptor.ValidateSubmission(section, values)
	if len(violations) > 0 {
		t := h.translator(c)
		details := make([]ErrorDetail, len(violations))
		for i, v := range violations {
			details[i] = ErrorDetail{Field: v.Field, Rule: v.Rule, Message: v.Text(t)}
		}
		return ValidationError(details)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"valid": true}})
}

// Analytics handles POST /api/analytics/*.
func (h *Handler) Analytics(c *fiber.Ctx) error {
	b, err := h.resolveBundle(c, permission.View)
	if err != nil {
		return err
	}

	var body struct {
		Timeframe descriptor.Timeframe `json:"timeframe"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return BadRequestError("Invalid JSON body")
		}
	}
	if body.Timeframe == "" {
		body.Timeframe = descriptor.Timeframe7d
	}
	if !body.Timeframe.Valid() {
		return BadRequestError("Unknown timeframe: " + string(body.Timeframe))
	}
	if len(b.Analytics) == 0 {
		return c.JSON(fiber.Map{"data": &store.Report{Timeframe: body.Timeframe, KPIs: []store.Metric{}, Charts: []store.Chart{}}})
	}

	rep, err := h.analytics.Run(c.UserContext(), b.Analytics, body.Timeframe)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rep})
}

// GetState handles GET /api/state/*.
func (h *Handler) GetState(c *fiber.Ctx) error {
	b, err := h.resolveBundle(c, permission.Access)
	if err != nil {
		return err
	}
	st, err := h.states.Init(c.UserContext(), getUser(c).ID, b)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": st})
}

// PutState handles PUT /api/state/*.
func (h *Handler) PutState(c *fiber.Ctx) error {
	b, err := h.resolveBundle(c, permission.Access)
	if err != nil {
		return err
	}
	var st state.TableState
	if err := c.BodyParser(&st); err != nil {
		return BadRequestError("Invalid JSON body")
	}

	saved, err := h.states.Put(c.UserContext(), getUser(c).ID, b, st)
	if err != nil {
		var inv *state.InvalidError
		if errors.As(err, &inv) {
			details := make([]ErrorDetail, len(inv.Issues))
			for i, is := range inv.Issues {
				details[i] = ErrorDetail{Field: is.Field, Rule: is.Rule, Message: is.Message}
			}
			return ValidationError(details)
		}
		if errors.Is(err, state.ErrConflict) {
			return ConflictError(err.Error())
		}
		return err
	}
	return c.JSON(fiber.Map{"data": saved})
}

// ClearState handles DELETE /api/state/*.
func (h *Handler) ClearState(c *fiber.Ctx) error {
	b, err := h.resolveBundle(c, permission.Access)
	if err != nil {
		return err
	}
	if err := h.states.Clear(c.UserContext(), getUser(c).ID, b); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResetState handles DELETE /api/state.
func (h *Handler) ResetState(c *fiber.Ctx) error {
	user := getUser(c)
	if user == nil {
		return UnauthorizedError("Missing auth token")
	}
	if err := h.states.Reset(c.UserContext(), user.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// resolveBundle finds the bundle named by the wildcard and checks the caller
// holds the key for action. Access is always required.
func (h *Handler) resolveBundle(c *fiber.Ctx, action permission.Action) (*descriptor.Bundle, error) {
	id := strings.Trim(c.Params("*"), "/")
	b := h.registry.Get(id)
	if b == nil {
		return nil, UnknownEntityError(id)
	}
	user := getUser(c)
	if user == nil {
		return nil, UnauthorizedError("Missing auth token")
	}
	if !permission.Allowed(user, b.Permissions.Access) {
		return nil, ForbiddenError("Missing permission " + b.Permissions.Access.String())
	}
	if action != permission.Access {
		if key := b.Permissions.ByAction(action); !permission.Allowed(user, key) {
			return nil, ForbiddenError("Missing permission " + key.String())
		}
	}
	return b, nil
}

// translator picks the locale from ?locale= or Accept-Language.
func (h *Handler) translator(c *fiber.Ctx) i18n.Translator {
	if l := c.Query("locale"); l != "" {
		return h.locales.For(l)
	}
	return h.locales.For(c.Get(fiber.HeaderAcceptLanguage))
}

func getUser(c *fiber.Ctx) *permission.User {
	user, _ := c.Locals("user").(*permission.User)
	return user
}
