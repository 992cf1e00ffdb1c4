// Package state keeps each user's DataTable state (paging, sorting,
// filters, hidden columns) in an explicit container backed by a cache.
package state

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	"datatable-backend/internal/cache"
	"datatable-backend/internal/descriptor"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type SortKey struct {
	Key  string `json:"key" validate:"required"`
	Desc bool   `json:"desc"`
}

// TableState is the persisted view state of one table for one user.
type TableState struct {
	Entity        string         `json:"entity"`
	Page          int            `json:"page" validate:"min=1"`
	PageSize      int            `json:"pageSize" validate:"oneof=10 20 50 100"`
	Search        string         `json:"search,omitempty" validate:"max=200"`
	Sort          []SortKey      `json:"sort,omitempty" validate:"max=3,dive"`
	Filters       map[string]any `json:"filters,omitempty"`
	HiddenColumns []string       `json:"hiddenColumns,omitempty" validate:"dive,required"`
	Revision      string         `json:"revision,omitempty"`
	UpdatedAt     time.Time      `json:"updatedAt,omitzero"`
}

// Default returns the initial state of an entity table.
func Default(entity string) TableState {
	return TableState{Entity: entity, Page: DefaultPage, PageSize: DefaultPageSize}
}

// ErrConflict is returned by Put when the caller's revision is stale.
var ErrConflict = errors.New("table state was modified concurrently")

// Issue is one rejected part of a submitted state.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// InvalidError lists everything wrong with a submitted state.
type InvalidError struct {
	Issues []Issue
}

func (e *InvalidError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.Field + ": " + is.Message
	}
	return "invalid table state: " + strings.Join(parts, "; ")
}

// Store is the table state container. It holds no global state; callers
// create one per process and pass it where needed.
type Store struct {
	cache    cache.Cache
	ttl      time.Duration
	validate *validator.Validate
	now      func() time.Time
}

func NewStore(c cache.Cache, ttl time.Duration) *Store {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Store{cache: c, ttl: ttl, validate: v, now: time.Now}
}

func userPrefix(userID string) string {
	return "state:" + userID + ":"
}

func key(userID, entity string) string {
	return userPrefix(userID) + entity
}

// Init returns the stored state or the default one.
func (s *Store) Init(ctx context.Context, userID string, b *descriptor.Bundle) (TableState, error) {
	var st TableState
	found, err := s.cache.Get(ctx, key(userID, b.ID()), &st)
	if err != nil {
		return TableState{}, fmt.Errorf("load table state: %w", err)
	}
	if !found {
		return Default(b.ID()), nil
	}
	return st, nil
}

// Put validates st against the bundle and stores it under a fresh revision.
// A non-empty st.Revision must match the stored one; the check and the
// write are atomic.
func (s *Store) Put(ctx context.Context, userID string, b *descriptor.Bundle, st TableState) (TableState, error) {
	st.Entity = b.ID()
	if st.Page == 0 {
		st.Page = DefaultPage
	}
	if st.PageSize == 0 {
		st.PageSize = DefaultPageSize
	}
	if issues := s.check(b, st); len(issues) > 0 {
		return TableState{}, &InvalidError{Issues: issues}
	}

	var current, saved TableState
	err := s.cache.Update(ctx, key(userID, b.ID()), &current, s.ttl, func(found bool) (any, error) {
		if !found {
			current = Default(b.ID())
		}
		if st.Revision != "" && st.Revision != current.Revision {
			return nil, ErrConflict
		}
		saved = st
		saved.Revision = ulid.Make().String()
		saved.UpdatedAt = s.now().UTC()
		return saved, nil
	})
	if errors.Is(err, ErrConflict) {
		return TableState{}, ErrConflict
	}
	if err != nil {
		return TableState{}, fmt.Errorf("save table state: %w", err)
	}
	return saved, nil
}

// Clear drops the state of one table.
func (s *Store) Clear(ctx context.Context, userID string, b *descriptor.Bundle) error {
	return s.cache.Delete(ctx, key(userID, b.ID()))
}

// Reset drops every table state of the user. Called on logout.
func (s *Store) Reset(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	if err := s.cache.DeletePrefix(ctx, userPrefix(userID)); err != nil {
		return fmt.Errorf("reset table state: %w", err)
	}
	return nil
}

func (s *Store) check(b *descriptor.Bundle, st TableState) []Issue {
	var issues []Issue
	if err := s.validate.Struct(st); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []Issue{{Field: "state", Rule: "invalid", Message: err.Error()}}
		}
		for _, fe := range verrs {
			issues = append(issues, Issue{
				Field:   strings.TrimPrefix(fe.Namespace(), "TableState."),
				Rule:    fe.Tag(),
				Message: fmt.Sprintf("failed %s %s", fe.Tag(), fe.Param()),
			})
		}
	}

	for i, sk := range st.Sort {
		c, ok := b.Column(sk.Key)
		if sk.Key != "" && (!ok || !c.Sortable) {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("sort[%d]", i),
				Rule:    "sortable",
				Message: fmt.Sprintf("column %q is not sortable", sk.Key),
			})
		}
	}
	for k := range st.Filters {
		if c, ok := b.Column(k); !ok || !c.Filterable {
			issues = append(issues, Issue{
				Field:   "filters." + k,
				Rule:    "filterable",
				Message: fmt.Sprintf("column %q is not filterable", k),
			})
		}
	}
	for i, k := range st.HiddenColumns {
		if _, ok := b.Column(k); k != "" && !ok {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("hiddenColumns[%d]", i),
				Rule:    "column",
				Message: fmt.Sprintf("unknown column %q", k),
			})
		}
	}
	if st.Search != "" && !searchable(b) {
		issues = append(issues, Issue{Field: "search", Rule: "searchable", Message: "table has no searchable columns"})
	}
	return issues
}

func searchable(b *descriptor.Bundle) bool {
	for _, c := range b.Columns {
		if c.Searchable {
			return true
		}
	}
	return false
}
