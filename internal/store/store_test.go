package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datatable-backend/internal/descriptor"
	"datatable-backend/internal/models"
)

const testCatalog = `
models:
  - name: user
    table: users
    fields:
      - {name: id, type: uuid}
      - {name: email, type: string}
      - {name: roleId, type: integer}
      - {name: status, type: enum, values: [ACTIVE, INACTIVE]}
      - {name: createdAt, type: timestamp}
  - name: role
    table: roles
    fields:
      - {name: id, type: integer}
      - {name: name, type: string}
  - name: ledger
    table: ledgers
    fields:
      - {name: id, type: uuid}
      - {name: amount, type: decimal}
      - {name: verified, type: boolean}
      - {name: createdAt, type: timestamp}
`

func openSQLite(t *testing.T) (*Store, *models.Catalog) {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, "sqlite", ":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	cat, err := models.Parse([]byte(testCatalog))
	require.NoError(t, err)
	require.NoError(t, s.Bootstrap(ctx, cat))
	return s, cat
}

func insert(t *testing.T, s *Store, table string, cols []string, vals ...any) {
	t.Helper()
	pb := s.Dialect.NewParamBuilder()
	quoted := make([]string, len(cols))
	phs := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = QuoteIdent(c)
		phs[i] = pb.Add(s.Dialect.Arg(vals[i]))
	}
	query := "INSERT INTO " + QuoteIdent(table) + " (" + join(quoted) + ") VALUES (" + join(phs) + ")"
	_, err := Exec(context.Background(), s.DB, query, pb.Params()...)
	require.NoError(t, err)
}

func join(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

func TestBootstrap_CreatesTables(t *testing.T) {
	s, _ := openSQLite(t)
	ctx := context.Background()
	for _, table := range []string{"users", "roles", "ledgers", "permissions", "role_permissions"} {
		ok, err := s.Dialect.TableExists(ctx, s.DB, table)
		require.NoError(t, err)
		assert.True(t, ok, table)
	}
}

func TestSyncPermissions_Idempotent(t *testing.T) {
	s, _ := openSQLite(t)
	ctx := context.Background()

	n, err := s.SyncPermissions(ctx, []string{"access.user", "view.user"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.SyncPermissions(ctx, []string{"access.user", "edit.user"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSQLite_UniqueViolation(t *testing.T) {
	s, _ := openSQLite(t)
	ctx := context.Background()
	_, err := Exec(ctx, s.DB, "INSERT INTO permissions (name) VALUES (?1)", "access.user")
	require.NoError(t, err)
	_, err = Exec(ctx, s.DB, "INSERT INTO permissions (name) VALUES (?1)", "access.user")
	assert.ErrorIs(t, MapError(s.Dialect, err), ErrUniqueViolation)
}

func TestPermissionResolver(t *testing.T) {
	s, _ := openSQLite(t)
	ctx := context.Background()

	_, err := s.SyncPermissions(ctx, []string{"access.user", "view.user", "edit.user", "access.admin"})
	require.NoError(t, err)
	insert(t, s, "roles", []string{"id", "name"}, 1, "Support")
	insert(t, s, "roles", []string{"id", "name"}, 2, "Super Admin")
	require.NoError(t, s.GrantRole(ctx, 1, "access.user", "view.user"))

	now := time.Now()
	cols := []string{"id", "email", "roleId", "createdAt"}
	insert(t, s, "users", cols, "u-support", "s@example.com", 1, now)
	insert(t, s, "users", cols, "u-root", "r@example.com", 2, now)
	insert(t, s, "users", []string{"id", "email"}, "u-none", "n@example.com")

	r := NewPermissionResolver(s, "Super Admin")

	u, err := r.Resolve(ctx, "u-support")
	require.NoError(t, err)
	assert.Equal(t, "Support", u.Role)
	assert.Equal(t, []string{"access.user", "view.user"}, u.Grants.List())

	u, err = r.Resolve(ctx, "u-root")
	require.NoError(t, err)
	assert.Len(t, u.Grants, 4)

	u, err = r.Resolve(ctx, "u-none")
	require.NoError(t, err)
	assert.Empty(t, u.Grants)

	_, err = r.Resolve(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAggregator(t *testing.T) {
	s, cat := openSQLite(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 15, 12, 30, 0, 0, time.UTC)

	cols := []string{"id", "email", "status", "createdAt"}
	insert(t, s, "users", cols, "a", "a@x", "ACTIVE", now.Add(-1*time.Hour))
	insert(t, s, "users", cols, "b", "b@x", "ACTIVE", now.AddDate(0, 0, -2))
	insert(t, s, "users", cols, "c", "c@x", "INACTIVE", now.AddDate(0, 0, -2))
	insert(t, s, "users", cols, "d", "d@x", "ACTIVE", now.AddDate(0, -2, 0))

	lcols := []string{"id", "amount", "verified", "createdAt"}
	insert(t, s, "ledgers", lcols, "l1", 10.5, true, now)
	insert(t, s, "ledgers", lcols, "l2", 4.5, false, now)

	cfg := descriptor.AnalyticsConfig{
		{Type: descriptor.GroupKPI, Items: []descriptor.AnalyticsItem{
			{ID: "total", Model: "user"},
			{ID: "active", Model: "user", Aggregation: &descriptor.Aggregation{Field: "status", Value: "ACTIVE"}},
			{ID: "verifiedAmount", Model: "ledger", Sum: "amount", Aggregation: &descriptor.Aggregation{Field: "verified", Value: true}},
		}},
		{Type: descriptor.GroupChart, Items: []descriptor.AnalyticsItem{
			{ID: "growth", Model: "user", ChartType: descriptor.ChartLine},
			{ID: "status", Model: "user", ChartType: descriptor.ChartPie, Series: []descriptor.Series{
				{ID: "ACTIVE", Aggregation: descriptor.Aggregation{Field: "status", Value: "ACTIVE"}},
				{ID: "INACTIVE", Aggregation: descriptor.Aggregation{Field: "status", Value: "INACTIVE"}},
			}},
		}},
	}

	agg := NewAggregator(s, cat)
	agg.now = func() time.Time { return now }

	rep, err := agg.Run(ctx, cfg, descriptor.Timeframe7d)
	require.NoError(t, err)

	require.Len(t, rep.KPIs, 3)
	assert.True(t, rep.KPIs[0].Value.Equal(decimal.NewFromInt(4)))
	assert.True(t, rep.KPIs[1].Value.Equal(decimal.NewFromInt(3)))
	assert.True(t, rep.KPIs[2].Value.Equal(decimal.RequireFromString("10.5")))

	require.Len(t, rep.Charts, 2)
	growth := rep.Charts[0]
	require.Len(t, growth.Points, 7)
	assert.Equal(t, time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC), growth.Points[0].Bucket)
	assert.Equal(t, int64(2), growth.Points[4].Count)
	assert.Equal(t, int64(1), growth.Points[6].Count)
	var total int64
	for _, p := range growth.Points {
		total += p.Count
	}
	assert.Equal(t, int64(3), total)

	pie := rep.Charts[1]
	assert.Equal(t, []Slice{{ID: "ACTIVE", Count: 2}, {ID: "INACTIVE", Count: 1}}, pie.Slices)
}

func TestAggregator_HourBuckets(t *testing.T) {
	s, cat := openSQLite(t)
	now := time.Date(2024, 5, 15, 12, 30, 0, 0, time.UTC)
	cols := []string{"id", "email", "createdAt"}
	insert(t, s, "users", cols, "a", "a@x", now.Add(-10*time.Minute))
	insert(t, s, "users", cols, "b", "b@x", now.Add(-3*time.Hour))

	agg := NewAggregator(s, cat)
	agg.now = func() time.Time { return now }
	cfg := descriptor.AnalyticsConfig{{Type: descriptor.GroupChart, Items: []descriptor.AnalyticsItem{
		{ID: "growth", Model: "user", ChartType: descriptor.ChartBar},
	}}}

	rep, err := agg.Run(context.Background(), cfg, descriptor.Timeframe24h)
	require.NoError(t, err)
	pts := rep.Charts[0].Points
	require.Len(t, pts, 24)
	assert.Equal(t, int64(1), pts[23].Count)
	assert.Equal(t, int64(1), pts[20].Count)
}

func TestAggregator_Rejects(t *testing.T) {
	s, cat := openSQLite(t)
	agg := NewAggregator(s, cat)
	ctx := context.Background()

	_, err := agg.Run(ctx, nil, "2w")
	assert.ErrorIs(t, err, ErrInvalidTimeframe)

	_, err = agg.Run(ctx, descriptor.AnalyticsConfig{{Type: descriptor.GroupKPI, Items: []descriptor.AnalyticsItem{
		{ID: "x", Model: "ghost"},
	}}}, descriptor.Timeframe7d)
	assert.ErrorIs(t, err, ErrUnknownModel)

	_, err = agg.Run(ctx, descriptor.AnalyticsConfig{{Type: descriptor.GroupKPI, Items: []descriptor.AnalyticsItem{
		{ID: "x", Model: "user", Aggregation: &descriptor.Aggregation{Field: "email; DROP TABLE users", Value: 1}},
	}}}, descriptor.Timeframe7d)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestItemTimeframe(t *testing.T) {
	it := descriptor.AnalyticsItem{Timeframes: []descriptor.Timeframe{descriptor.Timeframe30d, descriptor.Timeframe1y}}
	assert.Equal(t, descriptor.Timeframe1y, itemTimeframe(it, descriptor.Timeframe1y))
	assert.Equal(t, descriptor.Timeframe30d, itemTimeframe(it, descriptor.Timeframe7d))
	assert.Equal(t, descriptor.Timeframe7d, itemTimeframe(descriptor.AnalyticsItem{}, descriptor.Timeframe7d))
}
