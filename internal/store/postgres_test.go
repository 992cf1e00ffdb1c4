package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"datatable-backend/internal/descriptor"
	"datatable-backend/internal/models"
)

func TestMapError_PG_UniqueViolation(t *testing.T) {
	dialect := &PostgresDialect{}
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint \"permissions_name_key\"",
		ConstraintName: "permissions_name_key",
		Detail:         "Key (name)=(access.user) already exists.",
	}
	wrapped := fmt.Errorf("exec: %w", pgErr)

	mapped := MapError(dialect, wrapped)
	require.ErrorIs(t, mapped, ErrUniqueViolation)

	// Original pgconn.PgError should still be extractable
	var extracted *pgconn.PgError
	require.True(t, errors.As(mapped, &extracted))
	assert.Equal(t, "permissions_name_key", extracted.ConstraintName)
}

func TestMapError_PG_OtherError(t *testing.T) {
	err := fmt.Errorf("some other error")
	assert.Equal(t, err, MapError(&PostgresDialect{}, err))
}

func TestMapError_PG_Nil(t *testing.T) {
	assert.NoError(t, MapError(&PostgresDialect{}, nil))
}

func TestPostgresDialect_SQL(t *testing.T) {
	d := &PostgresDialect{}
	assert.Equal(t, `date_trunc('month', "createdAt" AT TIME ZONE 'UTC')`, d.BucketExpr(QuoteIdent("createdAt"), descriptor.BucketMonth))
	assert.Equal(t, "NUMERIC", d.ColumnType(models.TypeDecimal))
	assert.Equal(t, `"id" INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY`, ColumnDDL(d, models.Field{Name: "id", Type: models.TypeInteger}))
	assert.Equal(t, `"id" UUID PRIMARY KEY`, ColumnDDL(d, models.Field{Name: "id", Type: models.TypeUUID}))
	assert.Equal(t, true, d.Arg(true))
}

func TestSQLiteDialect_SQL(t *testing.T) {
	d := &SQLiteDialect{}
	assert.Equal(t, `strftime('%Y-%m-%d %H:00:00', "createdAt")`, d.BucketExpr(QuoteIdent("createdAt"), descriptor.BucketHour))
	assert.Equal(t, 1, d.Arg(true))
	assert.Equal(t, "2024-05-15 12:30:00", d.Arg(time.Date(2024, 5, 15, 14, 30, 0, 0, time.FixedZone("CEST", 2*3600))))
}

// TestPostgres_Integration runs the store against a real Postgres. It is
// skipped in -short mode and when no healthy Docker provider is available.
func TestPostgres_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	pg, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("datatable"),
		postgres.WithUsername("datatable"),
		postgres.WithPassword("datatable"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, pg)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := Open(ctx, "postgres", dsn, 4)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	cat, err := models.Parse([]byte(testCatalog))
	require.NoError(t, err)
	require.NoError(t, s.Bootstrap(ctx, cat))
	require.NoError(t, s.Bootstrap(ctx, cat))

	_, err = s.SyncPermissions(ctx, []string{"access.user", "view.user"})
	require.NoError(t, err)
	insert(t, s, "roles", []string{"id", "name"}, 1, "Support")
	require.NoError(t, s.GrantRole(ctx, 1, "access.user"))

	now := time.Now().UTC()
	insert(t, s, "users", []string{"id", "email", "roleId", "status", "createdAt"},
		"4b0f6f3e-8d0c-4c7e-9a53-0c6f1f8f0a11", "s@example.com", 1, "ACTIVE", now)

	u, err := NewPermissionResolver(s, "Super Admin").Resolve(ctx, "4b0f6f3e-8d0c-4c7e-9a53-0c6f1f8f0a11")
	require.NoError(t, err)
	assert.Equal(t, []string{"access.user"}, u.Grants.List())

	insert(t, s, "ledgers", []string{"id", "amount", "verified", "createdAt"},
		"9d7e1d0a-7c55-4a0e-8f1e-2b1b5b0c7e42", "12.25", true, now)

	rep, err := NewAggregator(s, cat).Run(ctx, descriptor.AnalyticsConfig{
		{Type: descriptor.GroupKPI, Items: []descriptor.AnalyticsItem{
			{ID: "sum", Model: "ledger", Sum: "amount", Aggregation: &descriptor.Aggregation{Field: "verified", Value: true}},
		}},
		{Type: descriptor.GroupChart, Items: []descriptor.AnalyticsItem{
			{ID: "growth", Model: "user", ChartType: descriptor.ChartLine},
		}},
	}, descriptor.Timeframe30d)
	require.NoError(t, err)
	assert.Equal(t, "12.25", rep.KPIs[0].Value.String())
	assert.Equal(t, int64(1), rep.Charts[0].Points[29].Count)
}
