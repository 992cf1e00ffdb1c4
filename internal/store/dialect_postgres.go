package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"datatable-backend/internal/descriptor"
	"datatable-backend/internal/models"
)

// PostgresDialect implements Dialect for PostgreSQL via pgx/stdlib.
type PostgresDialect struct{}

func (d *PostgresDialect) Name() string       { return "postgres" }
func (d *PostgresDialect) DriverName() string { return "pgx" }

func (d *PostgresDialect) NewParamBuilder() ParamBuilder {
	return &pgParamBuilder{}
}

func (d *PostgresDialect) SerialKey() string { return "INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY" }
func (d *PostgresDialect) Arg(v any) any     { return v }

func (d *PostgresDialect) ColumnType(fieldType string) string {
	switch fieldType {
	case models.TypeString, models.TypeText, models.TypeEnum:
		return "TEXT"
	case models.TypeInteger:
		return "INTEGER"
	case models.TypeDecimal:
		return "NUMERIC"
	case models.TypeBoolean:
		return "BOOLEAN"
	case models.TypeUUID:
		return "UUID"
	case models.TypeTimestamp:
		return "TIMESTAMPTZ"
	case models.TypeJSON:
		return "JSONB"
	default:
		return "TEXT"
	}
}

func (d *PostgresDialect) BucketExpr(col string, bucket descriptor.Bucket) string {
	return fmt.Sprintf("date_trunc('%s', %s AT TIME ZONE 'UTC')", bucket, col)
}

func (d *PostgresDialect) TableExists(ctx context.Context, db *sql.DB, tableName string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = $1 AND table_schema = 'public')`,
		tableName,
	).Scan(&exists)
	return exists, err
}

func (d *PostgresDialect) MapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	}
	// Errors that crossed database/sql may only keep the message.
	errStr := err.Error()
	if strings.Contains(errStr, "23505") || strings.Contains(errStr, "duplicate key") {
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	}
	return err
}
