package repositories

import (
	"context"
	_ "embed"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/eduai-platform/internal/logger"
)

//go:embed schema.sql
var schema string

// EnsureSchema creates the hosted tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	logger.Log.Infow("schema ensured", "error", err)
	return err
}
