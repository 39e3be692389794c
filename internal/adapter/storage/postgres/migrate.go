package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the embedded schema. It is safe to run repeatedly.
func Migrate(ctx context.Context, pool Pool, log zerolog.Logger) error {
	// Simple protocol: the schema is several statements in one string.
	if _, err := pool.Exec(ctx, schemaSQL, pgx.QueryExecModeSimpleProtocol); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Info().Msg("database schema applied")
	return nil
}
