package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Schema creates the app_user and habit tables. Every statement is idempotent.
//
//go:embed schema.sql
var Schema string

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	tag, err := pool.Exec(ctx, Schema)
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Debugf("schema applied: %s", tag.String())
	return nil
}
