package db

import (
	"context"
	"fmt"
)

// schemaDDL is idempotent and safe to run on every startup.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS nodes (
    id          BIGSERIAL PRIMARY KEY,
    public_key  TEXT NOT NULL UNIQUE,
    alias       TEXT,
    channels    BIGINT NOT NULL DEFAULT 0,
    capacity    BIGINT NOT NULL DEFAULT 0,
    first_seen  BIGINT NOT NULL DEFAULT 0,
    updated_at  BIGINT NOT NULL DEFAULT 0,
    city        TEXT,
    country     TEXT,
    imported_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema creates the nodes table if it does not exist yet.
func EnsureSchema(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to create nodes table: %w", err)
	}
	return nil
}
