package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Columns mirror record.Columns. date stays TEXT: the store keeps whatever
// the form sent and the report view drops what it cannot parse.
const schema = `
CREATE TABLE IF NOT EXISTS workout_records (
	id           BIGSERIAL PRIMARY KEY,
	date         TEXT NOT NULL,
	weekday      TEXT NOT NULL DEFAULT '',
	time_of_day  TEXT NOT NULL DEFAULT '',
	body_weight  DOUBLE PRECISION NOT NULL DEFAULT 0,
	exercise     TEXT NOT NULL,
	load_value   DOUBLE PRECISION NOT NULL DEFAULT 0,
	reps         TEXT NOT NULL DEFAULT '',
	memo         TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate ensures tables exist. Call once at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
