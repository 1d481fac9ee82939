package db

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"workoutlog/internal/record"
)

// Store is the Postgres record.Store. Record IDs are the BIGSERIAL ids.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Append(ctx context.Context, r record.Record) error {
	const q = `
INSERT INTO workout_records (date, weekday, time_of_day, body_weight, exercise, load_value, reps, memo)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.pool.Exec(ctx, q, r.Date, r.Weekday, r.Time, r.BodyWeight, r.Exercise, r.Load, r.Reps, r.Memo)
	if err != nil {
		return fmt.Errorf("postgres append: %w", err)
	}
	return nil
}

// LoadAll returns every record in insertion order.
func (s *Store) LoadAll(ctx context.Context) ([]record.Record, error) {
	const q = `
SELECT id, date, weekday, time_of_day, body_weight, exercise, load_value, reps, memo
FROM workout_records
ORDER BY id`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("postgres load: %w", err)
	}
	defer rows.Close()

	out := []record.Record{}
	for rows.Next() {
		var (
			id int64
			r  record.Record
		)
		if err := rows.Scan(&id, &r.Date, &r.Weekday, &r.Time, &r.BodyWeight, &r.Exercise, &r.Load, &r.Reps, &r.Memo); err != nil {
			return nil, fmt.Errorf("postgres scan: %w", err)
		}
		r.ID = strconv.FormatInt(id, 10)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres load: %w", err)
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("postgres delete %q: %w", id, record.ErrNotFound)
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM workout_records WHERE id = $1`, n)
	if err != nil {
		return fmt.Errorf("postgres delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("postgres delete %d: %w", n, record.ErrNotFound)
	}
	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
