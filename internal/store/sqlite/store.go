package sqlite

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"workoutlog/internal/record"
)

const schema = `
CREATE TABLE IF NOT EXISTS workout_records (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	date        TEXT NOT NULL,
	weekday     TEXT NOT NULL DEFAULT '',
	time_of_day TEXT NOT NULL DEFAULT '',
	body_weight REAL NOT NULL DEFAULT 0,
	exercise    TEXT NOT NULL,
	load_value  REAL NOT NULL DEFAULT 0,
	reps        TEXT NOT NULL DEFAULT '',
	memo        TEXT NOT NULL DEFAULT ''
);`

type row struct {
	ID         int64   `db:"id"`
	Date       string  `db:"date"`
	Weekday    string  `db:"weekday"`
	Time       string  `db:"time_of_day"`
	BodyWeight float64 `db:"body_weight"`
	Exercise   string  `db:"exercise"`
	Load       float64 `db:"load_value"`
	Reps       string  `db:"reps"`
	Memo       string  `db:"memo"`
}

// Store is a single-file SQLite record.Store. Record IDs are rowids.
type Store struct {
	db *sqlx.DB
}

// Open connects to the database at path (":memory:" works) and creates the
// table if needed.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite connect: %w", err)
	}
	// one writer; also keeps ":memory:" on a single database
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Append(ctx context.Context, r record.Record) error {
	const q = `
		INSERT INTO workout_records (date, weekday, time_of_day, body_weight, exercise, load_value, reps, memo)
		VALUES (:date, :weekday, :time_of_day, :body_weight, :exercise, :load_value, :reps, :memo)`
	_, err := s.db.NamedExecContext(ctx, q, toRow(r))
	if err != nil {
		return fmt.Errorf("sqlite append: %w", err)
	}
	return nil
}

func (s *Store) LoadAll(ctx context.Context) ([]record.Record, error) {
	var rows []row
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, date, weekday, time_of_day, body_weight, exercise, load_value, reps, memo
		FROM workout_records
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite load: %w", err)
	}

	out := make([]record.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRow(r))
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("sqlite delete %q: %w", id, record.ErrNotFound)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM workout_records WHERE id = ?`, n)
	if err != nil {
		return fmt.Errorf("sqlite delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("sqlite delete %d: %w", n, record.ErrNotFound)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func toRow(r record.Record) row {
	return row{
		Date:       r.Date,
		Weekday:    r.Weekday,
		Time:       r.Time,
		BodyWeight: r.BodyWeight,
		Exercise:   r.Exercise,
		Load:       r.Load,
		Reps:       r.Reps,
		Memo:       r.Memo,
	}
}

func fromRow(r row) record.Record {
	return record.Record{
		ID:         strconv.FormatInt(r.ID, 10),
		Date:       r.Date,
		Weekday:    r.Weekday,
		Time:       r.Time,
		BodyWeight: r.BodyWeight,
		Exercise:   r.Exercise,
		Load:       r.Load,
		Reps:       r.Reps,
		Memo:       r.Memo,
	}
}
