package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"workoutlog/internal/config"
	"workoutlog/internal/db"
	"workoutlog/internal/record"
	"workoutlog/internal/store/csvfile"
	"workoutlog/internal/store/firestore"
	"workoutlog/internal/store/gsheet"
	"workoutlog/internal/store/memory"
	"workoutlog/internal/store/sqlite"
)

// Open builds the record store selected by cfg.Store. The returned close
// function releases backend resources and is never nil.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (record.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.BackendCSV:
		log.Info("using csv storage", zap.String("path", cfg.CSV.Path))
		return csvfile.NewStore(cfg.CSV.Path), noop, nil

	case config.BackendSheets:
		log.Info("using google sheets storage",
			zap.String("spreadsheet", cfg.Sheets.SpreadsheetID),
			zap.String("worksheet", cfg.Sheets.Worksheet))
		s, err := gsheet.NewStore(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.Worksheet, cfg.Sheets.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil

	case config.BackendPostgres:
		pool, err := db.Open(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		if err := db.Ping(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("db ping: %w", err)
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("db migrate: %w", err)
		}
		log.Info("using postgres storage")
		s := db.NewStore(pool)
		return s, s.Close, nil

	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using sqlite storage", zap.String("path", cfg.SQLite.Path))
		return s, s.Close, nil

	case config.BackendFirestore:
		s, err := firestore.NewStore(ctx, cfg.Firestore.ProjectID, cfg.Firestore.Collection)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using firestore storage",
			zap.String("project", cfg.Firestore.ProjectID),
			zap.String("collection", cfg.Firestore.Collection))
		return s, s.Close, nil

	case config.BackendMemory:
		log.Warn("using in-memory storage; records are lost on restart")
		return memory.NewStore(), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store)
}
