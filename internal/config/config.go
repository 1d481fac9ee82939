package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

type Backend string

const (
	BackendCSV       Backend = "csv"
	BackendSheets    Backend = "sheets"
	BackendPostgres  Backend = "postgres"
	BackendSQLite    Backend = "sqlite"
	BackendFirestore Backend = "firestore"
	BackendMemory    Backend = "memory"
)

type Config struct {
	Environment string
	HTTPPort    string

	Store     Backend
	CSV       CSVConfig
	Sheets    SheetsConfig
	Postgres  PostgresConfig
	SQLite    SQLiteConfig
	Firestore FirestoreConfig

	Form FormConfig

	// CSRFKey enables CSRF protection on form posts when set (32 bytes).
	CSRFKey string
}

type CSVConfig struct {
	Path string
}

type SheetsConfig struct {
	SpreadsheetID   string
	Worksheet       string
	CredentialsFile string
}

type PostgresConfig struct {
	URL string
}

type SQLiteConfig struct {
	Path string
}

type FirestoreConfig struct {
	ProjectID  string
	Collection string
}

// FormConfig holds the entry form defaults.
type FormConfig struct {
	Location          *time.Location
	DefaultBodyWeight float64
	SetCount          int
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("APP_ENV", "development"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Store:       Backend(strings.ToLower(getEnv("STORE_BACKEND", string(BackendCSV)))),
		CSV: CSVConfig{
			Path: getEnv("CSV_PATH", "my_workout_log.csv"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
			Worksheet:       getEnv("SHEETS_WORKSHEET", "시트1"),
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		},
		Postgres: PostgresConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "workout.db"),
		},
		Firestore: FirestoreConfig{
			ProjectID:  getEnv("FIRESTORE_PROJECT", ""),
			Collection: getEnv("FIRESTORE_COLLECTION", "workout_records"),
		},
		Form: FormConfig{
			Location:          loadLocation(getEnv("TIMEZONE", "Asia/Seoul")),
			DefaultBodyWeight: getEnvAsFloat("DEFAULT_BODY_WEIGHT", 46.0),
			SetCount:          getEnvAsInt("SET_COUNT", 4),
		},
		CSRFKey: getEnv("CSRF_KEY", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate collects every problem instead of stopping at the first one.
func (c *Config) validate() error {
	var errs []string

	switch c.Store {
	case BackendCSV, BackendMemory, BackendSQLite:
	case BackendSheets:
		if c.Sheets.SpreadsheetID == "" {
			errs = append(errs, "SHEETS_SPREADSHEET_ID is required for the sheets backend")
		}
	case BackendPostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, "DATABASE_URL is required for the postgres backend")
		}
	case BackendFirestore:
		if c.Firestore.ProjectID == "" {
			errs = append(errs, "FIRESTORE_PROJECT is required for the firestore backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown STORE_BACKEND %q", c.Store))
	}

	if c.Form.SetCount < 1 || c.Form.SetCount > 10 {
		errs = append(errs, "SET_COUNT must be between 1 and 10")
	}
	if c.CSRFKey != "" && len(c.CSRFKey) != 32 {
		errs = append(errs, "CSRF_KEY must be 32 bytes")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, ", "))
	}
	return nil
}

// loadLocation falls back to a fixed KST offset when the zone database is
// unavailable.
func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvAsFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
