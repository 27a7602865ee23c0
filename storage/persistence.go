package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/lib/pq"

	log "github.com/charmbracelet/log"

	"supabase-setup/models"
)

type Config struct {
	EnvFile    string
	RunID      string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// SaveCredentials writes the env file and, when a database host is
// configured, records the run in Postgres.
func SaveCredentials(ctx context.Context, creds models.Credentials, cfg Config) error {
	if err := WriteEnvFile(cfg.EnvFile, creds); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.DBHost) != "" {
		if err := saveCredentialsToDB(ctx, creds, cfg); err != nil {
			return err
		}
	}
	return nil
}

func dsn(cfg Config, dbName string) string {
	parts := []string{
		"host=" + quoteDSN(cfg.DBHost),
		fmt.Sprintf("port=%d", cfg.DBPort),
		"user=" + quoteDSN(cfg.DBUser),
		"dbname=" + quoteDSN(dbName),
		"sslmode=" + quoteDSN(cfg.DBSSLMode),
	}
	if cfg.DBPassword != "" {
		parts = append(parts, "password="+quoteDSN(cfg.DBPassword))
	}
	return strings.Join(parts, " ")
}

func quoteDSN(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

const createCredentialsTable = `
CREATE TABLE IF NOT EXISTS project_credentials (
	id BIGSERIAL PRIMARY KEY,
	run_id TEXT NOT NULL,
	project_url TEXT NOT NULL UNIQUE,
	anon_key TEXT NOT NULL,
	env_file TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const upsertCredentials = `
INSERT INTO project_credentials (run_id, project_url, anon_key, env_file)
VALUES ($1, $2, $3, $4)
ON CONFLICT (project_url) DO UPDATE
SET run_id = EXCLUDED.run_id,
	anon_key = EXCLUDED.anon_key,
	env_file = EXCLUDED.env_file,
	updated_at = NOW();`

func saveCredentialsToDB(ctx context.Context, creds models.Credentials, cfg Config) error {
	admin, err := openPostgres(ctx, dsn(cfg, "postgres"))
	if err != nil {
		return errors.Wrap(err, "postgres admin db")
	}
	err = ensureDatabase(ctx, admin, cfg.DBName)
	admin.Close()
	if err != nil {
		return err
	}

	db, err := openPostgres(ctx, dsn(cfg, cfg.DBName))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := recordCredentials(ctx, db, creds, cfg); err != nil {
		return err
	}
	log.Info("Saved credentials to postgres", "host", cfg.DBHost, "port", cfg.DBPort, "db", cfg.DBName, "table", "project_credentials")
	return nil
}

func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	if err := pingWithRetry(ctx, db, 5, time.Second); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

// recordCredentials creates the project_credentials table if needed and
// upserts one row keyed by project URL.
func recordCredentials(ctx context.Context, db *sql.DB, creds models.Credentials, cfg Config) error {
	if _, err := db.ExecContext(ctx, createCredentialsTable); err != nil {
		return errors.Wrap(err, "create project_credentials table")
	}
	if _, err := db.ExecContext(ctx, upsertCredentials,
		cfg.RunID, creds.ProjectURL, creds.AnonKey, cfg.EnvFile,
	); err != nil {
		return errors.Wrapf(err, "upsert credentials for %s", creds.ProjectURL)
	}
	return nil
}

// pingWithRetry pings up to attempts times, waiting delay between tries.
// The wait is abandoned when ctx is done.
func pingWithRetry(ctx context.Context, db *sql.DB, attempts int, delay time.Duration) error {
	var err error
	for i := range max(attempts, 1) {
		if i > 0 {
			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return errors.CombineErrors(ctx.Err(), err)
			case <-t.C:
			}
		}
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		log.Debug("Postgres not ready", "attempt", i+1, "error", err)
	}
	return err
}

// ensureDatabase creates name on the server behind admin unless it exists.
func ensureDatabase(ctx context.Context, admin *sql.DB, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("database name is empty")
	}

	var exists int
	err := admin.QueryRowContext(ctx, `SELECT 1 FROM pg_database WHERE datname = $1`, name).Scan(&exists)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return errors.Wrapf(err, "look up database %q", name)
	}

	escaped := strings.ReplaceAll(name, `"`, `""`)
	if _, err := admin.ExecContext(ctx, fmt.Sprintf(`CREATE DATABASE "%s"`, escaped)); err != nil {
		return errors.Wrapf(err, "create database %q", name)
	}
	log.Info("Created postgres database", "db", name)
	return nil
}
