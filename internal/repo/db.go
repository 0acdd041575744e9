package repo

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/pdfbrief/pdfbrief/internal/config"
)

func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		ctime BIGINT NOT NULL,
		mtime BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS summaries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		filename TEXT NOT NULL,
		summary TEXT NOT NULL,
		file_key TEXT NOT NULL DEFAULT '',
		ctime BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_summaries_user_ctime ON summaries(user_id, ctime DESC)`,
}

func ApplyMigrations(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
