package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"quickstart/internal/config"
	"quickstart/internal/db/migrations"
)

// Repository provides access to the section store. One instance is shared
// for the process lifetime; individual operations use short-lived statements.
type Repository struct {
	DB      *sql.DB
	Builder squirrel.StatementBuilderType
}

// NewRepository opens (creating if needed) the SQLite database configured
// in cfg and returns a ready Repository.
func NewRepository(cfg *config.Config) (*Repository, error) {
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Single writer keeps last-write-wins semantics simple.
	db.SetMaxOpenConns(1)

	return &Repository{
		DB:      db,
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Close releases the underlying database handle.
func (s *Repository) Close() error {
	return s.DB.Close()
}

// EnsureSchemaBootstrapped applies any pending migrations on startup.
func (s *Repository) EnsureSchemaBootstrapped() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(s.DB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// ValidateSchema verifies the section store tables exist.
func (s *Repository) ValidateSchema() error {
	var name string
	err := s.DB.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='section_data'",
	).Scan(&name)
	if err == sql.ErrNoRows {
		return fmt.Errorf("database schema is outdated: section_data table missing")
	}
	return err
}
