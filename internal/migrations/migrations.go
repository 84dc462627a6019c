// Package migrations embeds and applies the schema for the benchmark
// store. The teacher's own migrations package (referenced from its
// cmd/main.go as an external "logistics/migrations" module) was not
// present in the retrieved snapshot, so this package is authored from
// scratch in the same goose + embed.FS idiom the teacher uses for
// pkg/database/migrations.go.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"domsetbench/internal/config"
	"domsetbench/internal/logger"
)

//go:embed sql/*.sql
var schemaFS embed.FS

// Migrator applies goose migrations over a dedicated database/sql
// connection. Goose does not speak pgx's native interface, so the
// migration pass opens its own stdlib-wrapped connection independent
// of the application's pgxpool.
type Migrator struct {
	cfg *config.DatabaseConfig
}

func NewMigrator(cfg *config.DatabaseConfig) *Migrator {
	return &Migrator{cfg: cfg}
}

func (m *Migrator) Run() error {
	goose.SetBaseFS(schemaFS)
	goose.SetTableName("goose_db_version")

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		m.cfg.Username, m.cfg.Password, m.cfg.Host, m.cfg.Port, m.cfg.Database, m.cfg.SSLMode,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, "sql"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Log.Info("migrations applied")
	return nil
}

func (m *Migrator) Status(db *sql.DB) error {
	goose.SetBaseFS(schemaFS)
	return goose.Status(db, "sql")
}

// RunMigrations is a convenience wrapper used from cmd/server when
// database.auto_migrate is enabled.
func RunMigrations(cfg *config.DatabaseConfig) error {
	if !cfg.AutoMigrate {
		logger.Log.Info("auto_migrate disabled, skipping migrations")
		return nil
	}
	return NewMigrator(cfg).Run()
}
