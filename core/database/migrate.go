package database

import (
	"database/sql"
	"embed"
	"fmt"
	"trainhub-api/core/logger"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type gooseLogger struct{}

func (gooseLogger) Fatalf(format string, v ...any) { logger.Error(fmt.Sprintf(format, v...)) }
func (gooseLogger) Printf(format string, v ...any) { logger.Info(fmt.Sprintf(format, v...)) }

// Migrate applies the embedded schema migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
