package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// Migrate applies the embedded migrations of the store's dialect.
func (s *Store) Migrate(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(gooseLogger{s.logger.Sugar()})
	if err := goose.SetDialect(s.dialect.goose); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.db, s.dialect.migrations); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	s.logger.Info("schema is up to date", zap.String("migrations", s.dialect.migrations))
	return nil
}

type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Fatalf(format string, v ...any) { l.log.Fatalf(format, v...) }
func (l gooseLogger) Printf(format string, v ...any) { l.log.Debugf(format, v...) }
