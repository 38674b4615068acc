package store

import (
	"context"
	"strings"

	"mannerisms/internal/auth"
	"mannerisms/internal/quiz"
	"mannerisms/internal/store/postgres"
	"mannerisms/internal/store/sqlite"
)

// Store is everything the service needs from persistence.
type Store interface {
	auth.UserStore
	quiz.QuestionRepository
	quiz.AdvancedQuestionRepository
	quiz.ProgressRepository
	quiz.QuestionBankWriter

	Ping(ctx context.Context) error
	Close() error
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Resolve maps a DATABASE_URL to a driver name and the DSN that driver
// expects. postgres:// and postgresql:// select PostgreSQL; sqlite://<path>,
// file:<path> and bare paths select SQLite.
func Resolve(databaseURL string) (driver, dsn string) {
	databaseURL = strings.TrimSpace(databaseURL)
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres, databaseURL
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(databaseURL, "sqlite://")
	default:
		return DriverSQLite, databaseURL
	}
}

func Open(ctx context.Context, databaseURL string) (Store, error) {
	driver, dsn := Resolve(databaseURL)
	if driver == DriverPostgres {
		return postgres.NewStore(ctx, dsn)
	}
	return sqlite.NewStore(dsn)
}
