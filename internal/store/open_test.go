package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		url    string
		driver string
		dsn    string
	}{
		{"postgres://quiz:pw@localhost/quiz?sslmode=disable", DriverPostgres, "postgres://quiz:pw@localhost/quiz?sslmode=disable"},
		{"postgresql://localhost/quiz", DriverPostgres, "postgresql://localhost/quiz"},
		{"sqlite://data/quiz.db", DriverSQLite, "data/quiz.db"},
		{"file:quiz.db?cache=shared", DriverSQLite, "file:quiz.db?cache=shared"},
		{"quiz.db", DriverSQLite, "quiz.db"},
	}
	for _, tc := range cases {
		driver, dsn := Resolve(tc.url)
		assert.Equal(t, tc.driver, driver, tc.url)
		assert.Equal(t, tc.dsn, dsn, tc.url)
	}
}

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "open.db")

	s, err := Open(context.Background(), "sqlite://"+path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	assert.NoError(t, s.Ping(context.Background()))
}
