package database

import (
	"context"
	"errors"
	"io/fs"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var versionQuery = regexp.QuoteMeta(`SELECT COALESCE(MAX(version_id), 0) FROM goose_db_version WHERE is_applied`)

func TestVersion(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(versionQuery).WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(2)))

	version, err := Version(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersion_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(versionQuery).WillReturnError(errors.New("connection refused"))

	_, err = Version(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema version")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersion_FreshDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(versionQuery).WillReturnError(&pgconn.PgError{
		Code:    "42P01",
		Message: `relation "goose_db_version" does not exist`,
	})

	version, err := Version(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_Embedded(t *testing.T) {
	entries, err := fs.ReadDir(migrations, migrationsDir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"00001_accounts.sql", "00002_credentials.sql"}, names)

	for _, name := range names {
		body, err := fs.ReadFile(migrations, migrationsDir+"/"+name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up")
		assert.Contains(t, string(body), "-- +goose Down")
	}
}
