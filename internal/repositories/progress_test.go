package repositories

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestProgressRepository_Insert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgressRepository(db, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		result   driver.Result
		err      error
		inserted bool
		wantErr  bool
	}{
		{name: "new pair", result: sqlmock.NewResult(0, 1), inserted: true},
		{name: "duplicate is a no-op", result: sqlmock.NewResult(0, 0), inserted: false},
		{name: "unique violation is success", err: &pgconn.PgError{Code: "23505"}, inserted: false},
		{name: "db error", err: errors.New("boom"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_progress")).WithArgs("u1", 3)
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(tt.result)
			}

			inserted, err := repo.Insert(ctx, "u1", 3)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.inserted, inserted)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepository_ListByUser(t *testing.T) {
	logs := observeLogs(t)
	db, mock := newMockDB(t)
	repo := NewProgressRepository(db, nil)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_progress")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "tutorial_id", "completed_at"}).
			AddRow("u1", 3, now).
			AddRow("u1", 1, now.Add(-time.Hour)))

	completions, err := repo.ListByUser(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Len(t, completions, 2)
	assert.Equal(t, 3, completions[0].TutorialID)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_progress")).
		WithArgs("u2").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "tutorial_id", "completed_at"}))

	completions, err = repo.ListByUser(context.Background(), "u2")
	assert.NoError(t, err)
	assert.NotNil(t, completions)
	assert.Empty(t, completions)

	queries := logs.FilterMessage("sql query").All()
	require.Len(t, queries, 2)
	assert.Contains(t, queries[0].ContextMap()["query"], "FROM user_progress WHERE user_id = $1")
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	assert.NoError(t, mock.ExpectationsWereMet())
}
