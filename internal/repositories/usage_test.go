package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var usageCols = []string{"id", "user_id", "tool_used", "session_data", "created_at"}

func TestUsageRepository_Append(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUsageRepository(db, nil)
	now := time.Now()

	t.Run("insert then trim", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_sessions")).
			WithArgs("u1", "quiz-generator", []byte(`{"questions":5}`)).
			WillReturnRows(sqlmock.NewRows(usageCols).
				AddRow(int64(7), "u1", "quiz-generator", []byte(`{"questions":5}`), now))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_sessions")).
			WithArgs("u1", 50).
			WillReturnResult(sqlmock.NewResult(0, 1))

		s, err := repo.Append(context.Background(), "u1", "quiz-generator", map[string]any{"questions": 5}, 50)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), s.ID)
		assert.Equal(t, float64(5), s.SessionData["questions"])
	})

	t.Run("nil metadata stored as empty object", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_sessions")).
			WithArgs("u1", "prompt-builder", []byte(`{}`)).
			WillReturnRows(sqlmock.NewRows(usageCols).
				AddRow(int64(8), "u1", "prompt-builder", []byte(`{}`), now))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_sessions")).
			WithArgs("u1", 50).
			WillReturnResult(sqlmock.NewResult(0, 0))

		s, err := repo.Append(context.Background(), "u1", "prompt-builder", nil, 50)
		assert.NoError(t, err)
		assert.Empty(t, s.SessionData)
	})

	t.Run("insert error skips trim", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_sessions")).
			WillReturnError(errors.New("insert failed"))

		s, err := repo.Append(context.Background(), "u1", "prompt-builder", nil, 50)
		assert.EqualError(t, err, "insert failed")
		assert.Nil(t, s)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsageRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUsageRepository(db, nil)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_sessions")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(usageCols).
			AddRow(int64(2), "u1", "note-summarizer", []byte(`{"words":120}`), now).
			AddRow(int64(1), "u1", "email-assistant", []byte(`{}`), now.Add(-time.Minute)))

	sessions, err := repo.ListByUser(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Len(t, sessions, 2)
	assert.Equal(t, "note-summarizer", sessions[0].Tool)
	assert.Equal(t, float64(120), sessions[0].SessionData["words"])

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_sessions")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(usageCols).
			AddRow(int64(3), "u1", "x", []byte(`not json`), now))

	_, err = repo.ListByUser(context.Background(), "u1")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
