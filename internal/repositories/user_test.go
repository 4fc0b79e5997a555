package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/eduai-platform/internal/models"
	"github.com/stretchr/testify/assert"
)

var userCols = []string{"id", "email", "name", "role", "provider", "avatar_url", "created_at", "updated_at"}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestUserReadRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow("u1", "a@b.com", "A", "educator", "hosted", "", now, now))

		user, err := repo.GetByID(context.Background(), "u1")
		assert.NoError(t, err)
		assert.Equal(t, "a@b.com", user.Email)
		assert.Equal(t, models.RoleEducator, user.Role)
		assert.Equal(t, models.ProviderHosted, user.Provider)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows(userCols))

		user, err := repo.GetByID(context.Background(), "nobody")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
			WithArgs("u2").
			WillReturnError(errors.New("conn refused"))

		user, err := repo.GetByID(context.Background(), "u2")
		assert.EqualError(t, err, "conn refused")
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u1", "a@b.com", "A", "student", "hosted", "", now, now))

	user, err := repo.GetByEmail(context.Background(), "a@b.com")
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)
	now := time.Now()
	in := &models.User{ID: "u1", Email: "a@b.com", Name: "A", Role: models.RoleStudent, Provider: models.ProviderHosted}

	t.Run("created", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs("u1", "a@b.com", "A", "student", "hosted", "").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow("u1", "a@b.com", "A", "student", "hosted", "", now, now))

		saved, err := repo.Create(context.Background(), in)
		assert.NoError(t, err)
		assert.Equal(t, now, saved.CreatedAt)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		saved, err := repo.Create(context.Background(), in)
		assert.True(t, IsUniqueViolation(err))
		assert.Nil(t, saved)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE")).
		WithArgs("u1", "a@b.com", "X", "student", "oauth-google", "https://img").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u1", "a@b.com", "X", "student", "oauth-google", "https://img", now, now))

	saved, err := repo.Upsert(context.Background(), &models.User{
		ID: "u1", Email: "a@b.com", Name: "X", Role: models.RoleStudent,
		Provider: models.ProviderGoogle, AvatarURL: "https://img",
	})
	assert.NoError(t, err)
	assert.Equal(t, "X", saved.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)
	now := time.Now()

	t.Run("updated", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
			WithArgs("u1", "New", "a@b.com", "researcher").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow("u1", "a@b.com", "New", "researcher", "hosted", "", now, now))

		saved, err := repo.Update(context.Background(), "u1", "New", "a@b.com", models.RoleResearcher)
		assert.NoError(t, err)
		assert.Equal(t, models.RoleResearcher, saved.Role)
	})

	t.Run("missing user", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
			WillReturnRows(sqlmock.NewRows(userCols))

		saved, err := repo.Update(context.Background(), "ghost", "New", "g@b.com", models.RoleStudent)
		assert.NoError(t, err)
		assert.Nil(t, saved)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
	assert.False(t, IsUniqueViolation(nil))
}
