package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/eduai-platform/internal/models"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()
	tc.SkipIfProviderIsNotHealthy(t)

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)
	assert.NoError(t, EnsureSchema(context.Background(), db))

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestPostgres_LedgerInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("container test")
	}
	db, teardown := setupPostgresContainer(t)
	defer teardown()
	ctx := context.Background()

	users := NewUserWriteRepository(db, nil)
	_, err := users.Create(ctx, &models.User{ID: "u1", Email: "a@b.com", Name: "A", Role: models.RoleStudent, Provider: models.ProviderHosted})
	assert.NoError(t, err)

	_, err = users.Create(ctx, &models.User{ID: "u2", Email: "a@b.com", Name: "B", Role: models.RoleStudent, Provider: models.ProviderHosted})
	assert.True(t, IsUniqueViolation(err))

	t.Run("completion is idempotent", func(t *testing.T) {
		progress := NewProgressRepository(db, nil)
		first, err := progress.Insert(ctx, "u1", 3)
		assert.NoError(t, err)
		assert.True(t, first)

		second, err := progress.Insert(ctx, "u1", 3)
		assert.NoError(t, err)
		assert.False(t, second)

		list, err := progress.ListByUser(ctx, "u1")
		assert.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("usage log keeps 50 newest", func(t *testing.T) {
		usage := NewUsageRepository(db, nil)
		for i := 0; i < 51; i++ {
			_, err := usage.Append(ctx, "u1", "quiz-generator", map[string]any{"n": i}, 50)
			assert.NoError(t, err)
		}

		list, err := usage.ListByUser(ctx, "u1")
		assert.NoError(t, err)
		assert.Len(t, list, 50)
		assert.Equal(t, float64(50), list[0].SessionData["n"])
		assert.Equal(t, float64(1), list[49].SessionData["n"])
	})
}
