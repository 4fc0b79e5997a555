package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/sbilibin2017/eduai-platform/internal/models"
)

// ProgressRepository stores tutorial completions in user_progress.
type ProgressRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewProgressRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ProgressRepository {
	return &ProgressRepository{db: db, txGetter: txGetter}
}

// Insert records a completion. It reports false when the pair was already present.
func (r *ProgressRepository) Insert(ctx context.Context, userID string, tutorialID int) (bool, error) {
	query := `
		INSERT INTO user_progress (user_id, tutorial_id, completed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, tutorial_id) DO NOTHING
	`
	args := []any{userID, tutorialID}

	var executor sqlx.ExtContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			executor = tx
		}
	}

	res, err := executor.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("sql query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if IsUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// ListByUser returns the user's completions, newest first.
func (r *ProgressRepository) ListByUser(ctx context.Context, userID string) ([]models.Completion, error) {
	const query = `
		SELECT user_id, tutorial_id, completed_at
		FROM user_progress
		WHERE user_id = $1
		ORDER BY completed_at DESC
	`

	completions := []models.Completion{}
	var querier sqlx.QueryerContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			querier = tx
		}
	}
	err := sqlx.SelectContext(ctx, querier, &completions, query, userID)

	logger.Log.Infow("sql query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(completions),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return completions, nil
}
