package repositories

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/sbilibin2017/eduai-platform/internal/models"
)

// UsageRepository stores tool-usage events in user_sessions.
type UsageRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUsageRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UsageRepository {
	return &UsageRepository{db: db, txGetter: txGetter}
}

type usageRow struct {
	ID          int64     `db:"id"`
	UserID      string    `db:"user_id"`
	Tool        string    `db:"tool_used"`
	SessionData []byte    `db:"session_data"`
	CreatedAt   time.Time `db:"created_at"`
}

func (row usageRow) toModel() (models.UsageSession, error) {
	s := models.UsageSession{
		ID:        row.ID,
		UserID:    row.UserID,
		Tool:      row.Tool,
		CreatedAt: row.CreatedAt,
	}
	if len(row.SessionData) > 0 {
		if err := json.Unmarshal(row.SessionData, &s.SessionData); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Append inserts an event and drops the user's oldest events beyond keep.
func (r *UsageRepository) Append(ctx context.Context, userID, tool string, data map[string]any, keep int) (*models.UsageSession, error) {
	if data == nil {
		data = map[string]any{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var executor sqlx.ExtContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			executor = tx
		}
	}

	insert := `
		INSERT INTO user_sessions (user_id, tool_used, session_data, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, user_id, tool_used, session_data, created_at
	`
	args := []any{userID, tool, payload}

	var row usageRow
	err = sqlx.GetContext(ctx, executor, &row, insert, args...)

	logger.Log.Infow("sql query",
		"query", strings.Join(strings.Fields(insert), " "),
		"args", []any{userID, tool},
		"result", row.ID,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	trim := `
		DELETE FROM user_sessions
		WHERE user_id = $1
		  AND id NOT IN (
		      SELECT id FROM user_sessions
		      WHERE user_id = $1
		      ORDER BY created_at DESC, id DESC
		      LIMIT $2
		  )
	`
	res, err := executor.ExecContext(ctx, trim, userID, keep)
	var trimmed int64
	if res != nil {
		trimmed, _ = res.RowsAffected()
	}

	logger.Log.Infow("sql query",
		"query", strings.Join(strings.Fields(trim), " "),
		"args", []any{userID, keep},
		"result", trimmed,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	s, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByUser returns the user's retained events, newest first.
func (r *UsageRepository) ListByUser(ctx context.Context, userID string) ([]models.UsageSession, error) {
	const query = `
		SELECT id, user_id, tool_used, session_data, created_at
		FROM user_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	var rows []usageRow
	var querier sqlx.QueryerContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			querier = tx
		}
	}
	err := sqlx.SelectContext(ctx, querier, &rows, query, userID)

	logger.Log.Infow("sql query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	sessions := make([]models.UsageSession, 0, len(rows))
	for _, row := range rows {
		s, err := row.toModel()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
