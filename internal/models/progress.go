package models

import "time"

// Completion marks one tutorial as completed by one user.
type Completion struct {
	UserID      string    `json:"user_id" db:"user_id"`
	TutorialID  int       `json:"tutorial_id" db:"tutorial_id"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
}

// UsageSession is one tool-usage event.
type UsageSession struct {
	ID          int64          `json:"id,omitempty" db:"id"`
	UserID      string         `json:"user_id" db:"user_id"`
	Tool        string         `json:"tool_used" db:"tool_used"`
	SessionData map[string]any `json:"session_data" db:"-"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// RecentSession is the summary of a usage event shown on the dashboard.
type RecentSession struct {
	Tool      string    `json:"tool_used"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats is derived from a user's ledger on every read.
// swagger:model Stats
type Stats struct {
	TutorialsCompleted int             `json:"tutorials_completed"`
	ToolsUsed          int             `json:"tools_used"`
	TotalSessions      int             `json:"total_sessions"`
	RecentSessions     []RecentSession `json:"recent_sessions"`
}

// UsageRetention is the number of most recent usage events kept per user.
const UsageRetention = 50

// RecentSessionsLimit is the number of usage events reported in Stats.
const RecentSessionsLimit = 5
