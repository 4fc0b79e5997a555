package services

import (
	"context"
	"sort"
	"strings"

	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/sbilibin2017/eduai-platform/internal/metrics"
	"github.com/sbilibin2017/eduai-platform/internal/models"
	"golang.org/x/sync/errgroup"
)

// Ledger records tutorial completions and tool usage for one backend.
type Ledger struct {
	backend   SessionBackend
	publisher UsagePublisher
	prom      *metrics.Prom
}

// NewLedger creates a ledger. publisher and prom may be nil.
func NewLedger(backend SessionBackend, publisher UsagePublisher, prom *metrics.Prom) *Ledger {
	return &Ledger{backend: backend, publisher: publisher, prom: prom}
}

// RecordCompletion marks tutorialID completed. Recording the same pair twice is a no-op.
func (l *Ledger) RecordCompletion(ctx context.Context, userID string, tutorialID int) error {
	if userID == "" {
		return ErrMissingFields
	}
	if !models.IsTutorial(tutorialID) {
		return ErrUnknownTutorial
	}

	inserted, err := l.backend.AddCompletion(ctx, userID, tutorialID)
	if err != nil {
		logger.Log.Errorw("failed to record completion", "user_id", userID, "tutorial_id", tutorialID, "error", err)
		l.prom.LedgerWrite("completion", "error")
		return err
	}

	if inserted {
		l.prom.LedgerWrite("completion", "ok")
	} else {
		l.prom.LedgerWrite("completion", "duplicate")
	}
	return nil
}

// RecordUsage appends a usage event; the backend keeps only the most recent entries.
func (l *Ledger) RecordUsage(ctx context.Context, userID, tool string, data map[string]any) (*models.UsageSession, error) {
	tool = strings.TrimSpace(tool)
	if userID == "" || tool == "" {
		return nil, ErrMissingFields
	}

	s, err := l.backend.AppendUsage(ctx, userID, tool, data)
	if err != nil {
		logger.Log.Errorw("failed to record usage", "user_id", userID, "tool", tool, "error", err)
		l.prom.LedgerWrite("usage", "error")
		return nil, err
	}
	l.prom.LedgerWrite("usage", "ok")

	if l.publisher != nil {
		l.publisher.PublishUsage(ctx, s)
	}
	return s, nil
}

// Progress lists completions, newest first.
func (l *Ledger) Progress(ctx context.Context, userID string) ([]models.Completion, error) {
	if userID == "" {
		return nil, ErrMissingFields
	}
	completions, err := l.backend.Completions(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to load progress", "user_id", userID, "error", err)
		return nil, err
	}
	if completions == nil {
		completions = []models.Completion{}
	}
	return completions, nil
}

// Stats derives dashboard statistics from the stored ledger.
func (l *Ledger) Stats(ctx context.Context, userID string) (*models.Stats, error) {
	if userID == "" {
		return nil, ErrMissingFields
	}

	var (
		completions []models.Completion
		usage       []models.UsageSession
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		completions, err = l.backend.Completions(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		usage, err = l.backend.Usage(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Log.Errorw("failed to load ledger for stats", "user_id", userID, "error", err)
		return nil, err
	}

	stats := ComputeStats(completions, usage)
	return &stats, nil
}

// ComputeStats is a pure function of a user's completions and usage log.
func ComputeStats(completions []models.Completion, usage []models.UsageSession) models.Stats {
	tutorials := make(map[int]struct{}, len(completions))
	for _, c := range completions {
		tutorials[c.TutorialID] = struct{}{}
	}

	tools := make(map[string]struct{})
	for _, u := range usage {
		tools[u.Tool] = struct{}{}
	}

	ordered := make([]models.UsageSession, len(usage))
	copy(ordered, usage)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	n := len(ordered)
	if n > models.RecentSessionsLimit {
		n = models.RecentSessionsLimit
	}
	recent := make([]models.RecentSession, 0, n)
	for _, u := range ordered[:n] {
		recent = append(recent, models.RecentSession{Tool: u.Tool, CreatedAt: u.CreatedAt})
	}

	return models.Stats{
		TutorialsCompleted: len(tutorials),
		ToolsUsed:          len(tools),
		TotalSessions:      len(usage),
		RecentSessions:     recent,
	}
}
