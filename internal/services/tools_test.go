package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/eduai-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("usage logged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		llm := NewMockCompleter(ctrl)
		usage := NewMockUsageRecorder(ctrl)
		svc := NewToolService(llm, usage, nil)

		llm.EXPECT().ModelFor("claude").Return("anthropic/claude-3-haiku")
		llm.EXPECT().CompleteWithModel(ctx, "Write a quiz", "anthropic/claude-3-haiku").Return("Q1...", nil)
		usage.EXPECT().RecordUsage(ctx, "dev-1", models.ToolQuizGenerator, map[string]any{
			"questions":     5,
			"model":         "anthropic/claude-3-haiku",
			"prompt_length": 12,
		}).Return(&models.UsageSession{}, nil)

		res, err := svc.Run(ctx, "dev-1", models.ToolQuizGenerator, ToolRequest{
			Prompt:   " Write a quiz ",
			Model:    "claude",
			Metadata: map[string]any{"questions": 5},
		})
		require.NoError(t, err)
		assert.Equal(t, &ToolResult{Tool: models.ToolQuizGenerator, Model: "anthropic/claude-3-haiku", Output: "Q1..."}, res)
	})

	t.Run("usage failure does not fail the call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		llm := NewMockCompleter(ctrl)
		usage := NewMockUsageRecorder(ctrl)
		svc := NewToolService(llm, usage, nil)

		llm.EXPECT().ModelFor("").Return("default")
		llm.EXPECT().CompleteWithModel(ctx, "hi", "default").Return("hello", nil)
		usage.EXPECT().RecordUsage(ctx, "dev-1", models.ToolEmailAssistant, gomock.Any()).Return(nil, ErrNotAuthenticated)

		res, err := svc.Run(ctx, "dev-1", models.ToolEmailAssistant, ToolRequest{Prompt: "hi"})
		require.NoError(t, err)
		assert.Equal(t, "hello", res.Output)
	})

	t.Run("no device skips usage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		llm := NewMockCompleter(ctrl)
		usage := NewMockUsageRecorder(ctrl)
		svc := NewToolService(llm, usage, nil)

		llm.EXPECT().ModelFor("").Return("default")
		llm.EXPECT().CompleteWithModel(ctx, "hi", "default").Return("hello", nil)

		_, err := svc.Run(ctx, "", models.ToolEmailAssistant, ToolRequest{Prompt: "hi"})
		require.NoError(t, err)
	})

	t.Run("completion error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		llm := NewMockCompleter(ctrl)
		svc := NewToolService(llm, nil, nil)
		llmErr := errors.New("rate limited")

		llm.EXPECT().ModelFor("").Return("default")
		llm.EXPECT().CompleteWithModel(ctx, "hi", "default").Return("", llmErr)

		_, err := svc.Run(ctx, "dev-1", models.ToolEmailAssistant, ToolRequest{Prompt: "hi"})
		assert.ErrorIs(t, err, llmErr)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewToolService(nil, nil, nil)

		_, err := svc.Run(ctx, "", "unknown-tool", ToolRequest{Prompt: "hi"})
		assert.ErrorIs(t, err, ErrUnknownTool)

		_, err = svc.Run(ctx, "", models.ToolNoteSummarizer, ToolRequest{Prompt: "  "})
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestToolService_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	llm := NewMockCompleter(ctrl)
	svc := NewToolService(llm, nil, nil)

	llm.EXPECT().TestConnection(gomock.Any()).Return(nil)
	assert.NoError(t, svc.Health(context.Background()))

	llm.EXPECT().TestConnection(gomock.Any()).Return(errors.New("down"))
	assert.Error(t, svc.Health(context.Background()))
}
