package services

//go:generate mockgen -source=tools.go -destination=tools_mock.go -package=services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/sbilibin2017/eduai-platform/internal/metrics"
	"github.com/sbilibin2017/eduai-platform/internal/models"
)

// Completer runs single-prompt LLM completions.
type Completer interface {
	CompleteWithModel(ctx context.Context, prompt, model string) (string, error)
	ModelFor(option string) string
	TestConnection(ctx context.Context) error
}

// UsageRecorder records tool usage for the user signed in on a device.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, deviceID, tool string, data map[string]any) (*models.UsageSession, error)
}

// ToolRequest is one invocation of an AI tool.
type ToolRequest struct {
	Prompt   string
	Model    string // short model option, empty for the default
	Metadata map[string]any
}

// ToolResult is the generated text of a tool invocation.
type ToolResult struct {
	Tool   string `json:"tool"`
	Model  string `json:"model"`
	Output string `json:"output"`
}

// ToolService runs AI tools and logs their usage.
type ToolService struct {
	llm   Completer
	usage UsageRecorder
	prom  *metrics.Prom
}

func NewToolService(llm Completer, usage UsageRecorder, prom *metrics.Prom) *ToolService {
	return &ToolService{llm: llm, usage: usage, prom: prom}
}

// Run completes the prompt for tool. Usage is logged for the device's signed-in
// user when there is one; a failed usage write never fails the call.
func (svc *ToolService) Run(ctx context.Context, deviceID, tool string, req ToolRequest) (*ToolResult, error) {
	if !models.IsTool(tool) {
		return nil, ErrUnknownTool
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, &ValidationError{Field: "prompt", Message: "Please enter some text first"}
	}

	model := svc.llm.ModelFor(req.Model)

	start := time.Now()
	out, err := svc.llm.CompleteWithModel(ctx, prompt, model)
	svc.prom.ObserveLLM(time.Since(start))
	if err != nil {
		svc.prom.ToolCall(tool, "error")
		logger.Log.Errorw("tool completion failed", "tool", tool, "model", model, "error", err)
		return nil, err
	}
	svc.prom.ToolCall(tool, "ok")

	if deviceID != "" && svc.usage != nil {
		data := make(map[string]any, len(req.Metadata)+2)
		for k, v := range req.Metadata {
			data[k] = v
		}
		data["model"] = model
		data["prompt_length"] = len(prompt)

		if _, err := svc.usage.RecordUsage(ctx, deviceID, tool, data); err != nil {
			if errors.Is(err, ErrNotAuthenticated) {
				logger.Log.Debugw("tool used without a session, usage not logged", "tool", tool)
			} else {
				logger.Log.Warnw("failed to log tool usage", "tool", tool, "device_id", deviceID, "error", err)
			}
		}
	}

	return &ToolResult{Tool: tool, Model: model, Output: out}, nil
}

// Health checks that the completion endpoint answers.
func (svc *ToolService) Health(ctx context.Context) error {
	if err := svc.llm.TestConnection(ctx); err != nil {
		logger.Log.Warnw("completion endpoint health check failed", "error", err)
		return err
	}
	return nil
}
