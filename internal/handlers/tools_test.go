package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/eduai-platform/internal/facades"
	"github.com/sbilibin2017/eduai-platform/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRunToolHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockToolRunner(ctrl)

	tests := []struct {
		name          string
		tool          string
		inputBody     interface{}
		mockSetup     func()
		expectedCode  int
		expectedError string
	}{
		{
			name:      "success",
			tool:      "email-assistant",
			inputBody: ToolRequest{Prompt: "Write an email", Model: "free"},
			mockSetup: func() {
				mockSvc.EXPECT().Run(gomock.Any(), testDevice, "email-assistant", services.ToolRequest{Prompt: "Write an email", Model: "free"}).
					Return(&services.ToolResult{Tool: "email-assistant", Model: "m", Output: "Dear team"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:      "unknown tool",
			tool:      "horoscope",
			inputBody: ToolRequest{Prompt: "x"},
			mockSetup: func() {
				mockSvc.EXPECT().Run(gomock.Any(), testDevice, "horoscope", gomock.Any()).Return(nil, services.ErrUnknownTool)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Unknown tool",
		},
		{
			name:      "empty prompt",
			tool:      "note-summarizer",
			inputBody: ToolRequest{},
			mockSetup: func() {
				mockSvc.EXPECT().Run(gomock.Any(), testDevice, "note-summarizer", gomock.Any()).
					Return(nil, &services.ValidationError{Field: "prompt", Message: "Please enter some text first"})
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Please enter some text first",
		},
		{
			name:      "rate limited upstream",
			tool:      "quiz-generator",
			inputBody: ToolRequest{Prompt: "quiz"},
			mockSetup: func() {
				mockSvc.EXPECT().Run(gomock.Any(), testDevice, "quiz-generator", gomock.Any()).
					Return(nil, &facades.CompletionError{StatusCode: http.StatusTooManyRequests, Message: "Rate limit exceeded. Please try again later."})
			},
			expectedCode:  http.StatusTooManyRequests,
			expectedError: "Rate limit exceeded. Please try again later.",
		},
		{
			name:      "network failure upstream",
			tool:      "quiz-generator",
			inputBody: ToolRequest{Prompt: "quiz"},
			mockSetup: func() {
				mockSvc.EXPECT().Run(gomock.Any(), testDevice, "quiz-generator", gomock.Any()).
					Return(nil, &facades.CompletionError{Message: "Network error. Please check your internet connection and try again."})
			},
			expectedCode:  http.StatusServiceUnavailable,
			expectedError: "Network error. Please check your internet connection and try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := withURLParam(newDeviceRequest(http.MethodPost, "/api/tools/"+tt.tool, tt.inputBody), "tool", tt.tool)
			w := httptest.NewRecorder()
			NewRunToolHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, w))
				return
			}
			var got services.ToolResult
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, "Dear team", got.Output)
		})
	}
}

func TestToolsHealthHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockToolRunner(ctrl)

	t.Run("ok", func(t *testing.T) {
		mockSvc.EXPECT().Health(gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		NewToolsHealthHandler(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tools/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("unauthorized upstream", func(t *testing.T) {
		mockSvc.EXPECT().Health(gomock.Any()).Return(&facades.CompletionError{StatusCode: http.StatusUnauthorized, Message: "Authentication failed. Please check your API key."})

		w := httptest.NewRecorder()
		NewToolsHealthHandler(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tools/health", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestIssueDeviceHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTokens := NewMockDeviceTokenGenerator(ctrl)

	t.Run("new device", func(t *testing.T) {
		mockTokens.EXPECT().Generate(gomock.Any(), "fresh-id").Return("TOKEN", nil)

		w := httptest.NewRecorder()
		NewIssueDeviceHandler(mockTokens, func() string { return "fresh-id" }).
			ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/session/device", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var got DeviceResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, DeviceResponse{DeviceID: "fresh-id", Token: "TOKEN"}, got)
	})

	t.Run("refresh keeps device", func(t *testing.T) {
		mockTokens.EXPECT().Generate(gomock.Any(), testDevice).Return("TOKEN2", nil)

		w := httptest.NewRecorder()
		NewIssueDeviceHandler(mockTokens, func() string { return "unused" }).
			ServeHTTP(w, newDeviceRequest(http.MethodPost, "/api/session/device", nil))

		var got DeviceResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, testDevice, got.DeviceID)
	})
}

func TestDiagnosticsHandler(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	h := NewDiagnosticsHandler(map[string]string{"DATABASE_DSN": "Set"}, func() time.Time { return now })

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var got DiagnosticsResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "API is working!", got.Message)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.True(t, now.Equal(got.Timestamp))
	assert.Equal(t, "Set", got.Environment["DATABASE_DSN"])
}
