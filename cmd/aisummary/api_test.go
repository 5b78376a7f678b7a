package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcrm/aisummary/pkg/actions/aisummary"
	"github.com/flowcrm/aisummary/pkg/cmd"
	"github.com/flowcrm/aisummary/pkg/persistence/memory"
)

const completionBody = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "gpt-3.5-turbo",
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "Customer wants a refund."}, "finish_reason": "stop"}],
	"usage": {"prompt_tokens": 20, "completion_tokens": 6, "total_tokens": 26}
}`

func newCompletionServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	t.Cleanup(server.Close)

	return server
}

func setupTestApp(t *testing.T, opts ...aisummary.ServiceOption) *fiber.App {
	t.Helper()

	eventBus, err := cmd.NewEventBus("gochannel", "", slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = eventBus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, subscribeExecutionLog(ctx, eventBus, slog.Default()))

	summary := aisummary.NewService(slog.Default(), opts...)

	api := NewAPI(slog.Default(), memory.NewResultStore(), cmd.NewRegistry(slog.Default(), summary), eventBus, summary)

	return api.App()
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	t.Helper()

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, body
}

func TestAPI_RootEndpoint(t *testing.T) {
	app := setupTestApp(t, aisummary.WithAPIKey(""))

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "AI Summary API", string(body))
}

func TestAPI_Liveness(t *testing.T) {
	app := setupTestApp(t, aisummary.WithAPIKey(""))

	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_HealthReportsMissingKey(t *testing.T) {
	app := setupTestApp(t, aisummary.WithAPIKey(""))

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, status)

	var got struct {
		Checkers map[string]string `json:"checkers"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "OPENAI_API_KEY is not set", got.Checkers["ai_summary"])
}

func executeRequest() *http.Request {
	body := `{
		"currentStepId": "s1",
		"steps": [{"id": "s1", "name": "Summarize", "valid": true, "type": "AI_SUMMARY",
			"settings": {"input": {"prompt": "Summarize the ticket"}, "outputSchema": {}}}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/actions/AI_SUMMARY/execute", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func TestAPI_ExecuteAgainstCompletionAPI(t *testing.T) {
	server := newCompletionServer(t)
	app := setupTestApp(t, aisummary.WithAPIKey("sk-test"), aisummary.WithBaseURL(server.URL))

	status, body := do(t, app, executeRequest())
	require.Equal(t, http.StatusOK, status, string(body))

	var got struct {
		ExecutionID string         `json:"executionId"`
		Result      map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal(body, &got))

	assert.Equal(t, "Customer wants a refund.", got.Result["summary"])
	assert.Equal(t, "gpt-3.5-turbo", got.Result["model"])
	assert.InDelta(t, 26, got.Result["tokensUsed"], 0)

	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/executions/"+got.ExecutionID, nil))
	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_ExecuteWithoutKey(t *testing.T) {
	app := setupTestApp(t, aisummary.WithAPIKey(""))

	status, body := do(t, app, executeRequest())

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(body), "OPENAI_API_KEY")
}
