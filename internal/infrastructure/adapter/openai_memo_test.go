package adapter_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smblend/credit-service/internal/infrastructure/adapter"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chatCompletionsStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIMemoGenerator_NoAPIKeyUsesTemplate(t *testing.T) {
	gen := adapter.NewOpenAIMemoGenerator(adapter.OpenAIMemoConfig{}, testLogger())

	memo, err := gen.Generate(context.Background(), approvalMemoRequest())
	require.NoError(t, err)
	assert.Contains(t, memo, "CREDIT MEMO - ABC Hardware LLC")
}

func TestOpenAIMemoGenerator_UsesChatCompletions(t *testing.T) {
	srv := chatCompletionsStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "analyst memo"}},
			},
		})
	})

	gen := adapter.NewOpenAIMemoGenerator(adapter.OpenAIMemoConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	}, testLogger())

	memo, err := gen.Generate(context.Background(), approvalMemoRequest())
	require.NoError(t, err)
	assert.Equal(t, "analyst memo", memo)
}

func TestOpenAIMemoGenerator_RetriesTransientThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := chatCompletionsStub(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "second try"}},
			},
		})
	})

	gen := adapter.NewOpenAIMemoGenerator(adapter.OpenAIMemoConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		MaxRetries: 2,
	}, testLogger())

	memo, err := gen.Generate(context.Background(), approvalMemoRequest())
	require.NoError(t, err)
	assert.Equal(t, "second try", memo)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOpenAIMemoGenerator_ClientErrorFallsBackWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	srv := chatCompletionsStub(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	gen := adapter.NewOpenAIMemoGenerator(adapter.OpenAIMemoConfig{
		APIKey:     "bad-key",
		BaseURL:    srv.URL,
		MaxRetries: 3,
	}, testLogger())

	memo, err := gen.Generate(context.Background(), approvalMemoRequest())
	require.NoError(t, err)
	assert.Contains(t, memo, "CREDIT MEMO - ABC Hardware LLC")
	assert.Equal(t, int32(1), calls.Load())
}
