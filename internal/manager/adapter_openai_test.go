package manager

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpenAIAdapter_ChatCompletion(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"m",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"A summary."}}],
			"usage":{"prompt_tokens":7,"completion_tokens":3,"total_tokens":10}}`))
	}))
	defer srv.Close()

	s, err := NewOpenAIAdapter(srv.URL+"/v1", "sk-test", 5*time.Second).Start(context.Background(), ModelSpec{ID: "m"})
	require.NoError(t, err)
	res, err := s.Generate(context.Background(), "summarize", InferParams{MaxLength: 150, RepetitionPenalty: 1.2})
	require.NoError(t, err)
	require.Equal(t, "A summary.", res.Content)
	require.Equal(t, "stop", res.FinishReason)
	require.Equal(t, 10, res.Usage.TotalTokens)

	require.Equal(t, "m", body["model"])
	require.EqualValues(t, 150, body["max_completion_tokens"])
	require.EqualValues(t, 0, body["temperature"])
	require.InDelta(t, 0.2, body["frequency_penalty"], 1e-6)
}

func TestOpenAIAdapter_ErrorNoRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"down","type":"server_error"}}`))
	}))
	defer srv.Close()

	s, err := NewOpenAIAdapter(srv.URL, "", time.Second).Start(context.Background(), ModelSpec{ID: "m"})
	require.NoError(t, err)
	_, err = s.Generate(context.Background(), "p", InferParams{})
	require.Error(t, err)
	require.Equal(t, 1, calls)

	_, err = NewOpenAIAdapter(srv.URL, "", 0).Start(context.Background(), ModelSpec{})
	require.Error(t, err)
}
