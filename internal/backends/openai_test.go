package backends

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIBackend_GetName(t *testing.T) {
	backend := NewOpenAIBackend("gpt-4-turbo", "key", "")
	assert.Equal(t, "gpt-4-turbo", backend.GetName())
}

func TestOpenAIBackend_SupportsJSONMode(t *testing.T) {
	tests := []struct {
		model    string
		expected bool
	}{
		{"gpt-4-turbo", true},
		{"gpt-4o-mini", true},
		{"gpt-3.5-turbo", false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			backend := NewOpenAIBackend(tt.model, "key", "")
			assert.Equal(t, tt.expected, backend.SupportsJSONMode())
		})
	}
}

func TestOpenAIBackend_Generate(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"posts\":[]}"}}]}`))
	}))
	defer server.Close()

	backend := NewOpenAIBackend("gpt-4-turbo", "test-key", server.URL)
	text, err := backend.Generate(context.Background(), "system text", "user text")

	require.NoError(t, err)
	assert.Equal(t, `{"posts":[]}`, text)
	assert.Equal(t, "gpt-4-turbo", captured.Model)
	assert.Equal(t, 0.8, captured.Temperature)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "system text", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
}

func TestOpenAIBackend_Generate_noJSONModeForLegacyModel(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	backend := NewOpenAIBackend("gpt-3.5-turbo", "test-key", server.URL)
	_, err := backend.Generate(context.Background(), "sys", "user")

	require.NoError(t, err)
	assert.Nil(t, captured.ResponseFormat)
}

func TestOpenAIBackend_Generate_apiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded","type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	backend := NewOpenAIBackend("gpt-4-turbo", "test-key", server.URL)
	_, err := backend.Generate(context.Background(), "sys", "user")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
	assert.Contains(t, err.Error(), "gpt-4-turbo")
}

func TestOpenAIBackend_Generate_emptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	backend := NewOpenAIBackend("gpt-4o-mini", "test-key", server.URL)
	_, err := backend.Generate(context.Background(), "sys", "user")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response from model gpt-4o-mini")
}
