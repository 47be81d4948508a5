package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeneration(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "array with generated_text",
			body: `[{"generated_text": "Hello world"}]`,
			want: "Hello world",
		},
		{
			name: "array with text field",
			body: `[{"text": "Alt shape"}]`,
			want: "Alt shape",
		},
		{
			name: "single object",
			body: `{"generated_text": "Solo"}`,
			want: "Solo",
		},
		{
			name:    "empty array",
			body:    `[]`,
			wantErr: true,
		},
		{
			name:    "error payload",
			body:    `{"error": "Model is loading"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGeneration([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHuggingFaceClientComplete(t *testing.T) {
	var captured hfRequest
	var gotAuth, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"generated_text": "A brewed answer"}]`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient("test-key", "deepseek-ai/DeepSeek-V3")
	client.baseURL = server.URL

	text, err := client.Complete(context.Background(), "You are a helper.", "Tell me about coffee", CompletionOptions{
		Temperature: 0.8,
		MaxTokens:   1024,
	})
	require.NoError(t, err)
	assert.Equal(t, "A brewed answer", text)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/models/deepseek-ai/DeepSeek-V3", gotPath)

	assert.Equal(t, "You are a helper.\n\nUser: Tell me about coffee\nAssistant:", captured.Inputs)
	assert.Equal(t, float32(0.8), captured.Parameters.Temperature)
	assert.Equal(t, 1024, captured.Parameters.MaxNewTokens)
	assert.Equal(t, 0.9, captured.Parameters.TopP)
	assert.False(t, captured.Parameters.ReturnFullText)
}

func TestHuggingFaceClientNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": "Model too busy"}`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient("test-key", "deepseek-ai/DeepSeek-V3")
	client.baseURL = server.URL

	_, err := client.Complete(context.Background(), "sys", "msg", CompletionOptions{Temperature: 0.8, MaxTokens: 1024})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
