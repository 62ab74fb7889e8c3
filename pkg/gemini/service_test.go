package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent_ReturnsCandidateText(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello "},{"text":"world"}]}}]}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("k", "test-model", 0).WithBaseURL(srv.URL)
	text, err := svc.GenerateContent(context.Background(), Request{
		Prompt: "say hi",
		JSON:   true,
		Images: []InlineData{{MimeType: "image/png", Data: "AAAA"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)

	cfg := captured["generationConfig"].(map[string]interface{})
	assert.Equal(t, "application/json", cfg["responseMimeType"])
	_, hasTools := captured["tools"]
	assert.False(t, hasTools)

	contents := captured["contents"].([]interface{})
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	assert.Len(t, parts, 2)
}

func TestGenerateContent_GroundedDropsJSONMode(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"[]"}]}}]}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("k", "m", 0).WithBaseURL(srv.URL)
	_, err := svc.GenerateContent(context.Background(), Request{Prompt: "p", JSON: true, Grounded: true})
	require.NoError(t, err)

	cfg := captured["generationConfig"].(map[string]interface{})
	_, hasMime := cfg["responseMimeType"]
	assert.False(t, hasMime)
	assert.NotNil(t, captured["tools"])
}

func TestGenerateContent_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("k", "m", 0).WithBaseURL(srv.URL)
	_, err := svc.GenerateContent(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "RESOURCE_EXHAUSTED")
}

func TestGenerateContent_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("k", "m", 0).WithBaseURL(srv.URL)
	_, err := svc.GenerateContent(context.Background(), Request{Prompt: "p"})
	assert.Error(t, err)
}
