package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// newFakeGemini serves generateContent with a single candidate holding text.
func newFakeGemini(t *testing.T, text string, gotPrompt *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if gotPrompt != nil {
			*gotPrompt = string(body)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": text}},
					},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestDescriber(t *testing.T, srv *httptest.Server) *GeminiDescriber {
	t.Helper()
	d, err := NewGeminiDescriber(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	}, "")
	require.NoError(t, err)
	return d
}

func TestNewGeminiDescriber_DefaultModel(t *testing.T) {
	srv := newFakeGemini(t, "x", nil)

	d := newTestDescriber(t, srv)

	assert.Equal(t, DefaultModel, d.model)
}

func TestGeminiDescriber_Describe(t *testing.T) {
	var body string
	srv := newFakeGemini(t, "  A bright flat near the station.\n", &body)
	d := newTestDescriber(t, srv)

	got, err := d.Describe(context.Background(), "Write about Sunny Flat in Pune")

	require.NoError(t, err)
	assert.Equal(t, "A bright flat near the station.", got)
	assert.Contains(t, body, "Sunny Flat in Pune")
}

func TestGeminiDescriber_EmptyDraft(t *testing.T) {
	srv := newFakeGemini(t, "   ", nil)
	d := newTestDescriber(t, srv)

	_, err := d.Describe(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrEmptyDraft)
}
