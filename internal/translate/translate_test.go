package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/aidtrace/internal/model"
)

func chatServer(t *testing.T, reply string, status int, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: "assistant", Content: reply},
				FinishReason: "stop",
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTarget(t *testing.T) {
	tests := []struct {
		lang string
		want string
		ok   bool
	}{
		{"de", "de", true},
		{"pl-PL", "pl", true},
		{"en", "", false},
		{"eng", "", false},
		{"en-GB", "", false},
		{"", "", false},
		{"english", "", false},
	}
	for _, tt := range tests {
		base, ok := Target(tt.lang)
		assert.Equal(t, tt.ok, ok, tt.lang)
		if ok {
			assert.Equal(t, tt.want, base.String(), tt.lang)
		}
	}
}

func TestOpenAI_Translate(t *testing.T) {
	var calls atomic.Int32
	srv := chatServer(t, " Ukraine Militärhilfe ", http.StatusOK, &calls)

	tr, err := NewOpenAI(model.TranslateConfig{APIKey: "test-key", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, "Ukraine Militärhilfe", tr.Translate(ctx, "Ukraine military aid", "de"))
	assert.Equal(t, "Ukraine Militärhilfe", tr.Translate(ctx, "Ukraine military aid", "de-AT"))
	assert.Equal(t, int32(1), calls.Load())

	assert.Equal(t, "Ukraine military aid", tr.Translate(ctx, "Ukraine military aid", "en"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAI_FailureReturnsInput(t *testing.T) {
	var calls atomic.Int32
	srv := chatServer(t, "", http.StatusInternalServerError, &calls)

	tr, err := NewOpenAI(model.TranslateConfig{APIKey: "test-key", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Ukraine military aid", tr.Translate(context.Background(), "Ukraine military aid", "fr"))
	assert.Positive(t, calls.Load())
}

func TestNewOpenAI_RequiresKey(t *testing.T) {
	_, err := NewOpenAI(model.TranslateConfig{}, nil)
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	assert.IsType(t, Passthrough{}, New(model.TranslateConfig{}, nil))
	assert.IsType(t, Passthrough{}, New(model.TranslateConfig{Provider: "openai"}, nil))
	assert.IsType(t, Passthrough{}, New(model.TranslateConfig{Provider: "deepl"}, nil))
	assert.IsType(t, &OpenAI{}, New(model.TranslateConfig{Provider: "openai", APIKey: "k"}, nil))

	assert.Equal(t, "x", Passthrough{}.Translate(context.Background(), "x", "de"))
}
