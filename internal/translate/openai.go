package translate

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/ppiankov/aidtrace/internal/model"
)

// OpenAI translates through an OpenAI-compatible chat completions API
type OpenAI struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	memo    *cache.Cache
	logger  *zap.Logger
}

// NewOpenAI creates a translator. An API key is required.
func NewOpenAI(cfg model.TranslateConfig, logger *zap.Logger) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, eris.New("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	name := cfg.Model
	if name == "" {
		name = openai.GPT4oMini
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OpenAI{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   name,
		timeout: timeout,
		memo:    cache.New(cache.NoExpiration, 0),
		logger:  logger,
	}, nil
}

// Translate returns text in lang, or text itself when the target is not
// useful or the call fails. Results are memoized for the run.
func (t *OpenAI) Translate(ctx context.Context, text, lang string) string {
	base, ok := Target(lang)
	if !ok || strings.TrimSpace(text) == "" {
		return text
	}

	key := base.String() + "\x00" + text
	if v, found := t.memo.Get(key); found {
		return v.(string)
	}

	out, err := t.complete(ctx, text, base.String())
	if err != nil {
		t.logger.Debug("translation failed", zap.String("lang", base.String()), zap.Error(err))
		return text
	}
	t.memo.Set(key, out, cache.NoExpiration)
	return out
}

func (t *OpenAI) complete(ctx context.Context, text, lang string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Translate the user's search query into the language with ISO 639 code " + lang + ". Reply with the translated query only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		MaxTokens:   200,
		Temperature: 0,
	})
	if err != nil {
		return "", eris.Wrap(err, "OpenAI API error")
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("no response from OpenAI")
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", eris.New("empty translation")
	}
	return out, nil
}
