// Package translate renders search queries in a donor's language.
package translate

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/ppiankov/aidtrace/internal/model"
)

// Translator translates text into the target language. Implementations
// return the input unchanged on any failure.
type Translator interface {
	Translate(ctx context.Context, text, lang string) string
}

// Passthrough returns every input unchanged
type Passthrough struct{}

// Translate returns text
func (Passthrough) Translate(_ context.Context, text, _ string) string {
	return text
}

// Target parses lang and reports whether translating into it is useful:
// empty, invalid and English targets are not.
func Target(lang string) (language.Base, bool) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return language.Base{}, false
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return language.Base{}, false
	}
	base, conf := tag.Base()
	if conf == language.No || base == english {
		return language.Base{}, false
	}
	return base, true
}

var english, _ = language.English.Base()

// New builds the configured translator. Misconfiguration degrades to
// Passthrough with a warning.
func New(cfg model.TranslateConfig, logger *zap.Logger) Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strings.ToLower(cfg.Provider) {
	case "":
		return Passthrough{}
	case "openai":
		t, err := NewOpenAI(cfg, logger)
		if err != nil {
			logger.Warn("translator disabled", zap.Error(err))
			return Passthrough{}
		}
		return t
	default:
		logger.Warn("translator disabled", zap.Error(eris.Errorf("unknown provider %q", cfg.Provider)))
		return Passthrough{}
	}
}
