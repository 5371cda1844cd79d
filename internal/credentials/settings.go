package credentials

import (
	"strings"

	"quiz_answer_llm/internal/config"

	"github.com/pkg/browser"
	"go.uber.org/zap"
)

const setKeyHint = "quiz-ai key set"

type Settings struct {
	url     string
	open    bool
	openURL func(string) error
	logger  *zap.Logger
}

func NewSettings(cfg config.Config, logger *zap.Logger) *Settings {
	return &Settings{
		url:     strings.TrimSpace(cfg.SettingsURL),
		open:    cfg.OpenSettings,
		openURL: browser.OpenURL,
		logger:  logger.Named("settings"),
	}
}

// Open points the user at the key settings. Opening the browser is best
// effort; the hint is always logged.
func (s *Settings) Open() error {
	s.logger.Error("API key not found. Save one before answering questions.",
		zap.String("command", setKeyHint),
		zap.String("env", "LLM_API_KEY"),
	)

	if !s.open || s.url == "" {
		return nil
	}
	return s.openURL(s.url)
}
