package config

import (
	"fmt"
	"time"

	coreconfig "github.com/go-core-fx/config"
)

const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
)

type Config struct {
	LLMProvider string        `koanf:"llm_provider"`
	LLMBaseURL  string        `koanf:"llm_base_url"`
	LLMAPIKey   string        `koanf:"llm_api_key"`
	LLMModel    string        `koanf:"llm_model"`
	LLMTimeout  time.Duration `koanf:"llm_timeout"`

	PageURL          string        `koanf:"page_url"`
	PageTimeout      time.Duration `koanf:"page_timeout"`
	PollInterval     time.Duration `koanf:"poll_interval"`
	WaitTimeout      time.Duration `koanf:"wait_timeout"`
	QuestionSelector string        `koanf:"question_selector"`
	OptionSelector   string        `koanf:"option_selector"`

	ClickDelay time.Duration `koanf:"click_delay"`
	AutoClick  bool          `koanf:"auto_click"`

	KeyringService string `koanf:"keyring_service"`
	SettingsURL    string `koanf:"settings_url"`
	OpenSettings   bool   `koanf:"open_settings"`

	LogFile string `koanf:"log_file"`
	Debug   bool   `koanf:"debug"`
}

func Default() Config {
	return Config{
		LLMProvider:      ProviderOpenAI,
		LLMModel:         "gpt-5-nano",
		PageTimeout:      20 * time.Second,
		PollInterval:     time.Second,
		WaitTimeout:      10 * time.Second,
		QuestionSelector: `[data-testid="question-container-text"] p`,
		OptionSelector:   `[data-cy^="option-"] p`,
		ClickDelay:       3 * time.Second,
		AutoClick:        true,
		KeyringService:   "quiz-answer-llm",
		SettingsURL:      "https://platform.openai.com/api-keys",
		OpenSettings:     true,
		LogFile:          "./quiz-ai.log",
	}
}

func New() (Config, error) {
	cfg := Default()

	if err := coreconfig.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}
