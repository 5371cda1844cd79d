// Package credentials keeps the model API key in the OS keyring and offers
// the remediation path when it is missing.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quiz_answer_llm/internal/config"

	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
)

// KeyName is the keyring account the API key is stored under.
const KeyName = "OPENAI_API_KEY"

var (
	ErrMissingKey = errors.New("api key not found")
	ErrEmptyKey   = errors.New("api key is empty")
)

type Source string

const (
	SourceNone    Source = ""
	SourceKeyring Source = "keyring"
	SourceConfig  Source = "config"
)

type Store struct {
	service  string
	fallback string
	logger   *zap.Logger
}

func NewStore(cfg config.Config, logger *zap.Logger) *Store {
	service := strings.TrimSpace(cfg.KeyringService)
	if service == "" {
		service = config.Default().KeyringService
	}

	return &Store{
		service:  service,
		fallback: strings.TrimSpace(cfg.LLMAPIKey),
		logger:   logger.Named("credentials"),
	}
}

// APIKey returns the key to use for the next request. The keyring entry wins
// over the configured llm_api_key.
func (s *Store) APIKey(ctx context.Context) (string, error) {
	key, _, err := s.Lookup(ctx)
	return key, err
}

// Lookup is APIKey that also reports where the key came from.
func (s *Store) Lookup(ctx context.Context) (string, Source, error) {
	if err := ctx.Err(); err != nil {
		return "", SourceNone, err
	}

	key, err := keyring.Get(s.service, KeyName)
	switch {
	case err == nil && strings.TrimSpace(key) != "":
		return strings.TrimSpace(key), SourceKeyring, nil
	case err != nil && !errors.Is(err, keyring.ErrNotFound):
		s.logger.Warn("keyring unavailable", zap.Error(err))
	}

	if s.fallback != "" {
		return s.fallback, SourceConfig, nil
	}
	return "", SourceNone, ErrMissingKey
}

func (s *Store) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	if err := keyring.Set(s.service, KeyName, key); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	s.logger.Info("api key saved", zap.String("key", Mask(key)))
	return nil
}

func (s *Store) RemoveAPIKey() error {
	err := keyring.Delete(s.service, KeyName)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("remove api key: %w", err)
	}
	s.logger.Info("api key removed")
	return nil
}

func Mask(key string) string {
	if key == "" {
		return "(not set)"
	}
	runes := []rune(key)
	if len(runes) > 10 {
		return string(runes[:4]) + "…" + string(runes[len(runes)-4:])
	}
	return "••••••"
}
