package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"quiz_answer_llm/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type Completer interface {
	Complete(ctx context.Context, apiKey, prompt string) (string, error)
}

type Client struct {
	completer Completer
	provider  string
	model     string
	logger    *zap.Logger
}

func NewClient(cfg config.Config, logger *zap.Logger) (*Client, error) {
	logger = logger.Named("llm")
	model := strings.TrimSpace(cfg.LLMModel)
	provider := strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	if provider == "" {
		provider = config.ProviderOpenAI
	}

	if model == "" {
		logger.Warn("LLM model is not set; LLM calls will be disabled")
		return &Client{provider: provider, logger: logger}, nil
	}

	var completer Completer
	switch provider {
	case config.ProviderOpenAI:
		httpClient := resty.New().SetTimeout(cfg.LLMTimeout)
		completer = NewOpenAIProvider(cfg.LLMBaseURL, model, httpClient, logger)
	case config.ProviderOpenRouter:
		completer = NewOpenRouterProvider(cfg.LLMBaseURL, model, &http.Client{Timeout: cfg.LLMTimeout}, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}

	return NewClientWithCompleter(completer, provider, model, logger), nil
}

func NewClientWithCompleter(completer Completer, provider, model string, logger *zap.Logger) *Client {
	return &Client{
		completer: completer,
		provider:  provider,
		model:     model,
		logger:    logger,
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.completer != nil
}

// Ask sends the labelled question to the model and returns its trimmed reply.
func (c *Client) Ask(ctx context.Context, apiKey, question string, options []string) (string, error) {
	if !c.Enabled() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(apiKey) == "" {
		return "", ErrMissingAPIKey
	}

	prompt := BuildPrompt(question, options)
	c.logger.Info("sending prompt",
		zap.String("provider", c.provider),
		zap.String("model", c.model),
		zap.Int("options", len(options)),
	)
	c.logger.Debug("prompt", zap.String("text", prompt))

	reply, err := c.completer.Complete(ctx, apiKey, prompt)
	if err != nil {
		return "", err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", ErrEmptyReply
	}
	c.logger.Info("model replied", zap.String("reply", reply))
	return reply, nil
}
