package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openrouter "github.com/revrost/go-openrouter"
	"go.uber.org/zap"
)

// OpenRouterProvider talks to OpenRouter through its SDK. The SDK binds the
// key to a client, so a client is built per call from the key read for it.
type OpenRouterProvider struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewOpenRouterProvider(baseURL, model string, httpClient *http.Client, logger *zap.Logger) *OpenRouterProvider {
	return &OpenRouterProvider{
		baseURL:    strings.TrimSpace(baseURL),
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (p *OpenRouterProvider) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	cfgClient := openrouter.DefaultConfig(apiKey)
	if p.baseURL != "" {
		cfgClient.BaseURL = p.baseURL
	}
	cfgClient.HTTPClient = p.httpClient

	client := openrouter.NewClientWithConfig(*cfgClient)
	resp, err := client.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
		Model:    p.model,
		Messages: []openrouter.ChatCompletionMessage{openrouter.UserMessage(prompt)},
	})
	if err != nil {
		if apiErr := statusErrorFromSDK(err); apiErr != nil {
			return "", classifyAPIError(apiErr)
		}
		return "", fmt.Errorf("llm request: %w", err)
	}

	logUsage(p.logger, resp)

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content.Text, nil
}

func statusErrorFromSDK(err error) *APIError {
	var apiErr *openrouter.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &APIError{
			StatusCode: apiErr.HTTPStatusCode,
			Status:     statusLine(apiErr.HTTPStatusCode),
			Body:       apiErr.Error(),
		}
	}

	var reqErr *openrouter.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		body := strings.TrimSpace(string(reqErr.Body))
		if body == "" && reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		status := reqErr.HTTPStatus
		if status == "" {
			status = statusLine(reqErr.HTTPStatusCode)
		}
		return &APIError{
			StatusCode: reqErr.HTTPStatusCode,
			Status:     status,
			Body:       body,
		}
	}

	return nil
}

func statusLine(code int) string {
	return fmt.Sprintf("%d %s", code, http.StatusText(code))
}

func logUsage(logger *zap.Logger, resp openrouter.ChatCompletionResponse) {
	if resp.Usage == nil {
		return
	}
	logger.Debug("llm usage",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
}
