package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type OpenAIProvider struct {
	http   *resty.Client
	model  string
	logger *zap.Logger
}

func NewOpenAIProvider(baseURL, model string, httpClient *resty.Client, logger *zap.Logger) *OpenAIProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenAIBaseURL
	}

	httpClient.SetBaseURL(strings.TrimRight(strings.TrimSpace(baseURL), "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &OpenAIProvider{
		http:   httpClient,
		model:  model,
		logger: logger,
	}
}

func (p *OpenAIProvider) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	body := chatRequest{
		Model:    p.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	var result chatResponse
	resp, err := p.http.R().
		SetContext(ctx).
		SetAuthToken(apiKey).
		SetBody(body).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	if resp.IsError() {
		return "", classifyAPIError(&APIError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       strings.TrimSpace(resp.String()),
		})
	}

	p.logger.Debug("chat completion received",
		zap.Int("status", resp.StatusCode()),
		zap.Int("choices", len(result.Choices)),
	)

	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}
