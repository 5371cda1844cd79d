package page

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"quiz_answer_llm/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Status)
}

type Fetcher struct {
	http   *resty.Client
	parser *Parser
	logger *zap.Logger
}

func NewFetcher(cfg config.Config, parser *Parser, logger *zap.Logger) *Fetcher {
	httpClient := resty.New().
		SetTimeout(cfg.PageTimeout).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetHeader("User-Agent", "quiz-ai/1.0")

	return &Fetcher{
		http:   httpClient,
		parser: parser,
		logger: logger.Named("page"),
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (Snapshot, error) {
	resp, err := f.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return Snapshot{}, &StatusError{
			URL:        url,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
		}
	}

	snap, err := f.parser.Parse(bytes.NewReader(resp.Body()))
	if err != nil {
		return Snapshot{}, err
	}
	f.logger.Debug("page fetched",
		zap.String("url", url),
		zap.Bool("has_question", snap.HasQuestion()),
		zap.Int("options", len(snap.Options)),
	)
	return snap, nil
}

func (f *Fetcher) Source(url string) Source {
	return urlSource{fetcher: f, url: strings.TrimSpace(url)}
}

type urlSource struct {
	fetcher *Fetcher
	url     string
}

func (s urlSource) Snapshot(ctx context.Context) (Snapshot, error) {
	return s.fetcher.Fetch(ctx, s.url)
}

// FileSource re-reads a saved HTML page on every snapshot.
type FileSource struct {
	Path   string
	Parser *Parser
}

func (s FileSource) Snapshot(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()

	return s.Parser.Parse(f)
}
