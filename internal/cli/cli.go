package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"quiz_answer_llm/internal/config"
	"quiz_answer_llm/internal/credentials"
	"quiz_answer_llm/internal/page"
	"quiz_answer_llm/internal/quiz"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type Runner struct {
	cfg      config.Config
	logger   *zap.Logger
	answerer *quiz.Answerer
	fetcher  *page.Fetcher
	parser   *page.Parser
	watcher  *page.Watcher
	store    *credentials.Store
}

func NewRunner(
	cfg config.Config,
	logger *zap.Logger,
	answerer *quiz.Answerer,
	fetcher *page.Fetcher,
	parser *page.Parser,
	watcher *page.Watcher,
	store *credentials.Store,
) *Runner {
	return &Runner{
		cfg:      cfg,
		logger:   logger.Named("cli"),
		answerer: answerer,
		fetcher:  fetcher,
		parser:   parser,
		watcher:  watcher,
		store:    store,
	}
}

func (r *Runner) Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return r.RootCmd().ExecuteContext(ctx)
}

func (r *Runner) RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quiz-ai",
		Short:         "Answer quiz questions with a chat model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(r.newWatchCmd())
	cmd.AddCommand(r.newAnswerCmd())
	cmd.AddCommand(newMatchCmd())
	cmd.AddCommand(r.newKeyCmd())

	return cmd
}

// source picks the page to read: a saved HTML file wins over a URL.
func (r *Runner) source(in PageInput) (page.Source, error) {
	switch {
	case in.HTMLFile != "":
		return page.FileSource{Path: in.HTMLFile, Parser: r.parser}, nil
	case in.URL != "":
		return r.fetcher.Source(in.URL), nil
	default:
		return nil, errNoPage
	}
}

func addPageFlags(cmd *cobra.Command, in *PageInput, defaultURL string) {
	cmd.Flags().StringVar(&in.URL, "url", defaultURL, "Quiz page URL (PAGE_URL)")
	cmd.Flags().StringVar(&in.HTMLFile, "html", "", "Read the quiz page from a saved HTML file")
}
