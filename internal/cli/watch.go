package cli

import (
	"errors"

	"quiz_answer_llm/internal/page"
	"quiz_answer_llm/internal/quiz"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (r *Runner) newWatchCmd() *cobra.Command {
	var in WatchInput

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a quiz page and answer each new question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.watch(cmd, in)
		},
	}

	addPageFlags(cmd, &in.Page, r.cfg.PageURL)
	cmd.Flags().DurationVar(&in.Interval, "interval", r.cfg.PollInterval, "How often to poll the page")

	return cmd
}

func (r *Runner) watch(cmd *cobra.Command, in WatchInput) error {
	ctx := cmd.Context()
	src, err := r.source(in.Page)
	if err != nil {
		return err
	}

	if _, err := page.WaitForQuestion(ctx, src, r.cfg.WaitTimeout, in.Interval); err != nil {
		if !errors.Is(err, page.ErrWaitTimeout) {
			return err
		}
		r.logger.Warn("no question on the page yet; watching anyway", zap.Error(err))
	}

	sess := quiz.NewSession(newConsoleActions(cmd.OutOrStdout()))
	defer sess.Wait()

	printInfo(cmd.OutOrStdout(), "Watching for new questions (Ctrl+C to stop)...")
	return r.watcher.WithInterval(in.Interval).Run(ctx, src, r.answerer.Handler(sess))
}
