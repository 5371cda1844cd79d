package cli

import (
	"errors"
	"strings"

	"quiz_answer_llm/internal/page"
	"quiz_answer_llm/internal/quiz"

	"github.com/spf13/cobra"
)

func (r *Runner) newAnswerCmd() *cobra.Command {
	var in AnswerInput

	cmd := &cobra.Command{
		Use:   "answer",
		Short: "Answer the question currently on a quiz page, or one given by flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.answer(cmd, in)
		},
	}

	addPageFlags(cmd, &in.Page, r.cfg.PageURL)
	cmd.Flags().StringVarP(&in.Question, "question", "q", "", "Question text (skips reading a page)")
	cmd.Flags().StringArrayVarP(&in.Options, "option", "o", nil, "Answer option, repeat for each option")
	cmd.Flags().BoolVar(&in.JSON, "json", false, "Output JSON format")

	return cmd
}

func (r *Runner) answer(cmd *cobra.Command, in AnswerInput) error {
	ctx := cmd.Context()

	q, err := r.resolveQuestion(cmd, in)
	if err != nil {
		return err
	}

	sess := quiz.NewSession(newConsoleActions(cmd.ErrOrStderr()))
	outcome, err := r.answerer.Answer(ctx, sess, q)
	sess.Wait()
	if err != nil && !errors.Is(err, quiz.ErrNoMatch) {
		return err
	}

	if writeErr := writeOutcome(cmd.OutOrStdout(), outcome, in.JSON); writeErr != nil {
		return writeErr
	}
	return err
}

func (r *Runner) resolveQuestion(cmd *cobra.Command, in AnswerInput) (quiz.Question, error) {
	if question := strings.TrimSpace(in.Question); question != "" {
		return quiz.Question{Text: question, Options: in.Options}, nil
	}
	if len(in.Options) > 0 {
		return quiz.Question{}, errOptionsWithoutQuestion
	}

	src, err := r.source(in.Page)
	if err != nil {
		return quiz.Question{}, err
	}
	snap, err := page.WaitForQuestion(cmd.Context(), src, r.cfg.WaitTimeout, r.cfg.PollInterval)
	if err != nil {
		return quiz.Question{}, err
	}
	return quiz.Question{Text: snap.Question, Options: snap.Options}, nil
}
