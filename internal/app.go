package internal

import (
	"context"

	"quiz_answer_llm/internal/cli"
	"quiz_answer_llm/internal/config"
	"quiz_answer_llm/internal/credentials"
	"quiz_answer_llm/internal/llm"
	"quiz_answer_llm/internal/logging"
	"quiz_answer_llm/internal/page"
	"quiz_answer_llm/internal/quiz"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Run() error {
	var runner *cli.Runner

	app := fx.New(
		logger.Module(),
		logger.WithFxDefaultLogger(),
		config.Module(),
		logging.Module(),
		credentials.Module(),
		llm.Module(),
		page.Module(),
		quiz.Module(),
		cli.Module(),
		fx.Populate(&runner),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(ctx)
	}()

	return runner.Execute()
}
