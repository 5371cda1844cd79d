package quiz

import (
	"quiz_answer_llm/internal/config"
	"quiz_answer_llm/internal/credentials"
	"quiz_answer_llm/internal/llm"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"quiz",
		fx.Provide(func(cfg config.Config, store *credentials.Store, client *llm.Client, settings *credentials.Settings, logger *zap.Logger) *Answerer {
			return NewAnswerer(store, client, settings, OptionsFromConfig(cfg), logger)
		}),
	)
}
