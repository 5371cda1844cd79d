package logging

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module must be installed at the app's top level, not inside another
// fx.Module, so the decorated logger reaches every module.
func Module() fx.Option {
	return fx.Options(
		fx.Module(
			"logging",
			fx.Provide(NewFileSink),
			fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger, sink *FileSink) {
				lc.Append(fx.Hook{
					OnStop: func(_ context.Context) error {
						_ = logger.Sync()
						return sink.Close()
					},
				})
			}),
		),
		fx.Decorate(func(base *zap.Logger, sink *FileSink) *zap.Logger {
			return sink.Attach(base)
		}),
	)
}
