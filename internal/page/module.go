package page

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module(
		"page",
		fx.Provide(
			NewParser,
			NewFetcher,
			NewWatcher,
		),
	)
}
