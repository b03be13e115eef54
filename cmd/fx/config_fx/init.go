package config_fx

import (
	"go.uber.org/fx"

	"daejeonmate/internal/infra"
)

var Module = fx.Provide(
	provideConfig)

func provideConfig() (*infra.Config, error) {
	return infra.LoadConfig()
}
