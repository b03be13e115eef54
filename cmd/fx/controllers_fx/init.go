package controllers_fx

import (
	"go.uber.org/fx"

	"daejeonmate/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewChatController),
	fx.Provide(controllers.NewSearchController),
	fx.Provide(controllers.NewPlacesController),
	fx.Provide(controllers.NewSyncController),
	fx.Provide(controllers.NewWebhookController))
