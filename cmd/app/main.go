package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"daejeonmate/cmd/fx/ai_fx"
	"daejeonmate/cmd/fx/chat_fx"
	"daejeonmate/cmd/fx/config_fx"
	"daejeonmate/cmd/fx/controllers_fx"
	"daejeonmate/cmd/fx/db_fx"
	"daejeonmate/cmd/fx/places_fx"
	"daejeonmate/cmd/fx/rag_fx"
	"daejeonmate/cmd/fx/sync_fx"
	"daejeonmate/internal/api/controllers"
	"daejeonmate/internal/infra"
	"daejeonmate/internal/services"
	"daejeonmate/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		ai_fx.Module,
		places_fx.Module,
		rag_fx.Module,
		sync_fx.Module,
		chat_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(VerifyEmbeddingStore),
		fx.Invoke(StartServer),
	)

	app.Run()
}

// VerifyEmbeddingStore refuses to start when the stored embeddings don't
// match the configured model's dimensionality.
func VerifyEmbeddingStore(syncService services.SyncServiceInterface) error {
	return syncService.VerifyEmbeddingDimensions(context.Background())
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *infra.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	cfg *infra.Config,
	chatController *controllers.ChatController,
	searchController *controllers.SearchController,
	placesController *controllers.PlacesController,
	syncController *controllers.SyncController,
	webhookController *controllers.WebhookController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, cfg, chatController, searchController, placesController, syncController, webhookController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg *infra.Config,
	chatController *controllers.ChatController,
	searchController *controllers.SearchController,
	placesController *controllers.PlacesController,
	syncController *controllers.SyncController,
	webhookController *controllers.WebhookController) {

	api := r.Group("/api")

	api.POST("/chat", chatController.ChatHandler)
	api.POST("/planner-chat", chatController.PlannerChatHandler)
	api.GET("/search", searchController.SearchHandler)

	placesGroup := api.Group("/places")
	placesGroup.GET("", placesController.ListPlaces)
	placesGroup.GET("/:id", placesController.GetPlaceByID)

	api.POST("/sanity-webhook", webhookController.WebhookHandler)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.RoleMiddleware("admin"))
	adminGroup.POST("/sync", syncController.TriggerSyncHandler)
}
