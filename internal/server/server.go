package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hanifkurn/ventix/config"
	"github.com/hanifkurn/ventix/internal/handlers"
	"github.com/hanifkurn/ventix/internal/middleware"
	"github.com/hanifkurn/ventix/internal/storage"
	"github.com/hanifkurn/ventix/internal/ticketing"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.Default()

	setupRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB) {
	svc := ticketing.NewService(
		storage.NewCatalogStore(db),
		storage.NewLedgerStore(db),
		storage.NewPurchaseStore(db),
		storage.NewTxManager(db),
	)
	r.Use(middleware.TicketingMiddleware(svc))

	v1 := r.Group("/v1")
	{
		events := v1.Group("/events")
		{
			events.GET("", handlers.ListEvents)
			events.GET("/:id", handlers.GetEvent)
		}

		purchases := v1.Group("/purchases")
		{
			purchases.POST("/preview", handlers.PreviewBasket)
			purchases.POST("", handlers.ConfirmPurchase)
			purchases.GET("", handlers.ListPurchases)
			purchases.GET("/:id", handlers.GetPurchase)
			purchases.GET("/:id/receipt", handlers.GenerateReceiptQR)
			purchases.DELETE("/:id", handlers.CancelPurchase)
		}
	}
}
