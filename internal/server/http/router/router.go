package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/verdora/ecotrade/internal/server/http/handlers"
	"github.com/verdora/ecotrade/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	balanceHandler := handlers.NewBalanceHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	plantHandler := handlers.NewPlantHandler(facade)
	recyclingHandler := handlers.NewRecyclingHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/balance", balanceHandler.Summary)

	userAuth.GET("/cart", cartHandler.Get)
	userAuth.POST("/cart/items", cartHandler.AddItem)
	userAuth.PATCH("/cart/items/:productID", cartHandler.SetQuantity)
	userAuth.DELETE("/cart/items/:productID", cartHandler.RemoveItem)
	userAuth.POST("/cart/items/:productID/redeem", cartHandler.RedeemItem)
	userAuth.POST("/cart/apply-points", cartHandler.ApplyPoints)
	userAuth.POST("/cart/checkout", cartHandler.Checkout)

	userAuth.GET("/orders", orderHandler.List)

	userAuth.GET("/plants", plantHandler.List)
	userAuth.POST("/plants/:plantID/water", plantHandler.Water)
	userAuth.POST("/plants/:plantID/fertilize", plantHandler.Fertilize)
	userAuth.POST("/plants/:plantID/care", plantHandler.Care)
	userAuth.POST("/plants/:plantID/advance", plantHandler.AdvanceStage)
	userAuth.PATCH("/plants/:plantID/health", plantHandler.SetHealth)
	userAuth.DELETE("/plants/:plantID", plantHandler.Delete)

	userAuth.POST("/recycling", recyclingHandler.Submit)
	userAuth.GET("/recycling", recyclingHandler.History)

	return engine
}
