package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mkoval/rpmarket/internal/config"
	"github.com/mkoval/rpmarket/internal/server/http/handlers"
	"github.com/mkoval/rpmarket/internal/server/http/middleware"
)

type setupParams struct {
	fx.In

	Facade handlers.StorefrontFacade
	Config *config.Config
	Logger *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p setupParams) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(p.Facade)
	catalogHandler := handlers.NewCatalogHandler(p.Facade)
	cartHandler := handlers.NewCartHandler(p.Facade)
	couponHandler := handlers.NewCouponHandler(p.Facade)
	orderHandler := handlers.NewOrderHandler(p.Facade, p.Config.ReceiptsDir)
	loyaltyHandler := handlers.NewLoyaltyHandler(p.Facade)

	api := engine.Group("/api")

	catalog := api.Group("/catalog")
	catalog.GET("/products", catalogHandler.Products)
	catalog.GET("/currencies", catalogHandler.Currencies)
	catalog.GET("/statuses", catalogHandler.Statuses)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(p.Facade))

	userAuth.GET("/cart", cartHandler.Get)
	userAuth.POST("/cart", cartHandler.Add)
	userAuth.PATCH("/cart/:lineID", cartHandler.SetQuantity)
	userAuth.PUT("/cart/currency", cartHandler.SwitchCurrency)
	userAuth.DELETE("/cart", cartHandler.Clear)

	userAuth.POST("/coupon", couponHandler.Apply)
	userAuth.POST("/coupon/selection", couponHandler.ApplySelection)
	userAuth.DELETE("/coupon", couponHandler.Remove)

	userAuth.POST("/orders", orderHandler.Create)
	userAuth.GET("/orders", orderHandler.List)
	userAuth.GET("/orders/unread", orderHandler.Unread)
	userAuth.GET("/orders/:orderID", orderHandler.Detail)
	userAuth.POST("/orders/:orderID/confirm", orderHandler.Confirm)
	userAuth.GET("/orders/:orderID/countdown", orderHandler.Countdown)
	userAuth.POST("/orders/:orderID/viewed", orderHandler.MarkViewed)

	userAuth.GET("/redeems", orderHandler.Redeems)
	userAuth.POST("/redeems/:redeemID/confirm", orderHandler.ConfirmRedeem)

	userAuth.GET("/loyalty", loyaltyHandler.Summary)
	userAuth.GET("/loyalty/history", loyaltyHandler.History)
	userAuth.GET("/loyalty/rewards", loyaltyHandler.Rewards)
	userAuth.POST("/loyalty/redeem", loyaltyHandler.Redeem)

	return engine
}
