package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/electrohub/internal/metrics"
	"github.com/polkiloo/electrohub/internal/server/http/handlers"
	"github.com/polkiloo/electrohub/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(metrics.Middleware())
	engine.Use(middleware.DecompressRequest(middleware.MaxRequestBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	userHandler := handlers.NewUserHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.POST("/placeOrder", orderHandler.Place)
	engine.GET("/allOrders", orderHandler.All)
	engine.GET("/getUserOrders/:userId", orderHandler.ByUser)
	engine.PUT("/updateOrderStatus/:orderId", orderHandler.UpdateStatus)
	engine.DELETE("/cancelOrder/:orderId", orderHandler.Cancel)

	engine.POST("/addProduct", catalogHandler.AddProduct)
	engine.GET("/getProductById/:id", catalogHandler.Product)
	engine.PUT("/editProduct/:id", catalogHandler.UpdateProduct)
	engine.DELETE("/deleteProduct/:id", catalogHandler.DeleteProduct)
	engine.POST("/addCategory", catalogHandler.AddCategory)
	engine.GET("/getCategories", catalogHandler.Categories)

	engine.POST("/addToCart", cartHandler.Add)
	engine.GET("/getCart/:userId", cartHandler.Get)

	engine.POST("/addUser", userHandler.Add)
	engine.GET("/getUser/:id", userHandler.Get)

	engine.GET("/health", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	return engine
}
