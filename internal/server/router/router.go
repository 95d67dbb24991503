package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmshop/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(authHandler *handlers.AuthHandler, shopHandler *handlers.ShopHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	secured := api.Group("")
	secured.Use(authHandler.RequireUser())

	secured.GET("/stock", shopHandler.ListStock)
	secured.POST("/stock", shopHandler.CreateStock)
	secured.PUT("/stock/:id", shopHandler.UpdateStock)
	secured.POST("/stock/:id/receive", shopHandler.ReceiveStock)
	secured.POST("/stock/:id/quick-add", shopHandler.QuickAdd)

	secured.GET("/workers", shopHandler.ListWorkers)
	secured.POST("/workers", shopHandler.CreateWorker)
	secured.PUT("/workers/:id", shopHandler.UpdateWorker)

	secured.GET("/cart", shopHandler.GetCart)
	secured.POST("/cart/lines", shopHandler.AddCartLine)
	secured.PUT("/cart/lines/:itemId", shopHandler.SetCartLine)
	secured.DELETE("/cart/lines/:itemId", shopHandler.RemoveCartLine)
	secured.POST("/cart/checkout", shopHandler.Checkout)

	secured.GET("/transactions", shopHandler.ListTransactions)

	secured.GET("/stocktakes", shopHandler.ListStocktakes)
	secured.POST("/stocktakes/draft", shopHandler.StartStocktake)
	secured.GET("/stocktakes/draft", shopHandler.GetStocktakeDraft)
	secured.PUT("/stocktakes/draft/items/:itemId", shopHandler.RecordCount)
	secured.POST("/stocktakes/draft/commit", shopHandler.CommitStocktake)
	secured.DELETE("/stocktakes/draft", shopHandler.DiscardStocktake)

	secured.GET("/reports/dashboard", shopHandler.Dashboard)
	secured.GET("/reports/workers", shopHandler.WorkerSummaries)
	secured.GET("/reports/workers/:id", shopHandler.WorkerDetail)
	secured.GET("/reports/stocktakes", shopHandler.StocktakeReport)

	secured.POST("/sync/reload", shopHandler.Reload)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
