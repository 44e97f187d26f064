package server

import (
	"context"
	"net/http"
	"time"

	"github.com/carhub/catalog-service/internal/auth"
	productH "github.com/carhub/catalog-service/internal/product/handler"
	reservationH "github.com/carhub/catalog-service/internal/reservation/handler"
	"github.com/carhub/catalog-service/pkg/cache"
	"github.com/carhub/catalog-service/pkg/db"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Products        *productH.ProductHandler
	Reservations    *reservationH.ReservationHandler
	Verifier        auth.Verifier
	Postgres        *db.Postgres
	Redis           *cache.RedisClient // optional
	Logger          *zap.Logger
	CORSAllowOrigin string
}

func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(deps.Logger))
	router.Use(Metrics())
	router.Use(CORS(deps.CORSAllowOrigin))

	requireAuth := auth.RequireAuth(deps.Verifier)

	router.GET("/products", deps.Products.ListProducts)
	router.GET("/latest-products", deps.Products.LatestProducts)
	router.GET("/products/:id", deps.Products.GetProduct)
	router.GET("/search", deps.Products.SearchProducts)

	router.POST("/products", requireAuth, deps.Products.CreateProduct)
	router.PATCH("/products/:id", requireAuth, deps.Products.UpdateProduct)
	router.DELETE("/products/:id", requireAuth, deps.Products.DeleteProduct)
	router.GET("/my-exports", requireAuth, deps.Products.ListOwnProducts)

	router.POST("/import-product", requireAuth, deps.Reservations.ImportProduct)
	router.GET("/my-imports", requireAuth, deps.Reservations.ListMyImports)
	router.DELETE("/my-imports/product/:productId", requireAuth, deps.Reservations.WithdrawProduct)

	router.GET("/health", healthHandler(deps))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func healthHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		checks := gin.H{}
		healthy := true

		if err := deps.Postgres.Ping(ctx); err != nil {
			healthy = false
			checks["postgres"] = err.Error()
		} else {
			checks["postgres"] = "ok"
		}

		if deps.Redis != nil {
			if err := deps.Redis.Ping(ctx); err != nil {
				healthy = false
				checks["redis"] = err.Error()
			} else {
				checks["redis"] = "ok"
			}
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"success": healthy,
			"data":    gin.H{"checks": checks, "time": time.Now().UTC()},
		})
	}
}
