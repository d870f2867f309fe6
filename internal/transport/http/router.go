package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/mfiguera/product-api/internal/transport/http/handler"
	"github.com/mfiguera/product-api/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, userHandler *handler.UserHandler, productHandler *handler.ProductHandler, hmacKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(hmacKey)

	user := r.Group("/api/user")
	user.POST("/register", userHandler.Register)
	user.POST("/login", userHandler.Login)
	user.GET("/verifytoken", authMW, userHandler.VerifyToken)

	product := r.Group("/api/product")
	product.POST("/create", authMW, productHandler.Create)
	product.GET("/readall", productHandler.List)
	product.GET("/readone/:id", productHandler.GetByID)
	product.PUT("/update/:id", authMW, productHandler.Update)
	product.DELETE("/delete/:id", authMW, productHandler.Delete)

	return r
}
