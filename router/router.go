package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/princinho/catalogadmin/controllers"
	"github.com/princinho/catalogadmin/database"
	"github.com/princinho/catalogadmin/middleware"
	"github.com/princinho/catalogadmin/utils"
	"go.uber.org/zap"
)

type Deps struct {
	Stores         *database.Stores
	Auth           controllers.Authenticator
	Tokens         utils.TokenVerifier
	Images         utils.ImageStore
	Validator      *utils.FileValidator
	AllowedOrigins []string
	Log            *zap.Logger
}

func corsConfig(origins []string, log *zap.Logger) cors.Config {
	allowedOrigins := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowedOrigins[o] = true
	}
	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			ok := allowedOrigins[origin]
			if !ok {
				log.Debug("cors origin rejected", zap.String("origin", origin))
			}
			return ok
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// New builds the HTTP engine with every route mounted.
func New(d Deps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	validator := d.Validator
	if validator == nil {
		validator = utils.NewImageValidator(0)
	}

	r := gin.New()
	r.Use(cors.New(corsConfig(d.AllowedOrigins, log)))
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	api.POST("/auth/register", controllers.Register(d.Auth, log))
	api.POST("/auth/login", controllers.Login(d.Auth, log))

	api.GET("/products", controllers.GetProducts(d.Stores.Products, log))
	api.GET("/products/:id", controllers.GetProduct(d.Stores.Products, log))
	api.GET("/settings", controllers.GetSettings(d.Stores.Settings, log))

	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(d.Tokens))
	{
		admin.POST("/auth/password", controllers.ChangePassword(d.Auth, log))

		admin.POST("/products", controllers.AddProduct(d.Stores.Products, log))
		admin.PUT("/products/:id", controllers.UpdateProduct(d.Stores.Products, d.Images, log))
		admin.DELETE("/products/:id", controllers.DeleteProduct(d.Stores.Products, d.Images, log))

		admin.POST("/settings", controllers.SaveSettings(d.Stores.Settings, log))

		admin.POST("/uploads", controllers.UploadImage(d.Images, validator, log))
	}

	return r
}
