package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rvega1204/job-manager/internal/auth"
	"github.com/rvega1204/job-manager/internal/cache"
	"github.com/rvega1204/job-manager/internal/config"
	"github.com/rvega1204/job-manager/internal/handlers"
	"github.com/rvega1204/job-manager/internal/repo"
	"github.com/rvega1204/job-manager/internal/service"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *mongo.Database, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	// Anything that falls through every route above is a plain-text 404,
	// distinct from the JSON resource-level NotFound.
	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Route does not exist")
	})

	api := r.Group("/api/v1")

	tokens := auth.NewTokenManager([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL.Duration())
	userRepo := repo.NewMongoUserRepo(db)
	userSvc := service.NewUserService(userRepo, tokens, cfg.Auth.BcryptCost)
	authHandler := handlers.NewAuthHandler(userSvc)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireToken(tokens))
	jobRepo := repo.NewMongoJobRepo(db)
	jobCache := cache.NewJobCache(rdb, cfg.Redis.DefaultTTL.Duration())
	jobSvc := service.NewJobService(jobRepo, jobCache)
	jobHandler := handlers.NewJobHandler(jobSvc)
	registerJobRoutes(protected, jobHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Job Manager API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
}

func registerJobRoutes(api *gin.RouterGroup, h *handlers.JobHandler) {
	validateID := auth.ValidateObjectID(auth.ObjectIDConfig{ParamName: "id"})
	api.GET("/jobs", h.List)
	api.POST("/jobs", h.Create)
	api.GET("/jobs/:id", validateID, h.GetByID)
	api.PATCH("/jobs/:id", validateID, h.Update)
	api.DELETE("/jobs/:id", validateID, h.Delete)
}
