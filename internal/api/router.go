package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"animetrack/internal/auth"
	"animetrack/internal/config"
)

// NewRouter wires every route. The database handle is passed into each
// handler explicitly so tests can run against their own instance.
func NewRouter(db *sql.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	secret := []byte(cfg.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", RegisterHandler(db, secret, cfg.TokenTTL))
			authGroup.POST("/login", LoginHandler(db, secret, cfg.TokenTTL))
			authGroup.GET("/me", auth.RequireAuth(db, secret), MeHandler())
			authGroup.PUT("/me", auth.RequireAuth(db, secret), UpdateMeHandler(db))
		}

		api.GET("/catalog", CatalogListHandler(db))
		api.GET("/catalog/:id", CatalogGetHandler(db))

		adminGroup := api.Group("/catalog", auth.RequireAuth(db, secret), auth.RequireAdmin())
		{
			adminGroup.POST("", CatalogCreateHandler(db))
			adminGroup.PUT("/:id", CatalogUpdateHandler(db))
			adminGroup.DELETE("/:id", CatalogDeleteHandler(db))
		}

		listGroup := api.Group("/list", auth.RequireAuth(db, secret))
		{
			listGroup.GET("", ListEntriesHandler(db))
			listGroup.POST("", ListCreateHandler(db))
			listGroup.PUT("/:id", ListUpdateHandler(db))
			listGroup.DELETE("/:id", ListDeleteHandler(db))
		}
	}

	return r
}
