package main

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"animetrack/internal/api"
	"animetrack/internal/config"
	"animetrack/pkg/database"
)

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is not set")
	}
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		logrus.Fatalf("create data dir: %v", err)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("migrate: %v", err)
	}
	if err := database.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logrus.Fatalf("bootstrap admin: %v", err)
	}

	if cfg.SeedFile != "" {
		items, err := database.LoadItemsFromJSON(cfg.SeedFile)
		if err != nil {
			logrus.Fatalf("load seed file: %v", err)
		}
		n, err := database.SeedCatalog(db, items)
		if err != nil {
			logrus.Fatalf("seed catalog: %v", err)
		}
		logrus.Infof("seeded %d catalog items from %s", n, cfg.SeedFile)
	}

	r := api.NewRouter(db, cfg)

	logrus.Infof("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("server: %v", err)
	}
}
