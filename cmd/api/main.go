package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/bookitlabs/bookit-server/internal/cache"
	"github.com/bookitlabs/bookit-server/internal/config"
	dbpkg "github.com/bookitlabs/bookit-server/internal/db"
	"github.com/bookitlabs/bookit-server/internal/logging"
	"github.com/bookitlabs/bookit-server/internal/routes"
)

func main() {

	// Missing .env is fine in containers; env vars win either way.
	_ = godotenv.Load()

	logging.Init()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	rdb := cache.NewRedisClient(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	logrus.Infof("server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}
