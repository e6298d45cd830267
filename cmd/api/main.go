package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/Jojo-brz/saas-barbearia/internal/config"
	dbpkg "github.com/Jojo-brz/saas-barbearia/internal/db"
	"github.com/Jojo-brz/saas-barbearia/internal/routes"
)

func main() {

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg, logger)

	// The slot-grid cache is optional; without Redis every grid is
	// recomputed per request.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		logger.Info().Str("addr", cfg.RedisAddr).Msg("slot cache enabled")
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, logger)

	logger.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
