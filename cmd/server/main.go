package main

import (
	"database/sql"
	"sync/atomic"
	"time"

	"clubhouse/pkg/cache"
	"clubhouse/pkg/config"
	"clubhouse/pkg/database"
	"clubhouse/pkg/handlers"
	"clubhouse/pkg/logger"
	"clubhouse/pkg/middleware"
	"clubhouse/pkg/repository"
	"clubhouse/pkg/server"
	"clubhouse/pkg/services"

	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer db.Close()

	// Serverless PG: keep pool small, connections short-lived
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetConnMaxIdleTime(30 * time.Second)

	var ready atomic.Bool
	if err := database.EnsureSchema(db); err != nil {
		// Keep serving: /health reports "starting" until a retry succeeds,
		// so orchestration sees a clean not-ready signal instead of a crash.
		log.Error().Err(err).Msg("schema init failed, retrying in background")
		go retrySchema(db, &ready, log)
	} else {
		ready.Store(true)
		log.Info().Msg("schema ready")
	}

	redis, err := cache.New(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redis.Close()

	repo := repository.NewPostRepository(db)
	postService := services.NewPostService(repo, redis, log)

	posts := handlers.NewPosts(postService, log)
	profile := handlers.NewProfile()
	siteConfig := handlers.NewSiteConfig(cfg)

	app := server.NewApp("clubhouse", ready.Load)

	api := app.Group("/api")
	api.Get("/posts", posts.List)
	api.Post("/posts", middleware.RequireAuth, posts.Create)
	api.Post("/comments", middleware.RequireAuth, posts.CreateComment)
	api.Get("/config", siteConfig.Get)

	app.Get("/profile", middleware.RequireAuth, profile.Me)

	addr := "0.0.0.0:" + cfg.Port
	log.Info().Str("addr", addr).Msg("server starting")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func retrySchema(db *sql.DB, ready *atomic.Bool, log zerolog.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := database.EnsureSchema(db); err != nil {
			log.Error().Err(err).Msg("schema init retry failed")
			continue
		}
		ready.Store(true)
		log.Info().Msg("schema ready")
		return
	}
}
