package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4/pgxpool"

	"supermarkt/assistant"
	"supermarkt/cache"
	"supermarkt/config"
	"supermarkt/database"
	"supermarkt/handlers"
	"supermarkt/middleware"
	"supermarkt/routes"
	"supermarkt/store"
)

var initSchema = flag.Bool("init-schema", false, "create missing tables before serving")

func main() {
	flag.Parse()

	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Database: %v", err)
	}
	defer database.Close(pool)

	if *initSchema {
		if err := database.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("Database: %v", err)
		}
	}

	opts := handlers.Options{
		JWTSecret:            []byte(cfg.JWTSecret),
		OperatorUsername:     cfg.OperatorUsername,
		OperatorPasswordHash: cfg.OperatorPasswordHash,
		DetectorWindowDays:   cfg.DetectorWindowDays,
	}
	if !cfg.AuthEnabled() {
		log.Println("JWT_SECRET or OPERATOR_PASSWORD_HASH not set, operator routes are disabled")
	}

	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Printf("Redis unavailable, serving promotions without cache: %v", err)
		} else {
			defer rc.Close()
			opts.Cache = cache.NewPromotionCache(rc, cfg.PromotionCacheTTL)
		}
	}

	if cfg.GeminiAPIKey != "" {
		gem, err := assistant.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("Gemini unavailable, plans will have no notes: %v", err)
		} else {
			defer gem.Close()
			opts.Narrator = assistant.NewNarrator(gem)
		}
	}

	h := handlers.NewHandler(openRepository(pool), opts)

	app := fiber.New(fiber.Config{
		AppName:      "supermarkt",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
	})
	middleware.Setup(app)
	routes.SetupRoutes(app, h, opts.JWTSecret)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
	}()

	log.Printf("Listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}

// openRepository binds each request to one pooled connection.
func openRepository(pool *pgxpool.Pool) handlers.OpenFunc {
	return func(ctx context.Context) (handlers.Repository, func(), error) {
		s, release, err := store.Acquire(ctx, pool)
		if err != nil {
			return nil, nil, err
		}
		return s, release, nil
	}
}
