// Command detect-drops runs one price-drop detection pass and prints its summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"supermarkt/cache"
	"supermarkt/config"
	"supermarkt/database"
	"supermarkt/pricedrop"
	"supermarkt/store"
)

var limit = flag.Int("limit", pricedrop.DefaultLimit, "maximum number of drops to insert")

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

	d := pricedrop.New(store.New(pool), pricedrop.Config{WindowDays: cfg.DetectorWindowDays, Limit: *limit})
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Printf("Redis unavailable, promotion cache not invalidated: %v", err)
		} else {
			defer rc.Close()
			d.WithInvalidator(cache.NewPromotionCache(rc, cfg.PromotionCacheTTL))
		}
	}

	res, err := d.Run(ctx)
	if err != nil {
		log.Printf("Price drop detection failed: %v", err)
		database.Close(pool)
		os.Exit(1)
	}
	fmt.Print(res.Summary())
}
