// Command sync imports the price feed, reseeds the recipes, expires old
// promotions and runs the price-drop detector. With -every it repeats the pass
// on a ticker until interrupted.
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
	"supermarkt/feed"
	"supermarkt/pricedrop"
	"supermarkt/scheduler"
	"supermarkt/store"
)

// promotionRetentionDays is how long expired promotions are kept.
const promotionRetentionDays = 7

var (
	every      = flag.Duration("every", 0, "repeat the sync at this interval (0 runs once)")
	initSchema = flag.Bool("init-schema", false, "create missing tables before syncing")
)

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

	s := store.New(pool)
	detector := pricedrop.New(s, pricedrop.Config{WindowDays: cfg.DetectorWindowDays})
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Printf("Redis unavailable, promotion cache not invalidated: %v", err)
		} else {
			defer rc.Close()
			detector.WithInvalidator(cache.NewPromotionCache(rc, cfg.PromotionCacheTTL))
		}
	}

	client := feed.NewClient(cfg.FeedURL)
	jobs := []scheduler.Job{
		{Name: "prices", Run: func(ctx context.Context) error {
			catalogs, err := client.Fetch(ctx)
			if err != nil {
				return err
			}
			stats, err := s.SyncFeed(ctx, catalogs)
			if err != nil {
				return err
			}
			log.Printf("sync: %d supermarkets, %d products, %d price samples", stats.Supermarkets, stats.Products, stats.Samples)
			return nil
		}},
		{Name: "recipes", Run: func(ctx context.Context) error {
			recipes, err := feed.SeedRecipes()
			if err != nil {
				return err
			}
			n, err := s.ReplaceRecipes(ctx, recipes)
			if err != nil {
				return err
			}
			log.Printf("sync: %d recipes", n)
			return nil
		}},
		{Name: "cleanup", Run: func(ctx context.Context) error {
			n, err := s.CleanupPromotions(ctx, promotionRetentionDays)
			if err != nil {
				return err
			}
			log.Printf("sync: removed %d expired promotions", n)
			return nil
		}},
		{Name: "detect-drops", Run: func(ctx context.Context) error {
			res, err := detector.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Print(res.Summary())
			return nil
		}},
	}

	if *every > 0 {
		scheduler.Run(ctx, *every, jobs...)
		return
	}
	if failed := scheduler.RunOnce(ctx, jobs...); failed > 0 {
		log.Printf("sync: %d of %d jobs failed", failed, len(jobs))
		database.Close(pool)
		os.Exit(1)
	}
}
