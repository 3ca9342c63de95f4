package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"staybnb/internal/config"
	"staybnb/internal/database"
	"staybnb/internal/repository"
	"staybnb/internal/seed"
)

func main() {
	seedFlag := flag.Int64("seed", time.Now().UnixNano(), "random seed for generated bookings and reviews")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.Database.URL, false)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	ctx := context.Background()
	log.Println("Running migrations...")
	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	store := seed.Store{
		Users:    repository.NewUserRepository(db),
		Listings: repository.NewListingRepository(db),
		Bookings: repository.NewBookingRepository(db),
		Reviews:  repository.NewReviewRepository(db),
	}
	logger := log.New(os.Stdout, "", 0)
	logger.Printf("Using seed %d", *seedFlag)

	if _, err := seed.Run(ctx, store, rand.New(rand.NewSource(*seedFlag)), time.Now(), logger); err != nil {
		log.Fatal("Seeding failed:", err)
	}
}
