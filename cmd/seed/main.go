// Package main provides a tool to bootstrap the club directory database.
//
// This imports the structured clubs.json dataset and the scraped
// clubdata.html listing through the regular service layer, and creates
// a demo user account.
//
// Usage:
//
//	DATA_PATH=~/ClubReview/data go run ./cmd/seed
//	go run ./cmd/seed -clubs-json clubs.json -clubs-html clubdata.html
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/clubreviewapp/clubreview-server/internal/auth"
	"github.com/clubreviewapp/clubreview-server/internal/bootstrap"
	"github.com/clubreviewapp/clubreview-server/internal/cache"
	"github.com/clubreviewapp/clubreview-server/internal/service"
	"github.com/clubreviewapp/clubreview-server/internal/store/sqlite"
	"github.com/clubreviewapp/clubreview-server/internal/validation"
)

var (
	clubsJSON    = flag.String("clubs-json", "clubs.json", "Path to the structured clubs dataset (empty to skip)")
	clubsHTML    = flag.String("clubs-html", "clubdata.html", "Path to the scraped club listing (empty to skip)")
	demoUser     = flag.Bool("demo-user", true, "Create the demo user account")
	demoPassword = flag.String("demo-password", "josh1234", "Password for the demo user")
	reset        = flag.Bool("reset", false, "Delete any existing database before importing")
)

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/ClubReview/data")
	}
	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataPath, "clubreview.db")
	if *reset {
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Failed to remove existing database: %v", err)
		}
		fmt.Println("Removed existing database")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.Default()

	s, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	authKey, err := auth.LoadOrGenerateKey(dataPath)
	if err != nil {
		log.Fatalf("Failed to load auth key: %v", err)
	}
	tokenService, err := auth.NewTokenService(hex.EncodeToString(authKey), 24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	c := cache.New(5 * time.Minute)
	clubService := service.NewClubService(s, c, logger)
	authService := service.NewAuthService(s, tokenService, validation.New(), logger)

	importer := bootstrap.NewImporter(clubService, authService, logger)

	ctx := context.Background()

	if *demoUser {
		if err := importer.SeedDemoUser(ctx, *demoPassword); err != nil {
			log.Fatalf("Failed to seed demo user: %v", err)
		}
	}

	result, err := importer.ImportFiles(ctx, *clubsJSON, *clubsHTML)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	fmt.Printf("Import complete: %d clubs created, %d skipped\n", result.Created, result.Skipped)
}
