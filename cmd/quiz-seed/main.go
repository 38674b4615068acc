package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"mannerisms/internal/logging"
	"mannerisms/internal/seed"
	"mannerisms/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "error: loading .env:", err)
		os.Exit(1)
	}

	database := flag.String("database", os.Getenv("DATABASE_URL"), "database URL (postgres://..., sqlite://path or a file path)")
	reset := flag.Bool("reset", false, "replace existing questions instead of refusing to seed")
	logLevel := flag.String("log-level", os.Getenv("LOG_LEVEL"), "log level")
	flag.Parse()

	logger := logging.New("quiz-seed", *logLevel)
	if *database == "" {
		logger.Fatal("--database or DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := store.Open(ctx, *database)
	if err != nil {
		logger.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	basic, advanced, err := seed.Seed(ctx, db, *reset, time.Now().UTC())
	if errors.Is(err, seed.ErrAlreadySeeded) {
		logger.Warn("questions already present; rerun with --reset to replace them")
		return
	}
	if err != nil {
		logger.WithError(err).Fatal("seeding failed")
	}

	logger.WithField("basic", basic).WithField("advanced", advanced).Info("question bank seeded")
}
