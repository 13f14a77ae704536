package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/logging"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seed copies a CSV collection into the finished_books table, replacing
// whatever the table held.
func main() {
	var (
		dataFile = flag.String("data", config.DefaultDataFile, "CSV file to import")
		level    = flag.String("log-level", "info", "Log level")
	)
	flag.Parse()

	if err := run(context.Background(), *dataFile, *level); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, dataFile, level string) error {
	config.LoadEnvFiles()
	logger := logging.NewLogger(os.Stderr, logging.LevelFromString(level))

	dsn := os.Getenv("BOOKS_DB_DSN")
	if dsn == "" {
		return errors.New("BOOKS_DB_DSN is required")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database (%s): %w", config.RedactDSN(dsn), err)
	}
	defer pool.Close()

	if _, err := os.Stat(dataFile); err != nil {
		return fmt.Errorf("cannot read %s: %w", dataFile, err)
	}

	src := book.NewFileRepo(dataFile, logger)
	dst := book.NewPostgresRepo(pool, 30*time.Second, logger)

	n, err := book.Copy(ctx, src, dst)
	if err != nil {
		return fmt.Errorf("failed to import books: %w", err)
	}
	log.Printf("Successfully imported %d books from %s", n, dataFile)
	return nil
}
