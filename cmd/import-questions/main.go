// Package main implements the question import tool. It reads a
// spreadsheet of questions and seeds the question pool in one
// transaction.
//
// Usage:
//
//	import-questions -file questions.xlsx [-sheet Sheet1] [-start-row 2]
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/speakoai/speako-api/internal/config"
	"github.com/speakoai/speako-api/internal/importer"
	"github.com/speakoai/speako-api/internal/platform/logger"
	"github.com/speakoai/speako-api/internal/platform/postgres"
)

const dbPingTimeout = 5 * time.Second

func main() {
	_ = godotenv.Load()

	filePath := flag.String("file", "", "path to the xlsx or csv file (required)")
	sheetName := flag.String("sheet", "Sheet1", "sheet name (xlsx only)")
	startRow := flag.Int("start-row", 2, "first data row, 1-based")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*filePath, *sheetName, *startRow); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
}

func run(filePath, sheetName string, startRow int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	slogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx := context.Background()

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	questionStore := postgres.NewPostgresQuestionStore(db, slogger)
	imp := importer.New(db, questionStore, slogger)

	importCfg := importer.Config{
		FilePath:  filePath,
		SheetName: sheetName,
		StartRow:  startRow,
	}

	result, err := imp.Import(ctx, importCfg)
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d rows: %d created, %d skipped\n",
		result.TotalProcessed, result.Created, result.Skipped)
	for _, importErr := range result.Errors {
		fmt.Printf("  skipped: %s\n", importErr)
	}
	return nil
}
