package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"ai-chatbot-be/internal/bootstrap"
	"ai-chatbot-be/internal/config"
	"ai-chatbot-be/pkg/database"
	"ai-chatbot-be/pkg/ingest"

	"gorm.io/gorm"
)

// Bulk-ingests a directory of knowledge files without going through
// the chat training flow.
func main() {
	dir := flag.String("dir", "", "directory of files to ingest (.txt, .md, .csv, .json, .pdf, .docx)")
	flag.Parse()

	if *dir == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()

	var gormDB *gorm.DB
	if cfg.Knowledge.Backend == "pgvector" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	ctx := context.Background()

	if err := container.Store.EnsureCollection(ctx); err != nil {
		log.Fatalf("Knowledge store unavailable: %v", err)
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("Failed to read directory: %v", err)
	}

	totalFiles := 0
	totalChunks := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(*dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Skipping %s: %v", entry.Name(), err)
			continue
		}

		docs := container.Dispatcher.Parse(ctx, ingest.File{
			Name:    entry.Name(),
			Payload: ingest.Binary(data),
		})
		if len(docs) == 0 {
			log.Printf("Skipping %s: no content extracted", entry.Name())
			continue
		}

		stored, err := container.Store.AddDocuments(ctx, docs)
		if err != nil {
			log.Fatalf("Failed to store %s: %v", entry.Name(), err)
		}

		fmt.Printf("%s: %d chunk(s)\n", entry.Name(), stored)
		totalFiles++
		totalChunks += stored
	}

	fmt.Printf("\nIngested %d chunk(s) from %d file(s)\n", totalChunks, totalFiles)
}
