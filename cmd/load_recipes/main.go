package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"recipe-planner/config"
	"recipe-planner/internal/database"
	"recipe-planner/internal/importer"
	"recipe-planner/internal/logging"
)

func main() {
	username := flag.String("user", "admin", "username to associate with the loaded recipes")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <csv-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	csvPath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	count, err := importer.New(db, logger).ImportCSV(csvPath, *username)
	if err != nil {
		logger.Fatal("import failed, no recipes were committed", zap.Error(err))
	}

	logger.Info("successfully loaded recipes", zap.Int("recipes", count))
}
