package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"diagram-gen/internal/config"
	"diagram-gen/internal/helper"
	"diagram-gen/internal/llmservice"
	"diagram-gen/internal/pipeline"
	"diagram-gen/internal/prompt"
	"diagram-gen/internal/server"
	"diagram-gen/internal/store"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	filePath := flag.String("file", "", "Path to the document file to process")
	text := flag.String("text", "", "Raw text to process")
	output := flag.String("output", "", "Path for the generated HTML artifact")
	serve := flag.Bool("serve", false, "Run the HTTP service")
	reset := flag.Bool("reset", false, "Drop and recreate the run-history table")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	summaryLLM, err := llmservice.NewClient(&cfg.SummaryLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing summary LLM client")
	}
	diagramLLM, err := llmservice.NewClient(&cfg.DiagramLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing diagram LLM client")
	}

	var db *bun.DB
	if cfg.Database.DSN != "" {
		sqldb, err := store.ConnectDB(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Error connecting to database")
		}
		db = store.NewDB(sqldb, cfg.Database.Debug)
		defer db.Close()

		if *reset {
			if err := store.DropRuns(context.Background(), db); err != nil {
				log.Fatal().Err(err).Msg("Error clearing run history")
			}
		}

		if err := store.InitDB(context.Background(), db); err != nil {
			log.Fatal().Err(err).Msg("Error initializing database")
		}
	}

	if *reset {
		if db == nil {
			log.Fatal().Msg("The -reset flag requires database.dsn to be configured")
		}
		log.Info().Msg("Run history cleared")
		return
	}

	pipe := pipeline.New(summaryLLM, diagramLLM, prompt.ParseStyle(cfg.Pipeline.Style), db)

	if *serve {
		addr := cfg.Server.Addr
		if addr == "" {
			addr = ":5000"
		}
		timeout := time.Duration(cfg.Server.RequestTimeoutSec) * time.Second
		var history server.RunLister
		if db != nil {
			history = store.NewHistory(db)
		}
		srv := server.New(pipe, history, timeout)
		log.Info().Str("addr", addr).Msg("Starting HTTP service")
		if err := http.ListenAndServe(addr, srv.Routes()); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
		return
	}

	if *filePath == "" && *text == "" {
		log.Fatal().Msg("Please provide a document using the -file flag, raw text using the -text flag, or -serve to run the HTTP service")
	}
	if *filePath != "" && *text != "" {
		log.Fatal().Msg("Please provide either -file or -text, but not both")
	}

	outputFile := *output
	if outputFile != "" && filepath.Dir(outputFile) == "." && cfg.Pipeline.OutputDir != "" {
		outputFile = filepath.Join(cfg.Pipeline.OutputDir, outputFile)
	}

	ctx := context.Background()
	if *filePath != "" {
		result, err := pipe.FromDocument(ctx, *filePath, outputFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Pipeline failed")
		}
		helper.PrettyPrint(result)
		return
	}

	result, err := pipe.FromText(ctx, *text, outputFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Pipeline failed")
	}
	helper.PrettyPrint(result)
}
