package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang-market-sentiment/internal/analysis/asset"
	"golang-market-sentiment/internal/analysis/engine"
	"golang-market-sentiment/internal/analysis/lexicon"
	"golang-market-sentiment/internal/ingestion/config"
	"golang-market-sentiment/internal/ingestion/service"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/redis"
	"golang-market-sentiment/pkg/telegram"

	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the feed ingestion service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Ingestion Service", logger.Field("name", cfg.App.Name), logger.IntField("feeds", len(cfg.Ingestion.Feeds)))

	// Initialize Redis
	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	var opts []service.Option
	if cfg.Ingestion.Digest {
		lex, err := lexicon.Default()
		if err != nil {
			appLogger.Fatal("Failed to load lexicon", logger.ErrorField(err))
		}
		catalog, err := asset.DefaultCatalog()
		if err != nil {
			appLogger.Fatal("Failed to load asset catalog", logger.ErrorField(err))
		}
		scorer, err := engine.New(lex, catalog, engine.DefaultPolicy(), engine.WithLogger(appLogger))
		if err != nil {
			appLogger.Fatal("Failed to initialize headline scorer", logger.ErrorField(err))
		}
		telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
		opts = append(opts, service.WithScorer(scorer), service.WithNotifier(telegramNotifier))
	}

	ingestionSvc := service.NewIngestionService(cfg.Ingestion, cfg.Redis.StreamMaxLen, redisClient.Client, appLogger, opts...)
	if err := ingestionSvc.Start(ctx); err != nil {
		appLogger.Fatal("Ingestion service failed", logger.ErrorField(err))
	}

	appLogger.Info("Ingestion service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "ingestion-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-ingestion.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing ingestion-service CLI: %s\n", err)
		os.Exit(1)
	}
}
