package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang-market-sentiment/internal/analysis/asset"
	"golang-market-sentiment/internal/analysis/engine"
	"golang-market-sentiment/internal/analysis/lexicon"
	"golang-market-sentiment/internal/analyzer/config"
	"golang-market-sentiment/internal/analyzer/delivery/consumer"
	delivery "golang-market-sentiment/internal/analyzer/delivery/http"
	_ "golang-market-sentiment/internal/analyzer/docs"
	"golang-market-sentiment/internal/analyzer/repository"
	"golang-market-sentiment/internal/analyzer/service"
	"golang-market-sentiment/pkg/common"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/postgres"
	"golang-market-sentiment/pkg/redis"
	"golang-market-sentiment/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var (
	configPath string
	seed       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the analyzer service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
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

	appLogger.Info("Starting Analyzer Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamArticleAnalysis, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	assetRepo := repository.NewAssetRepository(db.DB)
	analysisRepo := repository.NewSentimentAnalysisRepository(db.DB)
	predictionRepo := repository.NewMarketPredictionRepository(db.DB)
	cacheRepo := repository.NewCacheRepository(redisClient.Client, cfg.Cache.ResultTTL)
	articleRepo := repository.NewArticleRepository(cfg.Fetcher, &http.Client{Timeout: cfg.Fetcher.Timeout}, appLogger)

	// Load analysis data
	lex, catalog, err := loadAnalysisData(cfg.Engine)
	if err != nil {
		appLogger.Fatal("Failed to load analysis data", logger.ErrorField(err))
	}

	engineOpts := []engine.Option{
		engine.WithLogger(appLogger),
		engine.WithSinks(service.NewPersistenceSink(assetRepo, analysisRepo, appLogger)),
	}

	// Initialize model estimator
	switch cfg.AI.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		geminiRepo, err := repository.NewGeminiRepository(cfg.Gemini, appLogger, genAiClient, &http.Client{Timeout: cfg.Gemini.Timeout})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini repository", logger.ErrorField(err))
		}
		engineOpts = append(engineOpts, engine.WithEstimator(geminiRepo), engine.WithImageProvider(geminiRepo))
	case "openai":
		openAIRepo, err := repository.NewOpenAIRepository(cfg.OpenAI, appLogger, &http.Client{Timeout: cfg.OpenAI.Timeout})
		if err != nil {
			appLogger.Fatal("Failed to initialize OpenAI repository", logger.ErrorField(err))
		}
		engineOpts = append(engineOpts, engine.WithEstimator(openAIRepo))
	case "":
		appLogger.Info("No AI provider configured, using keyword scoring only")
	default:
		appLogger.Fatal("Unsupported AI provider", logger.StringField("provider", cfg.AI.Provider))
	}

	// Initialize Telegram alerts
	if cfg.Telegram.BotToken != "" {
		telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
		engineOpts = append(engineOpts, engine.WithSinks(service.NewNotificationSink(telegramNotifier, appLogger)))
	}

	analysisEngine, err := engine.New(lex, catalog, cfg.Engine.Policy, engineOpts...)
	if err != nil {
		appLogger.Fatal("Failed to initialize analysis engine", logger.ErrorField(err))
	}

	// Initialize services
	analysisSvc := service.NewAnalysisService(analysisEngine, articleRepo, cacheRepo, assetRepo, analysisRepo, cfg.Engine.MaxTextLength, appLogger)
	assetSvc := service.NewAssetService(assetRepo, catalog, appLogger)
	predictionSvc := service.NewPredictionService(assetRepo, predictionRepo, appLogger)
	dashboardSvc := service.NewDashboardService(assetRepo, analysisRepo, predictionRepo, appLogger)

	if seed {
		seeded, err := service.NewSeedService(assetRepo, analysisRepo, predictionRepo, appLogger).Seed(ctx)
		if err != nil {
			appLogger.Fatal("Failed to seed demo data", logger.ErrorField(err))
		}
		appLogger.Info("Seed finished", logger.Field("seeded", seeded))
	}

	// Start stream consumer
	var redisConsumer *consumer.RedisConsumer
	if cfg.Consumer.Enabled {
		articleStreamSvc := service.NewArticleStreamService(redisClient.Client, analysisSvc, service.ArticleStreamOptions{
			Block:    cfg.Consumer.Block,
			Count:    cfg.Consumer.Count,
			MaxIdle:  cfg.Consumer.MaxIdle,
			MaxRetry: cfg.Consumer.MaxRetry,
		}, appLogger)
		redisConsumer = consumer.NewRedisConsumer(cfg.Consumer, articleStreamSvc, appLogger)
		redisConsumer.Start(ctx)
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")
	assetsGroup := apiV1.Group("/assets")

	analysisHandler := delivery.NewAnalysisHandler(analysisSvc, appLogger)
	analysisHandler.RegisterRoutes(apiV1)
	analysisHandler.RegisterAssetRoutes(assetsGroup)

	assetHandler := delivery.NewAssetHandler(assetSvc, appLogger)
	assetHandler.RegisterRoutes(assetsGroup)
	assetHandler.RegisterCatalogRoutes(apiV1)

	predictionHandler := delivery.NewPredictionHandler(predictionSvc, appLogger)
	predictionHandler.RegisterRoutes(apiV1)
	predictionHandler.RegisterAssetRoutes(assetsGroup)

	dashboardHandler := delivery.NewDashboardHandler(dashboardSvc, appLogger)
	dashboardHandler.RegisterRoutes(apiV1)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}
	if redisConsumer != nil {
		redisConsumer.Stop()
	}

	appLogger.Info("Server exiting")
}

func loadAnalysisData(cfg config.Engine) (*lexicon.Lexicon, *asset.Catalog, error) {
	var (
		lex     *lexicon.Lexicon
		catalog *asset.Catalog
		err     error
	)
	if cfg.LexiconFile != "" {
		lex, err = lexicon.LoadFile(cfg.LexiconFile)
	} else {
		lex, err = lexicon.Default()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	if cfg.CatalogFile != "" {
		catalog, err = asset.LoadCatalogFile(cfg.CatalogFile)
	} else {
		catalog, err = asset.DefaultCatalog()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load asset catalog: %w", err)
	}
	return lex, catalog, nil
}

// @title Market Sentiment API
// @version 1.0
// @description Sentiment and market impact analysis of financial text and images.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "analyzer-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-analyzer.yaml", "Path to the configuration file")
	serveCmd.Flags().BoolVar(&seed, "seed", false, "Insert demo data when the database is empty")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing analyzer-service CLI: %s\n", err)
		os.Exit(1)
	}
}
