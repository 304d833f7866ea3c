package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/SirClappington/dj-product-explorer/internal/catalog"
	"github.com/SirClappington/dj-product-explorer/internal/config"
	"github.com/SirClappington/dj-product-explorer/internal/server"
	"github.com/SirClappington/dj-product-explorer/internal/services"
)

var (
	cfg           *config.Config
	searchService *services.SearchService
	logger        *logrus.Logger
)

func init() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger = newLogger(cfg.Log)

	// Load the product table once; nothing is served without it.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Dataset.FetchTimeout())
	defer cancel()

	source, err := catalog.NewSource(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize dataset source")
	}

	table, err := catalog.Load(ctx, source, catalog.LoadOptions{
		Encoding: cfg.Dataset.Encoding,
		Sheet:    cfg.Dataset.Sheet,
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load dataset")
	}

	searchService = services.NewSearchService(table, logger)
}

func newLogger(lc config.LogConfig) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	if lc.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		l.WithError(err).Warnf("Unknown log level %q, using info", lc.Level)
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}

func main() {
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := server.NewRouter(searchService, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build router")
	}

	logger.WithFields(logrus.Fields{
		"addr":  cfg.Server.Addr(),
		"debug": cfg.Server.Debug,
	}).Info("Starting product explorer")

	if err := r.Run(cfg.Server.Addr()); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
}
