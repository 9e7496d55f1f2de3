package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/shopmate-fulfillment/server/internal/catalog"
	"github.com/shopmate-fulfillment/server/internal/core"
	"github.com/shopmate-fulfillment/server/internal/fulfillment"
	"github.com/shopmate-fulfillment/server/internal/llm"
	"github.com/shopmate-fulfillment/server/internal/state"
	"github.com/shopmate-fulfillment/server/internal/webhook"
	logx "github.com/shopmate-fulfillment/server/pkg/logger"
	pkgredis "github.com/shopmate-fulfillment/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the fulfillment service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	ListenAddr  string `envconfig:"LISTEN_ADDR" default:":8080"`

	// Infrastructure
	Redis      pkgredis.Config
	ContextTTL string `envconfig:"CONTEXT_TTL" default:"24h"`

	// External services
	Catalog catalog.Config

	// LLM provider
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL"`
	Generative    llm.Config
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Err(err).Msg("could not load .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("failed to process environment config")
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	ttl, err := time.ParseDuration(cfg.ContextTTL)
	if err != nil {
		logx.Fatal().Err(err).Str("context_ttl", cfg.ContextTTL).Msg("invalid context TTL")
	}

	rdb, err := cfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise Redis client")
	}
	defer rdb.Close()

	contexts := state.NewRedisStore(rdb, ttl)

	catalogClient, err := catalog.NewClient(cfg.Catalog)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise catalog client")
	}

	generator, err := llm.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.Generative)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise text generator")
	}

	f := fulfillment.New(catalogClient, generator)
	srv := webhook.NewServer(f.Registry(), contexts)

	logx.Info().Str("addr", cfg.ListenAddr).Msg("fulfillment webhook listening")
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Handler()); err != nil {
		logx.Fatal().Err(err).Msg("http server stopped")
	}
}
