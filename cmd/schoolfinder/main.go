package main

import (
	"log/slog"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"schoolfinder/core/finder"
	"schoolfinder/core/normalize"
	"schoolfinder/internal/config"
	"schoolfinder/providers/ai"
	"schoolfinder/providers/ai/anthropic"
	"schoolfinder/providers/ai/gemini"
	"schoolfinder/providers/ai/middleware"
	"schoolfinder/providers/ai/openai"
	"schoolfinder/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error("configuration error", "error", err.Error())
		os.Exit(1)
	}

	provider := buildProvider(cfg)
	provider = middleware.Wrap(provider,
		middleware.NewLogging(logger, middleware.LogLevelStandard),
		middleware.NewTimeout(cfg.Timeout),
	)

	f, err := finder.New(provider, finderOptions(cfg, logger)...)
	if err != nil {
		logger.Error("failed to build finder", "error", err.Error())
		os.Exit(1)
	}

	srv := server.New(f,
		server.WithLogger(logger),
		server.WithFrontendDir(cfg.FrontendDir),
	)

	logger.Info("school finder listening",
		"addr", cfg.Addr,
		"provider", cfg.Provider,
		"validation", cfg.Validation,
	)
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		logger.Error("server stopped", "error", err.Error())
		os.Exit(1)
	}
}

// buildProvider selects the provider implementation and injects the
// credential resolved at startup.
func buildProvider(cfg config.Config) ai.Provider {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.New().WithAPIKey(cfg.APIKey)
	case config.ProviderAnthropic:
		return anthropic.New().WithAPIKey(cfg.APIKey)
	default:
		return gemini.New().WithAPIKey(cfg.APIKey)
	}
}

func finderOptions(cfg config.Config, logger *slog.Logger) []finder.Option {
	normalizeOpts := []normalize.Option{}
	if cfg.Validation == config.ValidationStrict {
		normalizeOpts = append(normalizeOpts, normalize.WithMode(normalize.ModeStrict))
	}
	if cfg.JSONRepair {
		normalizeOpts = append(normalizeOpts, normalize.WithJSONRepair())
	}

	opts := []finder.Option{
		finder.WithLogger(logger),
		finder.WithNormalizer(normalize.New(normalizeOpts...)),
	}
	if cfg.Model != "" {
		opts = append(opts, finder.WithModel(cfg.Model))
	}
	if cfg.TargetCount > 0 {
		opts = append(opts, finder.WithTargetCount(cfg.TargetCount))
	}
	return opts
}
