package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/spigell/hh-matcher/internal/ai"
	"github.com/spigell/hh-matcher/internal/ai/gemini"
	"github.com/spigell/hh-matcher/internal/ai/openai"
	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/metrics"
	"github.com/spigell/hh-matcher/internal/secrets"
	"github.com/spigell/hh-matcher/internal/store"
	"github.com/spigell/hh-matcher/internal/store/rediscache"
	"github.com/spigell/hh-matcher/internal/store/sqlstore"
	"github.com/spigell/hh-matcher/internal/terms"
	"go.uber.org/zap"
)

// session holds what every command needs: config, logger and metrics.
type session struct {
	config   *Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func newSession() *session {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	registry := prometheus.NewRegistry()

	return &session{
		config:   config,
		logger:   logger,
		registry: registry,
		metrics:  metrics.New(registry),
	}
}

// finish flushes metrics and logs. Call it with defer.
func (r *session) finish() {
	if path := viper.GetString("metrics-textfile"); path != "" {
		if err := metrics.WriteTextfile(path, r.registry); err != nil {
			r.logger.Warn("writing metrics textfile", zap.String("path", path), zap.Error(err))
		}
	}
	_ = r.logger.Sync()
}

func (r *session) table() (*terms.Table, error) {
	table, err := terms.Default(r.config.Skills.ExtraTerms...)
	if err != nil {
		return nil, fmt.Errorf("build term table: %w", err)
	}
	return table, nil
}

func (r *session) completer(ctx context.Context) (ai.Completer, error) {
	cfg := r.config.LLM
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	switch provider {
	case "", "openai":
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "llm api key",
			File:  cfg.APIKeyFile,
			Value: cfg.APIKey,
			Env:   "LLM_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set llm.api-key-file or LLM_API_KEY)", err)
		}

		client, err := openai.NewClient(openai.Options{
			URL:     cfg.APIURL,
			APIKey:  apiKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger.WithCommonFields(r.logger, "openai", cfg.Model))
		if err != nil {
			return nil, err
		}
		return client, nil

	case "gemini":
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			File:  cfg.APIKeyFile,
			Value: cfg.APIKey,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set llm.api-key-file or GEMINI_API_KEY)", err)
		}
		generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return generator, nil

	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

func (r *session) matcher(ctx context.Context) (*matching.Matcher, error) {
	table, err := r.table()
	if err != nil {
		return nil, err
	}

	completer, err := r.completer(ctx)
	if err != nil {
		return nil, err
	}

	return matching.NewMatcher(table, ai.NewPromptBuilder(r.config.Prompt), completer, matching.Options{
		Provider:     r.config.LLM.Provider,
		MaxLogLength: r.config.LLM.MaxLogLength,
		Metrics:      r.metrics,
		Logger:       r.logger,
	})
}

func (r *session) openStore(ctx context.Context) (store.Store, error) {
	cfg := r.config.Store

	var st store.Store
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "memory":
		st = store.NewMemory()
	default:
		sqlStore, err := sqlstore.Open(ctx, sqlstore.Options{Driver: cfg.Driver, DSN: cfg.DSN}, r.logger)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := sqlStore.Migrate(ctx); err != nil {
				sqlStore.Close()
				return nil, err
			}
		}
		st = sqlStore
	}

	if cfg.Redis != nil && strings.TrimSpace(cfg.Redis.Addr) != "" {
		cached := rediscache.New(st, rediscache.NewClient(*cfg.Redis), cfg.Redis.TTL, r.metrics, r.logger)
		if err := cached.Ping(ctx); err != nil {
			r.logger.Warn("redis is unreachable; continuing without warm cache", zap.Error(err))
		}
		st = cached
	}

	return st, nil
}

func readInput(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("input file is required")
	}
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}
	return string(data), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
