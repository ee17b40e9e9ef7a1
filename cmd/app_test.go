package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spigell/hh-matcher/internal/metrics"
	"github.com/spigell/hh-matcher/internal/store"
	"github.com/spigell/hh-matcher/internal/store/rediscache"
	"github.com/spigell/hh-matcher/internal/terms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestSession(t *testing.T, cfg *Config) *session {
	t.Helper()

	if cfg.LLM == nil {
		cfg.LLM = &LLMConfig{}
	}
	if cfg.Store == nil {
		cfg.Store = &StoreConfig{Driver: "memory"}
	}
	if cfg.Skills == nil {
		cfg.Skills = &SkillsConfig{}
	}

	reg := prometheus.NewRegistry()
	return &session{config: cfg, logger: zaptest.NewLogger(t), registry: reg, metrics: metrics.New(reg)}
}

func TestGetConfigDefaultsAndEnv(t *testing.T) {
	t.Setenv("LLM_MODEL", "deepseek-test")
	t.Setenv("DATABASE_URL", "postgres://localhost/matcher")

	cfg, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "deepseek-test", cfg.LLM.Model)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/matcher", cfg.Store.DSN)
	assert.True(t, cfg.Store.AutoMigrate)
}

func TestCompleterRejectsUnknownProvider(t *testing.T) {
	s := newTestSession(t, &Config{LLM: &LLMConfig{Provider: "llama"}})

	_, err := s.completer(context.Background())
	assert.ErrorContains(t, err, "unsupported llm provider")
}

func TestCompleterRequiresKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	s := newTestSession(t, &Config{LLM: &LLMConfig{Provider: "openai"}})

	_, err := s.completer(context.Background())
	assert.ErrorContains(t, err, "llm api key")
}

func TestCompleterOpenAI(t *testing.T) {
	s := newTestSession(t, &Config{LLM: &LLMConfig{APIKey: "sk-test", Model: "gpt-test"}})

	c, err := s.completer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gpt-test", c.Model())
}

func TestTableIncludesExtraTerms(t *testing.T) {
	s := newTestSession(t, &Config{Skills: &SkillsConfig{ExtraTerms: []terms.Group{
		{Key: "temporal", Aliases: []string{"temporal.io"}},
	}}})

	table, err := s.table()
	require.NoError(t, err)

	key, ok := table.Canonicalize("Temporal.io")
	assert.True(t, ok)
	assert.Equal(t, "temporal", key)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	s := newTestSession(t, &Config{})
	st, err := s.openStore(ctx)
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, st)
	require.NoError(t, st.Close())

	s = newTestSession(t, &Config{Store: &StoreConfig{
		Driver: "memory",
		// nothing listens here; the cache must degrade instead of failing
		Redis: &rediscache.Options{Addr: "127.0.0.1:1"},
	}})
	st, err = s.openStore(ctx)
	require.NoError(t, err)
	assert.IsType(t, &rediscache.Store{}, st)

	s = newTestSession(t, &Config{Store: &StoreConfig{Driver: "sqlite", DSN: t.TempDir() + "/cli.db", AutoMigrate: true}})
	st, err = s.openStore(ctx)
	require.NoError(t, err)
	require.NoError(t, st.SaveVacancy(ctx, &store.VacancyRecord{ID: "v1", Description: "Go"}))
	require.NoError(t, st.Close())
}
