package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spigell/hh-matcher/internal/metrics"
	"github.com/spigell/hh-matcher/internal/store"
	"go.uber.org/zap"
)

const (
	keyPrefix  = "hh-matcher:match:"
	defaultTTL = 24 * time.Hour
)

// Options describes the redis connection.
type Options struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Store caches match results in redis in front of a persistent store.
// Reads go through the cache, writes go to the backing store first and then
// refresh the cache. Redis failures never fail a call.
type Store struct {
	store.Store

	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewClient builds a redis client from opts.
func NewClient(opts Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// New wraps backing with a redis cache.
func New(backing store.Store, client *redis.Client, ttl time.Duration, m *metrics.Metrics, logger *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		Store:   backing,
		client:  client,
		ttl:     ttl,
		metrics: m,
		logger:  logger.With(zap.String("cache", "redis")),
	}
}

// Ping checks that redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// key quotes both ids so that separators inside them cannot collide.
func key(resumeID, vacancyID string) string {
	return keyPrefix + strconv.Quote(resumeID) + ":" + strconv.Quote(vacancyID)
}

func (s *Store) GetMatch(ctx context.Context, resumeID, vacancyID string) (*store.MatchResult, error) {
	k := key(resumeID, vacancyID)

	data, err := s.client.Get(ctx, k).Bytes()
	switch {
	case err == nil:
		var m store.MatchResult
		err := json.Unmarshal(data, &m)
		if err == nil && m.ResumeID == resumeID && m.VacancyID == vacancyID {
			s.metrics.CacheHit()
			return &m, nil
		}
		s.logger.Warn("dropping invalid cache entry", zap.String("key", k), zap.Error(err))
		s.client.Del(ctx, k)
	case errors.Is(err, redis.Nil):
	default:
		s.logger.Warn("cache read failed", zap.String("key", k), zap.Error(err))
	}

	s.metrics.CacheMiss()

	m, err := s.Store.GetMatch(ctx, resumeID, vacancyID)
	if err != nil {
		return nil, err
	}
	s.put(ctx, m)
	return m, nil
}

func (s *Store) UpsertMatch(ctx context.Context, m *store.MatchResult) error {
	if err := s.Store.UpsertMatch(ctx, m); err != nil {
		return err
	}
	s.put(ctx, m)
	return nil
}

func (s *Store) put(ctx context.Context, m *store.MatchResult) {
	data, err := json.Marshal(m)
	if err != nil {
		s.logger.Warn("encode cache entry", zap.Error(err))
		return
	}

	k := key(m.ResumeID, m.VacancyID)
	if err := s.client.Set(ctx, k, data, s.ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", k), zap.Error(err))
	}
}

func (s *Store) Close() error {
	return errors.Join(s.client.Close(), s.Store.Close())
}

var _ store.Store = (*Store)(nil)
