package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spigell/hh-matcher/internal/ai"
	"github.com/spigell/hh-matcher/internal/metrics"
	"github.com/spigell/hh-matcher/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type countingStore struct {
	store.Store
	gets int
}

func (c *countingStore) GetMatch(ctx context.Context, resumeID, vacancyID string) (*store.MatchResult, error) {
	c.gets++
	return c.Store.GetMatch(ctx, resumeID, vacancyID)
}

func newCache(t *testing.T) (*Store, *countingStore, *miniredis.Miniredis, *metrics.Metrics) {
	t.Helper()

	mr := miniredis.RunT(t)
	backing := &countingStore{Store: store.NewMemory()}
	m := metrics.New(prometheus.NewRegistry())

	s := New(backing, NewClient(Options{Addr: mr.Addr()}), time.Hour, m, zaptest.NewLogger(t))
	return s, backing, mr, m
}

func TestUpsertPopulatesCache(t *testing.T) {
	ctx := context.Background()
	s, backing, mr, m := newCache(t)

	require.NoError(t, s.UpsertMatch(ctx, &store.MatchResult{ResumeID: "r1", VacancyID: "v1", MatchAnalysis: ai.MatchAnalysis{
		Score: 0.7, Verdict: "good", MatchedSkills: []string{"Go"},
	}}))

	assert.True(t, mr.Exists(key("r1", "v1")))
	assert.Equal(t, time.Hour, mr.TTL(key("r1", "v1")))

	got, err := s.GetMatch(ctx, "r1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 0.7, got.Score)
	assert.Equal(t, []string{"Go"}, got.MatchedSkills)

	assert.Equal(t, 0, backing.gets)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("hit")))
}

func TestMissReadsThrough(t *testing.T) {
	ctx := context.Background()
	s, backing, mr, m := newCache(t)

	require.NoError(t, backing.UpsertMatch(ctx, &store.MatchResult{ResumeID: "r1", VacancyID: "v1", MatchAnalysis: ai.MatchAnalysis{Score: 0.2}}))

	got, err := s.GetMatch(ctx, "r1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 0.2, got.Score)
	assert.Equal(t, 1, backing.gets)
	assert.True(t, mr.Exists(key("r1", "v1")))

	_, err = s.GetMatch(ctx, "r1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 1, backing.gets)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("hit")))
}

func TestNotFoundIsNotCached(t *testing.T) {
	s, _, mr, _ := newCache(t)

	_, err := s.GetMatch(context.Background(), "r1", "v1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.False(t, mr.Exists(key("r1", "v1")))
}

func TestCorruptEntryIsDropped(t *testing.T) {
	ctx := context.Background()
	s, backing, mr, _ := newCache(t)

	require.NoError(t, backing.UpsertMatch(ctx, &store.MatchResult{ResumeID: "r1", VacancyID: "v1", MatchAnalysis: ai.MatchAnalysis{Score: 0.4}}))
	require.NoError(t, mr.Set(key("r1", "v1"), "{not json"))

	got, err := s.GetMatch(ctx, "r1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 0.4, got.Score)
	assert.Equal(t, 1, backing.gets)
}

func TestRedisOutageFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	s, backing, mr, _ := newCache(t)

	require.NoError(t, backing.UpsertMatch(ctx, &store.MatchResult{ResumeID: "r1", VacancyID: "v1", MatchAnalysis: ai.MatchAnalysis{Score: 0.9}}))
	mr.Close()

	got, err := s.GetMatch(ctx, "r1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 0.9, got.Score)

	require.NoError(t, s.UpsertMatch(ctx, &store.MatchResult{ResumeID: "r1", VacancyID: "v2"}))
	assert.Error(t, s.Ping(ctx))
}

func TestSeparatorsInIDsDoNotCollide(t *testing.T) {
	ctx := context.Background()
	s, backing, mr, _ := newCache(t)

	require.NoError(t, s.UpsertMatch(ctx, &store.MatchResult{ResumeID: "a:b", VacancyID: "c", MatchAnalysis: ai.MatchAnalysis{Verdict: "for a:b / c"}}))
	assert.True(t, mr.Exists(`hh-matcher:match:"a:b":"c"`))

	_, err := s.GetMatch(ctx, "a", "b:c")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, 1, backing.gets)
}

func TestEntryForAnotherPairIsDropped(t *testing.T) {
	ctx := context.Background()
	s, backing, mr, _ := newCache(t)

	require.NoError(t, backing.UpsertMatch(ctx, &store.MatchResult{ResumeID: "r1", VacancyID: "v1", MatchAnalysis: ai.MatchAnalysis{Score: 0.3}}))
	require.NoError(t, mr.Set(key("r1", "v1"), `{"resumeId":"r2","vacancyId":"v1","score":0.9}`))

	got, err := s.GetMatch(ctx, "r1", "v1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ResumeID)
	assert.Equal(t, 0.3, got.Score)
	assert.Equal(t, 1, backing.gets)
}
