package matching

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spigell/hh-matcher/internal/ai"
	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/metrics"
	"github.com/spigell/hh-matcher/internal/models"
	"github.com/spigell/hh-matcher/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Analyzer produces an analysis for a pair. *Matcher implements it.
type Analyzer interface {
	Match(ctx context.Context, vacancyText, resumeText string) (*ai.MatchAnalysis, error)
	MatchStructured(ctx context.Context, vacancy *models.Vacancy, resume *models.NormalizedResume) (*ai.MatchAnalysis, error)
}

// PairRequest identifies a pair and carries its texts.
type PairRequest struct {
	ResumeID    string
	VacancyID   string
	ResumeText  string
	VacancyText string
	// Force recomputes the analysis even when a stored one exists.
	Force bool
}

// Service computes and persists match results. Concurrent requests for the
// same pair share one computation.
type Service struct {
	analyzer Analyzer
	store    store.Store
	metrics  *metrics.Metrics
	logger   *zap.Logger
	flights  singleflight.Group
}

func NewService(analyzer Analyzer, st store.Store, m *metrics.Metrics, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		analyzer: analyzer,
		store:    st,
		metrics:  m,
		logger:   log,
	}
}

// MatchPair returns the stored result for the pair, computing and storing it
// when missing or when req.Force is set.
func (s *Service) MatchPair(ctx context.Context, req PairRequest) (*store.MatchResult, error) {
	if err := validatePair(req.ResumeID, req.VacancyID); err != nil {
		return nil, err
	}

	compute := func(ctx context.Context) (*ai.MatchAnalysis, error) {
		return s.analyzer.Match(ctx, req.VacancyText, req.ResumeText)
	}
	return s.resolve(ctx, req.ResumeID, req.VacancyID, req.Force, compute)
}

// MatchStored runs MatchPair for a resume and vacancy loaded from the store.
// A resume with a normalized form is matched in the structured shape.
func (s *Service) MatchStored(ctx context.Context, resumeID, vacancyID string, force bool) (*store.MatchResult, error) {
	if err := validatePair(resumeID, vacancyID); err != nil {
		return nil, err
	}

	compute := func(ctx context.Context) (*ai.MatchAnalysis, error) {
		resume, err := s.store.GetResume(ctx, resumeID)
		if err != nil {
			return nil, fmt.Errorf("load resume %s: %w", resumeID, err)
		}
		vacancy, err := s.store.GetVacancy(ctx, vacancyID)
		if err != nil {
			return nil, fmt.Errorf("load vacancy %s: %w", vacancyID, err)
		}

		if resume.Normalized != nil {
			return s.analyzer.MatchStructured(ctx, vacancy.Model(), resume.Normalized)
		}
		return s.analyzer.Match(ctx, vacancy.Description, resume.RawText)
	}
	return s.resolve(ctx, resumeID, vacancyID, force, compute)
}

func (s *Service) resolve(ctx context.Context, resumeID, vacancyID string, force bool, compute func(context.Context) (*ai.MatchAnalysis, error)) (*store.MatchResult, error) {
	log := logger.WithFields(s.logger, logger.PairFields(resumeID, vacancyID)...)

	if !force {
		existing, err := s.store.GetMatch(ctx, resumeID, vacancyID)
		if err == nil {
			log.Debug("stored match found")
			return existing, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("get match: %w", err)
		}
	}

	leader := false
	ch := s.flights.DoChan(flightKey(resumeID, vacancyID, force), func() (any, error) {
		leader = true
		// detached: a caller that gives up must not cancel the flight others share
		return s.compute(context.WithoutCancel(ctx), log, resumeID, vacancyID, force, compute)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared && !leader {
			s.metrics.SharedFlight()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*store.MatchResult), nil
	}
}

func (s *Service) compute(ctx context.Context, log *zap.Logger, resumeID, vacancyID string, force bool, compute func(context.Context) (*ai.MatchAnalysis, error)) (*store.MatchResult, error) {
	if !force {
		existing, err := s.store.GetMatch(ctx, resumeID, vacancyID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("get match: %w", err)
		}
	}

	start := time.Now()
	analysis, err := compute(ctx)
	if err != nil {
		log.Warn("match computation failed", zap.Error(err))
		return nil, err
	}
	s.metrics.ObserveMatch(time.Since(start))

	result := &store.MatchResult{
		ResumeID:      resumeID,
		VacancyID:     vacancyID,
		MatchAnalysis: *analysis,
	}
	if err := s.store.UpsertMatch(ctx, result); err != nil {
		return nil, fmt.Errorf("save match: %w", err)
	}

	log.Info("match stored",
		zap.String("match_id", result.ID),
		zap.Float64("score", result.Score),
		zap.String("verdict", result.Verdict),
		zap.Duration("took", time.Since(start)),
	)
	return result, nil
}

// flightKey is unambiguous for ids containing separators. Forced requests get
// their own flight so they never settle for a stored row.
func flightKey(resumeID, vacancyID string, force bool) string {
	key := strconv.Quote(resumeID) + "/" + strconv.Quote(vacancyID)
	if force {
		key += "/force"
	}
	return key
}

func validatePair(resumeID, vacancyID string) error {
	if strings.TrimSpace(resumeID) == "" {
		return errors.New("resume id is required")
	}
	if strings.TrimSpace(vacancyID) == "" {
		return errors.New("vacancy id is required")
	}
	return nil
}
