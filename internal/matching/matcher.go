package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/hh-matcher/internal/ai"
	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/metrics"
	"github.com/spigell/hh-matcher/internal/models"
	"github.com/spigell/hh-matcher/internal/skills"
	"github.com/spigell/hh-matcher/internal/terms"
	"go.uber.org/zap"
)

// Options tunes a Matcher. Zero values are valid.
type Options struct {
	Provider     string
	MaxLogLength int
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
}

// Matcher runs the analysis pipeline for one vacancy and resume pair:
// local skill extraction, set comparison, prompt, model call and parsing.
type Matcher struct {
	table     *terms.Table
	extractor *skills.Extractor
	prompts   *ai.PromptBuilder
	completer ai.Completer
	metrics   *metrics.Metrics
	logger    *zap.Logger
	maxLogLen int
}

func NewMatcher(table *terms.Table, prompts *ai.PromptBuilder, completer ai.Completer, opts Options) (*Matcher, error) {
	if table == nil {
		return nil, errors.New("term table is required")
	}
	if prompts == nil {
		return nil, errors.New("prompt builder is required")
	}
	if completer == nil {
		return nil, errors.New("completer is required")
	}

	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = logger.DefaultMaxLogLength
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Matcher{
		table:     table,
		extractor: skills.NewExtractor(table),
		prompts:   prompts,
		completer: completer,
		metrics:   opts.Metrics,
		logger:    logger.WithCommonFields(log, opts.Provider, completer.Model()),
		maxLogLen: maxLogLen,
	}, nil
}

// Match analyses a pair of free-text documents. A malformed model reply is not
// an error: the neutral analysis is returned instead. An error is returned only
// when the model could not be reached or ctx ended.
func (m *Matcher) Match(ctx context.Context, vacancyText, resumeText string) (*ai.MatchAnalysis, error) {
	matched, unmatched := m.localSkills(vacancyText, resumeText)
	prompt := m.prompts.BuildText(vacancyText, resumeText, matched, unmatched)
	return m.analyse(ctx, prompt, matched, unmatched)
}

// MatchStructured analyses structured documents. Local skills are extracted
// from the fields that describe qualifications.
func (m *Matcher) MatchStructured(ctx context.Context, vacancy *models.Vacancy, resume *models.NormalizedResume) (*ai.MatchAnalysis, error) {
	if vacancy == nil {
		return nil, errors.New("vacancy is required")
	}
	if resume == nil {
		return nil, errors.New("resume is required")
	}

	matched, unmatched := m.localSkills(vacancySkillText(vacancy), resumeSkillText(resume))

	prompt, err := m.prompts.BuildStructured(vacancy, resume, matched, unmatched)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}
	return m.analyse(ctx, prompt, matched, unmatched)
}

// Skills returns the canonical skills found in text. It does not call the model.
func (m *Matcher) Skills(text string) skills.SkillMap {
	return m.extractor.Extract(text)
}

func (m *Matcher) localSkills(vacancyText, resumeText string) ([]string, []string) {
	vacancySkills := m.extractor.Extract(vacancyText)
	resumeSkills := m.extractor.Extract(resumeText)

	cmp := skills.Compare(vacancySkills, resumeSkills)
	return skills.SurfaceForms(vacancySkills, cmp.Matched), skills.SurfaceForms(vacancySkills, cmp.Unmatched)
}

func (m *Matcher) analyse(ctx context.Context, prompt string, matched, unmatched []string) (*ai.MatchAnalysis, error) {
	m.logger.Debug("llm request", logger.PreviewFields("prompt", prompt, m.maxLogLen)...)

	raw, err := m.completer.Complete(ctx, prompt)
	m.metrics.LLMCall(m.completer.Model(), err)
	if err != nil {
		return nil, fmt.Errorf("request analysis: %w", err)
	}

	m.logger.Debug("llm response", logger.PreviewFields("response", raw, m.maxLogLen)...)

	result := ai.ParseResponse(raw)
	if result.Fallback {
		m.metrics.ParseFallback()
		m.logger.Warn("model reply is unusable; using neutral analysis",
			append(logger.PreviewFields("response", raw, m.maxLogLen), zap.Error(result.Reason))...,
		)
	}

	analysis := result.Analysis
	analysis.MatchedSkills, analysis.UnmatchedSkills = m.merge(matched, unmatched, analysis.MatchedSkills, analysis.UnmatchedSkills)
	return &analysis, nil
}

// merge combines the locally computed skill lists with the ones reported by
// the model. Local lists win for every known term. Model skills that resolve
// to a dictionary key are dropped; free-form ones are appended once, and a
// skill the model reports on both sides counts as matched.
func (m *Matcher) merge(localMatched, localUnmatched, modelMatched, modelUnmatched []string) ([]string, []string) {
	seen := make(map[string]struct{})
	for _, s := range localMatched {
		seen[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range localUnmatched {
		seen[strings.ToLower(s)] = struct{}{}
	}

	extend := func(base, extra []string) []string {
		out := append([]string{}, base...)
		for _, s := range extra {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if _, known := m.table.Canonicalize(s); known {
				continue
			}
			k := strings.ToLower(s)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, s)
		}
		return out
	}

	matched := extend(localMatched, modelMatched)
	unmatched := extend(localUnmatched, modelUnmatched)
	return matched, unmatched
}

func vacancySkillText(v *models.Vacancy) string {
	parts := []string{v.Title, v.Description, v.Experience}
	parts = append(parts, v.Skills...)
	return joinNonEmpty(parts)
}

func resumeSkillText(r *models.NormalizedResume) string {
	parts := []string{r.DesiredPosition}
	parts = append(parts, r.Skills()...)
	for _, job := range r.WorkExperience {
		parts = append(parts, job.Achievements...)
	}
	for _, edu := range r.Education {
		parts = append(parts, edu.Direction, edu.Specialty)
	}
	return joinNonEmpty(parts)
}

func joinNonEmpty(parts []string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
