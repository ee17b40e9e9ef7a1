package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

type pairKey struct {
	resumeID  string
	vacancyID string
}

// Memory keeps everything in process memory and is safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	matches   map[pairKey]MatchResult
	resumes   map[string]ResumeRecord
	vacancies map[string]VacancyRecord

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		matches:   make(map[pairKey]MatchResult),
		resumes:   make(map[string]ResumeRecord),
		vacancies: make(map[string]VacancyRecord),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Memory) GetMatch(ctx context.Context, resumeID, vacancyID string) (*MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[pairKey{resumeID, vacancyID}]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneMatch(m), nil
}

func (s *Memory) UpsertMatch(ctx context.Context, m *MatchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{m.ResumeID, m.VacancyID}
	if existing, ok := s.matches[key]; ok {
		m.ID = existing.ID
	} else if m.ID == "" {
		m.ID = NewID()
	}
	m.CreatedAt = s.now()

	s.matches[key] = *cloneMatch(*m)
	return nil
}

func (s *Memory) ListMatchesByResume(ctx context.Context, resumeID string) ([]*MatchResult, error) {
	return s.list(ctx, func(k pairKey) bool { return k.resumeID == resumeID })
}

func (s *Memory) ListMatchesByVacancy(ctx context.Context, vacancyID string) ([]*MatchResult, error) {
	return s.list(ctx, func(k pairKey) bool { return k.vacancyID == vacancyID })
}

func (s *Memory) list(ctx context.Context, keep func(pairKey) bool) ([]*MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*MatchResult{}
	for k, m := range s.matches {
		if keep(k) {
			out = append(out, cloneMatch(m))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *Memory) SaveResume(ctx context.Context, r *ResumeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = NewID()
	}
	if existing, ok := s.resumes[r.ID]; ok {
		r.CreatedAt = existing.CreatedAt
	} else {
		r.CreatedAt = s.now()
	}
	s.resumes[r.ID] = *r
	return nil
}

func (s *Memory) GetResume(ctx context.Context, id string) (*ResumeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resumes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *Memory) SaveVacancy(ctx context.Context, v *VacancyRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ID == "" {
		v.ID = NewID()
	}
	if existing, ok := s.vacancies[v.ID]; ok {
		v.CreatedAt = existing.CreatedAt
	} else {
		v.CreatedAt = s.now()
	}
	s.vacancies[v.ID] = *v
	return nil
}

func (s *Memory) GetVacancy(ctx context.Context, id string) (*VacancyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vacancies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &v, nil
}

func (s *Memory) Close() error {
	return nil
}

func cloneMatch(m MatchResult) *MatchResult {
	c := m
	c.MatchedSkills = append([]string{}, m.MatchedSkills...)
	c.UnmatchedSkills = append([]string{}, m.UnmatchedSkills...)
	c.Positives = append([]string{}, m.Positives...)
	c.Negatives = append([]string{}, m.Negatives...)
	c.ClarifyingQuestions = append([]string{}, m.ClarifyingQuestions...)
	return &c
}

func sortNewestFirst(items []*MatchResult) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

var _ Store = (*Memory)(nil)
