package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/spigell/hh-matcher/internal/ai"
	"github.com/spigell/hh-matcher/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// MatchResult is a persisted analysis of one resume and vacancy pair.
// At most one row exists per pair.
type MatchResult struct {
	ID        string `json:"id"`
	ResumeID  string `json:"resumeId"`
	VacancyID string `json:"vacancyId"`
	ai.MatchAnalysis
	CreatedAt time.Time `json:"createdAt"`
}

// ResumeRecord is a stored resume.
type ResumeRecord struct {
	ID         string                   `json:"id"`
	Email      string                   `json:"email"`
	RawText    string                   `json:"rawText"`
	Normalized *models.NormalizedResume `json:"normalized,omitempty"`
	CreatedAt  time.Time                `json:"createdAt"`
}

// VacancyRecord is a stored vacancy.
type VacancyRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Model converts the record to the structured vacancy shape.
func (v *VacancyRecord) Model() *models.Vacancy {
	return &models.Vacancy{
		ID:          v.ID,
		Title:       v.Title,
		Company:     v.Company,
		Description: v.Description,
		URL:         v.URL,
		Skills:      []string{},
	}
}

// Store persists resumes, vacancies and match results.
//
// UpsertMatch overwrites every analysis field of an existing row for the same
// pair. The row keeps the ID of its first insert and gets a fresh CreatedAt;
// both are written back into the argument.
type Store interface {
	GetMatch(ctx context.Context, resumeID, vacancyID string) (*MatchResult, error)
	UpsertMatch(ctx context.Context, m *MatchResult) error
	ListMatchesByResume(ctx context.Context, resumeID string) ([]*MatchResult, error)
	ListMatchesByVacancy(ctx context.Context, vacancyID string) ([]*MatchResult, error)

	SaveResume(ctx context.Context, r *ResumeRecord) error
	GetResume(ctx context.Context, id string) (*ResumeRecord, error)
	SaveVacancy(ctx context.Context, v *VacancyRecord) error
	GetVacancy(ctx context.Context, id string) (*VacancyRecord, error)

	Close() error
}

// NewID returns a random identifier for new records.
func NewID() string {
	return uuid.NewString()
}
