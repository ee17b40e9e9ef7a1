package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver
	"github.com/spigell/hh-matcher/internal/models"
	"github.com/spigell/hh-matcher/internal/store"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Options controls connectivity and pool behaviour.
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// Store implements store.Store on top of database/sql for Postgres and SQLite.
type Store struct {
	db      *sql.DB
	dialect dialect
	logger  *zap.Logger
	now     func() time.Time
}

var openDB = sql.Open

// Open connects to the database described by opts and verifies connectivity.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (*Store, error) {
	d, err := dialectByName(opts.Driver)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(opts.DSN) == "" {
		return nil, errors.New("store dsn is empty")
	}

	db, err := openDB(d.driverName, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	applyOptions(db, d, opts)

	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return New(db, d.name, logger)
}

// New wraps an already opened database.
func New(db *sql.DB, driverName string, logger *zap.Logger) (*Store, error) {
	d, err := dialectByName(driverName)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		db:      db,
		dialect: d,
		logger:  logger.With(zap.String("store", d.name)),
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

func applyOptions(db *sql.DB, d dialect, opts Options) {
	if d.name == sqlite.name {
		// single writer
		db.SetMaxOpenConns(1)
		return
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
}

const matchColumns = `id, resume_id, vacancy_id, matched_skills, unmatched_skills, comment, score,
	positives, negatives, verdict, clarifying_questions, created_at`

func (s *Store) GetMatch(ctx context.Context, resumeID, vacancyID string) (*store.MatchResult, error) {
	query := s.dialect.rebind(`SELECT ` + matchColumns + ` FROM match_results WHERE resume_id = ? AND vacancy_id = ?`)

	m, err := scanMatch(s.db.QueryRowContext(ctx, query, resumeID, vacancyID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	return m, nil
}

func (s *Store) UpsertMatch(ctx context.Context, m *store.MatchResult) error {
	const query = `
INSERT INTO match_results (
	id, resume_id, vacancy_id, matched_skills, unmatched_skills, comment, score,
	positives, negatives, verdict, clarifying_questions, created_at
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (resume_id, vacancy_id) DO UPDATE SET
	matched_skills = excluded.matched_skills,
	unmatched_skills = excluded.unmatched_skills,
	comment = excluded.comment,
	score = excluded.score,
	positives = excluded.positives,
	negatives = excluded.negatives,
	verdict = excluded.verdict,
	clarifying_questions = excluded.clarifying_questions,
	created_at = excluded.created_at
RETURNING id, created_at`

	id := m.ID
	if id == "" {
		id = store.NewID()
	}

	var created scanTime
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(query),
		id,
		m.ResumeID,
		m.VacancyID,
		jsonList(m.MatchedSkills),
		jsonList(m.UnmatchedSkills),
		m.Comment,
		m.Score,
		jsonList(m.Positives),
		jsonList(m.Negatives),
		m.Verdict,
		jsonList(m.ClarifyingQuestions),
		s.dialect.timeArg(s.now()),
	).Scan(&m.ID, &created)
	if err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}

	m.CreatedAt = created.Time
	s.logger.Debug("match upserted", zap.String("id", m.ID), zap.String("resume_id", m.ResumeID), zap.String("vacancy_id", m.VacancyID))
	return nil
}

func (s *Store) ListMatchesByResume(ctx context.Context, resumeID string) ([]*store.MatchResult, error) {
	return s.listMatches(ctx, "resume_id", resumeID)
}

func (s *Store) ListMatchesByVacancy(ctx context.Context, vacancyID string) ([]*store.MatchResult, error) {
	return s.listMatches(ctx, "vacancy_id", vacancyID)
}

func (s *Store) listMatches(ctx context.Context, column, value string) ([]*store.MatchResult, error) {
	query := s.dialect.rebind(`SELECT ` + matchColumns + ` FROM match_results WHERE ` + column + ` = ? ORDER BY created_at DESC, id ASC`)

	rows, err := s.db.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	out := []*store.MatchResult{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*store.MatchResult, error) {
	var (
		m       store.MatchResult
		created scanTime
		matched, unmatched, positives, negatives, questions jsonList
	)

	err := row.Scan(
		&m.ID,
		&m.ResumeID,
		&m.VacancyID,
		&matched,
		&unmatched,
		&m.Comment,
		&m.Score,
		&positives,
		&negatives,
		&m.Verdict,
		&questions,
		&created,
	)
	if err != nil {
		return nil, err
	}

	m.MatchedSkills = matched
	m.UnmatchedSkills = unmatched
	m.Positives = positives
	m.Negatives = negatives
	m.ClarifyingQuestions = questions
	m.CreatedAt = created.Time
	return &m, nil
}

func (s *Store) SaveResume(ctx context.Context, r *store.ResumeRecord) error {
	const query = `
INSERT INTO resumes (id, email, raw_text, normalized, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	email = excluded.email,
	raw_text = excluded.raw_text,
	normalized = excluded.normalized
RETURNING id, created_at`

	if r.ID == "" {
		r.ID = store.NewID()
	}

	normalized, err := marshalNormalized(r.Normalized)
	if err != nil {
		return err
	}

	var created scanTime
	if err := s.db.QueryRowContext(ctx, s.dialect.rebind(query),
		r.ID, r.Email, r.RawText, normalized, s.dialect.timeArg(s.now()),
	).Scan(&r.ID, &created); err != nil {
		return fmt.Errorf("save resume: %w", err)
	}

	r.CreatedAt = created.Time
	return nil
}

func (s *Store) GetResume(ctx context.Context, id string) (*store.ResumeRecord, error) {
	query := s.dialect.rebind(`SELECT id, email, raw_text, normalized, created_at FROM resumes WHERE id = ?`)

	var (
		r          store.ResumeRecord
		normalized []byte
		created    scanTime
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Email, &r.RawText, &normalized, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get resume: %w", err)
	}

	if len(normalized) > 0 {
		var nr models.NormalizedResume
		if err := json.Unmarshal(normalized, &nr); err != nil {
			return nil, fmt.Errorf("decode normalized resume: %w", err)
		}
		r.Normalized = &nr
	}
	r.CreatedAt = created.Time
	return &r, nil
}

func (s *Store) SaveVacancy(ctx context.Context, v *store.VacancyRecord) error {
	const query = `
INSERT INTO vacancies (id, title, company, description, url, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	company = excluded.company,
	description = excluded.description,
	url = excluded.url
RETURNING id, created_at`

	if v.ID == "" {
		v.ID = store.NewID()
	}

	var created scanTime
	if err := s.db.QueryRowContext(ctx, s.dialect.rebind(query),
		v.ID, v.Title, v.Company, v.Description, v.URL, s.dialect.timeArg(s.now()),
	).Scan(&v.ID, &created); err != nil {
		return fmt.Errorf("save vacancy: %w", err)
	}

	v.CreatedAt = created.Time
	return nil
}

func (s *Store) GetVacancy(ctx context.Context, id string) (*store.VacancyRecord, error) {
	query := s.dialect.rebind(`SELECT id, title, company, description, url, created_at FROM vacancies WHERE id = ?`)

	var (
		v       store.VacancyRecord
		created scanTime
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Title, &v.Company, &v.Description, &v.URL, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vacancy: %w", err)
	}

	v.CreatedAt = created.Time
	return &v, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// jsonList stores a string list as a JSON array column.
type jsonList []string

func (l jsonList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *jsonList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = jsonList{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported list type %T", src)
	}

	items := []string{}
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("decode list: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	*l = items
	return nil
}

func marshalNormalized(r *models.NormalizedResume) (any, error) {
	if r == nil {
		return nil, nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode normalized resume: %w", err)
	}
	return string(data), nil
}

var _ store.Store = (*Store)(nil)
