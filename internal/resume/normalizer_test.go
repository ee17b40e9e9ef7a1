package resume

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubCompleter struct {
	reply      string
	err        error
	lastPrompt string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.reply, s.err
}

func (s *stubCompleter) Model() string { return "stub-model" }

func TestNormalize(t *testing.T) {
	stub := &stubCompleter{reply: "Here you go:\n```json\n" + `{
  "name": " Ivan Petrov ",
  "email": "",
  "vacancy_name": "Go Developer",
  "languages": "Go",
  "frameworks": ["gin"],
  "work_experience": [
    {"company_name": "Acme", "start_date": "2020-01", "technologies": ["PostgreSQL", "Kafka"]}
  ]
}` + "\n```"}

	n := NewNormalizer(stub, zap.NewNop(), 0)

	r, err := n.Normalize(context.Background(), "Ivan Petrov, Go developer", "ivan@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Name != "Ivan Petrov" {
		t.Fatalf("unexpected name %q", r.Name)
	}
	if r.Email != "ivan@example.com" {
		t.Fatalf("expected email fallback, got %q", r.Email)
	}
	if r.DesiredPosition != "Go Developer" {
		t.Fatalf("unexpected desired position %q", r.DesiredPosition)
	}
	if len(r.Languages) != 1 || r.Languages[0] != "Go" {
		t.Fatalf("expected single language to become a list, got %v", r.Languages)
	}
	if r.Education == nil {
		t.Fatalf("expected empty education list")
	}
	if len(r.WorkExperience) != 1 || r.WorkExperience[0].CompanyName != "Acme" {
		t.Fatalf("unexpected work experience %+v", r.WorkExperience)
	}
	if r.WorkExperience[0].Achievements == nil {
		t.Fatalf("expected empty achievements list")
	}

	if !strings.Contains(stub.lastPrompt, `"email": "ivan@example.com"`) {
		t.Fatalf("expected email in prompt")
	}
	if !strings.Contains(stub.lastPrompt, "Ivan Petrov, Go developer") {
		t.Fatalf("expected resume text in prompt")
	}
}

func TestNormalizeKeepsEmailFromResume(t *testing.T) {
	stub := &stubCompleter{reply: `{"name": "A", "email": "other@example.com"}`}

	r, err := NewNormalizer(stub, nil, 0).Normalize(context.Background(), "text", "given@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Email != "other@example.com" {
		t.Fatalf("expected email from reply, got %q", r.Email)
	}
}

func TestNormalizeErrors(t *testing.T) {
	remoteErr := errors.New("bad gateway")

	cases := []struct {
		name string
		stub *stubCompleter
		text string
	}{
		{name: "empty text", stub: &stubCompleter{reply: `{}`}, text: "  "},
		{name: "remote failure", stub: &stubCompleter{err: remoteErr}, text: "resume"},
		{name: "prose reply", stub: &stubCompleter{reply: "I cannot do that"}, text: "resume"},
		{name: "broken json", stub: &stubCompleter{reply: `{"name": "A",}`}, text: "resume"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewNormalizer(tc.stub, nil, 0).Normalize(context.Background(), tc.text, "a@b.c")
			if err == nil {
				t.Fatalf("expected error, got %+v", r)
			}
			if tc.stub.err != nil && !errors.Is(err, remoteErr) {
				t.Fatalf("expected wrapped remote error, got %v", err)
			}
		})
	}
}
