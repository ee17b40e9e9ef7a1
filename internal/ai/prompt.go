package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "embed"

	"github.com/spigell/hh-matcher/internal/models"
)

//go:embed prompt.md
var promptTemplate string

const (
	maxUserInstructionRunes = 500
	noneValue               = "none"
)

// PromptOptions carries user preferences rendered into the prompt. They are
// advisory and sanitized so they cannot open a new prompt section.
type PromptOptions struct {
	ExtraCriteria    string `mapstructure:"extra-criteria"`
	UserInstructions string `mapstructure:"user-instructions"`
}

// PromptBuilder renders analysis prompts. It performs no I/O.
type PromptBuilder struct {
	template string
	opts     PromptOptions
}

func NewPromptBuilder(opts PromptOptions) *PromptBuilder {
	return &PromptBuilder{template: promptTemplate, opts: opts}
}

// BuildText renders the prompt for a pair of free-text documents.
func (b *PromptBuilder) BuildText(vacancyText, resumeText string, matched, unmatched []string) string {
	return b.render("plain text", strings.TrimSpace(vacancyText), strings.TrimSpace(resumeText), matched, unmatched)
}

// BuildStructured renders the prompt for structured documents serialized as JSON.
func (b *PromptBuilder) BuildStructured(vacancy *models.Vacancy, resume *models.NormalizedResume, matched, unmatched []string) (string, error) {
	if vacancy == nil {
		return "", errors.New("vacancy is required")
	}
	if resume == nil {
		return "", errors.New("resume is required")
	}

	vacancyJSON, err := json.MarshalIndent(vacancy, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal vacancy payload: %w", err)
	}

	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal resume payload: %w", err)
	}

	return b.render("JSON", string(vacancyJSON), string(resumeJSON), matched, unmatched), nil
}

func (b *PromptBuilder) render(format, vacancy, resume string, matched, unmatched []string) string {
	replacer := strings.NewReplacer(
		"{{EXTRA_CRITERIA}}", orNone(sanitizeSingleLine(b.opts.ExtraCriteria)),
		"{{USER_INSTRUCTIONS}}", renderUserInstructions(b.opts.UserInstructions),
		"{{INPUT_FORMAT}}", format,
		"{{VACANCY}}", vacancy,
		"{{RESUME}}", resume,
		"{{MATCHED_SKILLS}}", renderList(matched),
		"{{UNMATCHED_SKILLS}}", renderList(unmatched),
	)
	return replacer.Replace(b.template)
}

func renderList(items []string) string {
	if len(items) == 0 {
		return noneValue
	}
	return strings.Join(items, ", ")
}

func orNone(s string) string {
	if s == "" {
		return noneValue
	}
	return s
}

// sanitizeSingleLine collapses whitespace and neutralizes brackets.
func sanitizeSingleLine(s string) string {
	s = neutralizeBrackets(s)
	return strings.Join(strings.Fields(s), " ")
}

func neutralizeBrackets(s string) string {
	return strings.NewReplacer("[", "(", "]", ")").Replace(s)
}

// renderUserInstructions renders free-form instructions as an indented list,
// one item per non-empty line, truncated to maxUserInstructionRunes.
func renderUserInstructions(s string) string {
	var lines []string
	budget := maxUserInstructionRunes

	for _, line := range strings.Split(s, "\n") {
		line = sanitizeSingleLine(line)
		if line == "" {
			continue
		}
		if budget <= 0 {
			break
		}

		runes := []rune(line)
		if len(runes) > budget {
			line = string(runes[:budget])
		}
		budget -= len([]rune(line))

		lines = append(lines, "  - "+line)
	}

	if len(lines) == 0 {
		return "  - " + noneValue
	}
	return strings.Join(lines, "\n")
}
