package resume

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/hh-matcher/internal/ai"
	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/models"
	"go.uber.org/zap"
)

//go:embed normalize.md
var promptTemplate string

// Normalizer turns a free-text resume into models.NormalizedResume with the
// help of a language model.
type Normalizer struct {
	completer ai.Completer
	logger    *zap.Logger
	maxLogLen int
}

func NewNormalizer(completer ai.Completer, log *zap.Logger, maxLogLength int) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = logger.DefaultMaxLogLength
	}
	return &Normalizer{
		completer: completer,
		logger:    logger.WithFields(log, zap.String(logger.FieldModel, completer.Model())),
		maxLogLen: maxLogLength,
	}
}

// Normalize extracts the structured resume from text. Unlike match analysis
// this is not fail-soft: an unusable reply is an error.
func (n *Normalizer) Normalize(ctx context.Context, text, email string) (*models.NormalizedResume, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("resume text is empty")
	}
	email = strings.TrimSpace(email)

	prompt := strings.NewReplacer(
		"{{EMAIL}}", strings.NewReplacer(`"`, "", "\n", " ").Replace(email),
		"{{RESUME}}", text,
	).Replace(promptTemplate)

	n.logger.Debug("normalize request", logger.PreviewFields("prompt", prompt, n.maxLogLen)...)

	raw, err := n.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("request normalization: %w", err)
	}

	n.logger.Debug("normalize response", logger.PreviewFields("response", raw, n.maxLogLen)...)

	var r models.NormalizedResume
	if err := ai.DecodeJSON(raw, &r); err != nil {
		n.logger.Warn("normalization reply is unusable", append(logger.PreviewFields("response", raw, n.maxLogLen), zap.Error(err))...)
		return nil, fmt.Errorf("parse normalized resume: %w", err)
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		r.Email = email
	}
	r.Phone = strings.TrimSpace(r.Phone)
	r.DesiredPosition = strings.TrimSpace(r.DesiredPosition)
	r.Fill()

	return &r, nil
}
