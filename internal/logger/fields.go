package logger

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the LLM provider name.
	FieldProvider = "llm_provider"
	// FieldModel is the structured log field key for the LLM model identifier.
	FieldModel = "llm_model"
	// FieldResumeID identifies the resume of a matched pair.
	FieldResumeID = "resume_id"
	// FieldVacancyID identifies the vacancy of a matched pair.
	FieldVacancyID = "vacancy_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the fields to the logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields describes the LLM provider and model. Empty values are dropped.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields attaches the provider and model fields to the logger.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// PairFields identifies a resume and vacancy pair. Empty ids are dropped.
func PairFields(resumeID, vacancyID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldResumeID, Value: resumeID},
		StringField{Key: FieldVacancyID, Value: vacancyID},
	)
}

// PreviewFields reports the rune length of text and a truncated preview of it
// under <name>_length and <name>_preview.
func PreviewFields(name, text string, limit int) []zap.Field {
	return []zap.Field{
		zap.Int(name+"_length", utf8.RuneCountInString(text)),
		zap.String(name+"_preview", TruncateForLog(text, limit)),
	}
}
