package ai

import "context"

// Completer sends a single prompt to a language model and returns its raw reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// VerdictUndetermined is used when the model gave no verdict or the reply
// could not be parsed.
const VerdictUndetermined = "undetermined"

// NeutralScore is reported when the model gave no usable score.
const NeutralScore = 0.5

// MatchAnalysis is the fit judgment for one vacancy and resume pair.
type MatchAnalysis struct {
	MatchedSkills       []string `json:"matchedSkills"`
	UnmatchedSkills     []string `json:"unmatchedSkills"`
	Comment             string   `json:"comment"`
	Score               float64  `json:"score"`
	Positives           []string `json:"positives"`
	Negatives           []string `json:"negatives"`
	Verdict             string   `json:"verdict"`
	ClarifyingQuestions []string `json:"clarifyingQuestions"`
}

// Neutral returns the low-information analysis used when a reply is unusable.
func Neutral() MatchAnalysis {
	return MatchAnalysis{
		MatchedSkills:       []string{},
		UnmatchedSkills:     []string{},
		Comment:             "",
		Score:               NeutralScore,
		Positives:           []string{},
		Negatives:           []string{},
		Verdict:             VerdictUndetermined,
		ClarifyingQuestions: []string{},
	}
}

// ParseResult is the outcome of reading a model reply. When Fallback is set,
// Analysis holds the neutral value and Reason explains what went wrong.
type ParseResult struct {
	Analysis MatchAnalysis
	Fallback bool
	Reason   error
}
