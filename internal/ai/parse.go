package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ErrNoJSON is reported when a reply contains no JSON object at all.
var ErrNoJSON = errors.New("no json object found in response")

var (
	fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	bareJSON   = regexp.MustCompile(`(?s)\{.*\}`)
)

// ExtractJSON locates the JSON object in a model reply. A fenced code block
// wins; otherwise the first '{' that starts a complete object is used. When no
// brace starts a valid object, the span from the first '{' to the last '}' is
// returned so that decoding reports what is wrong with it.
func ExtractJSON(raw string) (string, bool) {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	if obj, ok := firstObject(raw); ok {
		return obj, true
	}
	if m := bareJSON.FindString(raw); m != "" {
		return m, true
	}
	return "", false
}

func firstObject(raw string) (string, bool) {
	for i := strings.IndexByte(raw, '{'); i >= 0; {
		var obj json.RawMessage
		if err := json.NewDecoder(strings.NewReader(raw[i:])).Decode(&obj); err == nil {
			return string(obj), true
		}

		next := strings.IndexByte(raw[i+1:], '{')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return "", false
}

// DecodeJSON extracts the JSON object from raw and decodes it into out with
// weak typing, so "0.8" fills a float and a single string fills a list.
func DecodeJSON(raw string, out any) error {
	payload, ok := ExtractJSON(raw)
	if !ok {
		return ErrNoJSON
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		MatchName:        matchName,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("coerce fields: %w", err)
	}

	return nil
}

type rawAnalysis struct {
	MatchedSkills       []string `mapstructure:"matchedSkills"`
	UnmatchedSkills     []string `mapstructure:"unmatchedSkills"`
	Comment             *string  `mapstructure:"comment"`
	LLMComment          *string  `mapstructure:"llmComment"`
	Score               *float64 `mapstructure:"score"`
	Positives           []string `mapstructure:"positives"`
	Negatives           []string `mapstructure:"negatives"`
	Verdict             *string  `mapstructure:"verdict"`
	ClarifyingQuestions []string `mapstructure:"clarifyingQuestions"`
}

// ParseResponse turns a model reply into a MatchAnalysis. It never fails:
// any problem yields the neutral analysis with Fallback set.
func ParseResponse(raw string) ParseResult {
	var data rawAnalysis
	if err := DecodeJSON(raw, &data); err != nil {
		return fallback(err)
	}

	score := NeutralScore
	if data.Score != nil {
		normalized, err := normalizeScore(*data.Score)
		if err != nil {
			return fallback(err)
		}
		score = normalized
	}

	verdict := VerdictUndetermined
	if data.Verdict != nil && strings.TrimSpace(*data.Verdict) != "" {
		verdict = strings.TrimSpace(*data.Verdict)
	}

	var comment string
	switch {
	case data.Comment != nil:
		comment = strings.TrimSpace(*data.Comment)
	case data.LLMComment != nil:
		comment = strings.TrimSpace(*data.LLMComment)
	}

	return ParseResult{
		Analysis: MatchAnalysis{
			MatchedSkills:       cleanList(data.MatchedSkills),
			UnmatchedSkills:     cleanList(data.UnmatchedSkills),
			Comment:             comment,
			Score:               score,
			Positives:           cleanList(data.Positives),
			Negatives:           cleanList(data.Negatives),
			Verdict:             verdict,
			ClarifyingQuestions: cleanList(data.ClarifyingQuestions),
		},
	}
}

func fallback(reason error) ParseResult {
	return ParseResult{
		Analysis: Neutral(),
		Fallback: true,
		Reason:   reason,
	}
}

// normalizeScore accepts a score in [0,1] or a percentage in (1,100].
func normalizeScore(score float64) (float64, error) {
	switch {
	case math.IsNaN(score) || math.IsInf(score, 0):
		return 0, fmt.Errorf("score %v is not a number", score)
	case score >= 0 && score <= 1:
		return score, nil
	case score > 1 && score <= 100:
		return score / 100, nil
	default:
		return 0, fmt.Errorf("score %v is out of range", score)
	}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// matchName compares keys ignoring case and underscores, so snake_case
// replies fill camelCase fields.
func matchName(mapKey, fieldName string) bool {
	return strings.EqualFold(
		strings.ReplaceAll(mapKey, "_", ""),
		strings.ReplaceAll(fieldName, "_", ""),
	)
}
