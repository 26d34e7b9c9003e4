package usecases

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"wellness_checkin/internal/models"
)

const defaultResponse = "Thanks for sharing how you feel."

var errEmptyReply = errors.New("empty reply from model")

// ParseAnalysisResponse decodes the model reply. The reply must be exactly
// one JSON object whose mood, response and suggestion are strings or null.
// A field of any other type fails the whole reply, even if the rest is
// usable. Missing or blank fields fall back to defaults. The mood label is
// trimmed and otherwise kept as the model wrote it.
func ParseAnalysisResponse(response string) (models.AnalysisResult, error) {
	text := strings.TrimSpace(response)
	if text == "" {
		return models.AnalysisResult{}, errEmptyReply
	}

	if !strings.HasPrefix(text, "{") {
		return models.AnalysisResult{}, errors.New("reply is not a JSON object")
	}

	var raw struct {
		Mood       *string `json:"mood"`
		Response   *string `json:"response"`
		Suggestion *string `json:"suggestion"`
	}

	dec := json.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(&raw); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("invalid JSON reply: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return models.AnalysisResult{}, errors.New("invalid JSON reply: trailing data after object")
	}

	return models.AnalysisResult{
		Mood:       normalizeMood(raw.Mood),
		Response:   valueOr(raw.Response, defaultResponse),
		Suggestion: valueOr(raw.Suggestion, ""),
	}, nil
}

func normalizeMood(mood *string) string {
	if mood == nil {
		return models.UnknownMood
	}
	m := strings.TrimSpace(*mood)
	if m == "" {
		return models.UnknownMood
	}
	return m
}

func valueOr(s *string, def string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return def
	}
	return strings.TrimSpace(*s)
}
