package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotAnObject is returned when a classification payload is not a JSON object
var ErrNotAnObject = errors.New("payload is not a JSON object")

// classificationPayload is the loosely-typed wire shape of a verdict
type classificationPayload struct {
	Score     json.RawMessage `json:"score"`
	Verdict   *string         `json:"verdict"`
	RiskLevel *string         `json:"risk_level"`
	Triggers  []*string       `json:"triggers"`
}

// NormalizeVerdict collapses both accepted response shapes (bare, or nested
// under "data") into a NormalizedVerdict. The nested key is probed first.
// This is the only place where the response schema is allowed to vary.
func NormalizeVerdict(raw []byte) (NormalizedVerdict, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return NormalizedVerdict{}, fmt.Errorf("failed to decode classification response: %w", err)
	}
	if envelope == nil {
		return NormalizedVerdict{}, ErrNotAnObject
	}

	body := raw
	if nested, ok := envelope["data"]; ok && isObject(nested) {
		body = nested
	}

	var payload classificationPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return NormalizedVerdict{}, fmt.Errorf("failed to decode classification payload: %w", err)
	}

	score, err := parseScore(payload.Score)
	if err != nil {
		return NormalizedVerdict{}, err
	}

	verdict := VerdictUnknown
	if payload.Verdict != nil && *payload.Verdict != "" {
		verdict = *payload.Verdict
	}

	riskLevel := RiskUnknown
	if payload.RiskLevel != nil {
		riskLevel = ParseRiskLevel(strings.ToUpper(strings.TrimSpace(*payload.RiskLevel)))
	}

	triggers := make([]string, 0, len(payload.Triggers))
	for _, t := range payload.Triggers {
		if t != nil && *t != "" {
			triggers = append(triggers, *t)
		}
	}

	return NormalizedVerdict{
		Score:     score,
		Verdict:   verdict,
		RiskLevel: riskLevel,
		Triggers:  triggers,
	}, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// parseScore accepts a JSON number or a numeric string, rounds it and clamps to 0-100.
// A missing or null score counts as 0.
func parseScore(raw json.RawMessage) (int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, nil
	}

	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		var s string
		if strErr := json.Unmarshal(trimmed, &s); strErr != nil {
			return 0, fmt.Errorf("score is not numeric: %w", err)
		}
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("score is not numeric: %w", err)
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("score is not finite: %v", f)
	}

	// Clamp before converting so out-of-range floats cannot overflow int
	f = math.Max(0, math.Min(100, f))
	return int(math.Round(f)), nil
}
