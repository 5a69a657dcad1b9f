package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mikey/phishawk/internal/core"
)

// AssessmentSystemPrompt is sent as the system message to chat-style models
const AssessmentSystemPrompt = "You are a phishing detection system. Respond only with JSON."

const assessmentPromptFormat = `You are a phishing detection system. Analyze the following email and rate how likely it is to be a phishing attempt.
Respond with a JSON object containing:
- score: number between 0 and 10 (0 means certainly legitimate, 10 means certainly phishing)
- label: string, either "phishing" or "legitimate"
- explanation: string (brief explanation of your rating)

Email:
From: %s
Subject: %s
Body:
%s

Respond only with the JSON object and nothing else.`

// assessmentResponse is the JSON shape models are asked to produce
type assessmentResponse struct {
	Score       float64 `json:"score"`
	Label       string  `json:"label"`
	Explanation string  `json:"explanation"`
}

// BuildAssessmentPrompt formats the user prompt for an email, truncating the body to maxBodySize
func (tp *TextProcessor) BuildAssessmentPrompt(email *core.ExtractedEmail, maxBodySize int) string {
	body := tp.ProcessText(email.Body, maxBodySize)
	return fmt.Sprintf(assessmentPromptFormat, email.Sender, email.Subject, body)
}

// ParseAssessment decodes a model reply, tolerating prose around the JSON object
func ParseAssessment(responseText string, modelUsed string) (*core.ModelAssessment, error) {
	var resp assessmentResponse
	if err := json.Unmarshal([]byte(responseText), &resp); err != nil {
		start := strings.Index(responseText, "{")
		end := strings.LastIndex(responseText, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("failed to extract JSON from LLM response: %w", err)
		}
		if err := json.Unmarshal([]byte(responseText[start:end+1]), &resp); err != nil {
			return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
		}
	}

	if math.IsNaN(resp.Score) {
		return nil, fmt.Errorf("LLM returned a non-numeric score")
	}
	score := math.Max(0, math.Min(10, resp.Score))

	label := strings.ToLower(strings.TrimSpace(resp.Label))
	if label == "" {
		label = "legitimate"
		if score > 5 {
			label = "phishing"
		}
	}

	return &core.ModelAssessment{
		ModelScore:  score,
		Label:       label,
		Explanation: resp.Explanation,
		ModelUsed:   modelUsed,
		AnalyzedAt:  time.Now(),
	}, nil
}
