package core

import (
	"time"
)

// URLFinding is the outcome of the heuristic checks run against one link
type URLFinding struct {
	FullURL  string   `json:"full_url"`
	Domain   string   `json:"domain"`
	Path     string   `json:"path"`
	Scheme   string   `json:"scheme"`
	Points   int      `json:"points"`
	Triggers []string `json:"triggers"`
}

// ModelAssessment represents the result of an LLM phishing assessment
type ModelAssessment struct {
	// ModelScore is the phishing likelihood on a 0-10 scale
	ModelScore  float64   `json:"model_score"`
	Label       string    `json:"label"`
	Explanation string    `json:"explanation"`
	ModelUsed   string    `json:"model_used"`
	AnalyzedAt  time.Time `json:"analyzed_at"`
}

// AnalysisReport is what the classification backend returns for one email
type AnalysisReport struct {
	Score       float64          `json:"score"`
	Verdict     string           `json:"verdict"`
	RiskLevel   RiskLevel        `json:"risk_level"`
	MLAnalysis  *ModelAssessment `json:"ml_analysis"`
	URLAnalysis []URLFinding     `json:"url_analysis"`
	Triggers    []string         `json:"triggers"`
}

// AnalysisEnvelope wraps a report the way the backend puts it on the wire
type AnalysisEnvelope struct {
	Status string          `json:"status"`
	Data   *AnalysisReport `json:"data"`
}
