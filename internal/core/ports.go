package core

import (
	"context"
)

// Relay defines the interface for reaching the extraction host of a page
type Relay interface {
	// RequestExtraction asks the host registered under target for the open email.
	// Transport failures are returned as *TransportError.
	RequestExtraction(ctx context.Context, target string) (ExtractionResult, error)
}

// Classifier defines the interface for the remote classification service
type Classifier interface {
	// Classify submits an extracted email and returns the normalized verdict.
	// Failures are returned as *ClassifierError.
	Classify(ctx context.Context, email ExtractedEmail) (NormalizedVerdict, error)
}

// LLMClient defines the interface for interacting with LLM services
type LLMClient interface {
	// AssessEmail rates how likely an email is to be phishing
	AssessEmail(ctx context.Context, email *ExtractedEmail) (*ModelAssessment, error)
}

// EmailAnalyzer defines the interface for the backend scoring engine
type EmailAnalyzer interface {
	// Analyze scores one email and explains the score
	Analyze(ctx context.Context, email ExtractedEmail) (*AnalysisReport, error)
}
