package core

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AnalysisOutcome is the folded result of one pipeline run.
// Err is nil exactly when Verdict is set.
type AnalysisOutcome struct {
	Subject string
	Verdict *NormalizedVerdict
	Err     error
}

// AnalysisService drives one analysis attempt: relay, extraction, classification
type AnalysisService struct {
	relay      Relay
	classifier Classifier
	logger     *zap.Logger
	target     string
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	relay Relay,
	classifier Classifier,
	logger *zap.Logger,
	target string,
) *AnalysisService {
	return &AnalysisService{
		relay:      relay,
		classifier: classifier,
		logger:     logger,
		target:     target,
	}
}

// Target returns the relay target this service extracts from
func (s *AnalysisService) Target() string {
	return s.target
}

// Run executes the pipeline once. Every failure is returned inside the outcome,
// never as a panic, so the caller can fold it into UI state.
func (s *AnalysisService) Run(ctx context.Context) AnalysisOutcome {
	startTime := time.Now()

	extraction, err := s.relay.RequestExtraction(ctx, s.target)
	if err != nil {
		s.logger.Warn("Extraction relay failed",
			zap.String("target", s.target),
			zap.Error(err))
		return AnalysisOutcome{Err: err}
	}

	if !extraction.Succeeded() {
		s.logger.Info("Extraction returned no email",
			zap.String("target", s.target),
			zap.String("reason", string(extraction.Failure)))
		return AnalysisOutcome{Err: &ExtractionError{Reason: extraction.Failure}}
	}

	email := *extraction.Email
	s.logger.Debug("Extracted email",
		zap.String("subject", email.Subject),
		zap.String("sender", email.Sender),
		zap.Int("body_length", len(email.Body)),
		zap.String("url", email.SourceURL))

	verdict, err := s.classifier.Classify(ctx, email)
	if err != nil {
		s.logger.Error("Classification failed",
			zap.String("subject", email.Subject),
			zap.Error(err))
		return AnalysisOutcome{Subject: email.Subject, Err: err}
	}

	s.logger.Info("Email analyzed",
		zap.String("subject", email.Subject),
		zap.Int("score", verdict.Score),
		zap.String("verdict", verdict.Verdict),
		zap.String("risk_level", string(verdict.RiskLevel)),
		zap.Duration("elapsed", time.Since(startTime)))

	return AnalysisOutcome{Subject: email.Subject, Verdict: &verdict}
}
