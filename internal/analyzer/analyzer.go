// Package analyzer scores an email for phishing risk from its links and an
// optional language model assessment.
package analyzer

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/whitelist"
	"go.uber.org/zap"
)

// Verdict thresholds on the 0-100 score
const (
	PhishingThreshold   = 70
	SuspiciousThreshold = 40
	// mlWeight scales a 0-10 model score into score points
	mlWeight = 5
)

// Analyzer produces AnalysisReports
type Analyzer struct {
	llm         core.LLMClient
	whitelist   *whitelist.Checker
	mlThreshold float64
	logger      *zap.Logger
}

// New creates a new analyzer. llm may be nil, in which case only the link
// heuristics contribute to the score.
func New(llm core.LLMClient, checker *whitelist.Checker, mlThreshold float64, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		llm:         llm,
		whitelist:   checker,
		mlThreshold: mlThreshold,
		logger:      logger,
	}
}

// Analyze scores one email
func (a *Analyzer) Analyze(ctx context.Context, email core.ExtractedEmail) (*core.AnalysisReport, error) {
	startTime := time.Now()

	findings := ExtractURLs(email.Body)
	score := 0.0
	triggers := []string{}
	seen := make(map[string]bool)
	for i := range findings {
		CheckURL(&findings[i])
		for _, trigger := range findings[i].Triggers {
			if seen[trigger] {
				continue
			}
			seen[trigger] = true
			triggers = append(triggers, trigger)
			score += float64(pointsFor(trigger))
		}
	}

	ml, err := a.assess(ctx, &email)
	if err != nil {
		return nil, err
	}
	if ml != nil && ml.ModelScore > a.mlThreshold {
		score += ml.ModelScore * mlWeight
		triggers = append(triggers, "ML Detected Phishing (Score: "+strconv.FormatFloat(ml.ModelScore, 'f', -1, 64)+")")
	}

	score = math.Min(score, 100)
	verdict, risk := Classify(score)

	a.logger.Info("Email scored",
		zap.String("subject", email.Subject),
		zap.Float64("score", score),
		zap.String("verdict", verdict),
		zap.Int("urls", len(findings)),
		zap.Duration("elapsed", time.Since(startTime)))

	return &core.AnalysisReport{
		Score:       score,
		Verdict:     verdict,
		RiskLevel:   risk,
		MLAnalysis:  ml,
		URLAnalysis: findings,
		Triggers:    triggers,
	}, nil
}

// Classify maps a score to a verdict and risk level
func Classify(score float64) (string, core.RiskLevel) {
	switch {
	case score >= PhishingThreshold:
		return core.VerdictPhishing, core.RiskHigh
	case score >= SuspiciousThreshold:
		return core.VerdictSuspicious, core.RiskMedium
	default:
		return core.VerdictSafe, core.RiskLow
	}
}

// assess runs the model stage. A model failure degrades to heuristics only;
// only a cancelled request is an error.
func (a *Analyzer) assess(ctx context.Context, email *core.ExtractedEmail) (*core.ModelAssessment, error) {
	if a.whitelist != nil && a.whitelist.IsWhitelisted(email.Sender) {
		a.logger.Debug("Skipping model assessment for whitelisted sender", zap.String("sender", email.Sender))
		return &core.ModelAssessment{
			ModelScore:  0,
			Label:       "whitelisted",
			Explanation: "Sender domain is whitelisted",
			ModelUsed:   "whitelist",
			AnalyzedAt:  time.Now(),
		}, nil
	}

	if a.llm == nil {
		return nil, nil
	}

	ml, err := a.llm.AssessEmail(ctx, email)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		a.logger.Warn("Model assessment failed, scoring on heuristics only", zap.Error(err))
		return nil, nil
	}
	return ml, nil
}

// pointsFor returns the points a trigger label is worth. Labels may carry a
// detail after a colon, as in "Suspicious TLD: .tk".
func pointsFor(label string) int {
	kind, _, _ := strings.Cut(label, ":")
	return triggerPoints[kind]
}
