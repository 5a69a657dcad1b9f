// Package presenter folds analysis outcomes into panel state and the render
// model the panels draw from.
package presenter

import (
	"sync"

	"github.com/google/uuid"
	"github.com/mikey/phishawk/internal/core"
	"go.uber.org/zap"
)

// Mode is the panel state
type Mode int

const (
	Idle Mode = iota
	Analyzing
	ShowingResult
	ShowingError
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Analyzing:
		return "analyzing"
	case ShowingResult:
		return "showing_result"
	case ShowingError:
		return "showing_error"
	default:
		return "unknown"
	}
}

// State is a snapshot of the panel. Verdict and Subject are set only in
// ShowingResult, Message only in ShowingError.
type State struct {
	Mode    Mode
	Verdict *core.NormalizedVerdict
	Subject string
	Message string
}

// Presenter owns the panel state. It is created Idle and dropped when the
// panel closes; all transitions go through its methods.
type Presenter struct {
	mu     sync.Mutex
	state  State
	token  string
	logger *zap.Logger
}

// New creates a presenter in the Idle state
func New(logger *zap.Logger) *Presenter {
	return &Presenter{
		state:  State{Mode: Idle},
		logger: logger,
	}
}

// Begin starts a new attempt and returns its request token. Any earlier
// attempt still in flight is superseded.
func (p *Presenter) Begin() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.Mode == Analyzing {
		p.logger.Debug("Superseding analysis in flight", zap.String("token", p.token))
	}

	p.token = uuid.NewString()
	p.state = State{Mode: Analyzing}
	p.logger.Debug("Analysis started", zap.String("token", p.token))
	return p.token
}

// Resolve applies the outcome of the attempt identified by token. Outcomes for
// any token but the current one are dropped, and false is returned.
func (p *Presenter) Resolve(token string, outcome core.AnalysisOutcome) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.Mode != Analyzing || token != p.token {
		p.logger.Info("Dropping stale analysis outcome",
			zap.String("token", token),
			zap.String("current_token", p.token),
			zap.Stringer("mode", p.state.Mode))
		return false
	}

	if outcome.Err == nil && outcome.Verdict != nil {
		verdict := *outcome.Verdict
		p.state = State{Mode: ShowingResult, Verdict: &verdict, Subject: outcome.Subject}
		return true
	}

	p.state = State{Mode: ShowingError, Message: ErrorMessage(outcome.Err)}
	p.logger.Debug("Analysis failed",
		zap.String("token", token),
		zap.String("message", p.state.Message),
		zap.Error(outcome.Err))
	return true
}

// Dismiss leaves the result view. It only applies in ShowingResult; an error
// stays on screen until the next Begin.
func (p *Presenter) Dismiss() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.Mode != ShowingResult {
		return false
	}
	p.state = State{Mode: Idle}
	p.token = ""
	return true
}

// State returns a copy of the current state
func (p *Presenter) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.state
	if s.Verdict != nil {
		v := *s.Verdict
		v.Triggers = append([]string(nil), v.Triggers...)
		s.Verdict = &v
	}
	return s
}

// View renders the current state
func (p *Presenter) View() View {
	return Render(p.State())
}
