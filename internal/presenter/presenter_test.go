package presenter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mikey/phishawk/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func success(subject string, v core.NormalizedVerdict) core.AnalysisOutcome {
	return core.AnalysisOutcome{Subject: subject, Verdict: &v}
}

func failure(err error) core.AnalysisOutcome {
	return core.AnalysisOutcome{Err: err}
}

func TestPresenter_StartsIdle(t *testing.T) {
	p := New(zap.NewNop())

	assert.Equal(t, Idle, p.State().Mode)
	assert.Equal(t, View{Mode: EntryView}, p.View())
}

func TestPresenter_SuccessfulAttempt(t *testing.T) {
	p := New(zap.NewNop())

	token := p.Begin()
	assert.Equal(t, Analyzing, p.State().Mode)
	assert.Equal(t, View{Mode: EntryView, Status: MsgAnalyzing, Loading: true}, p.View())

	applied := p.Resolve(token, success("Reset your password", core.NormalizedVerdict{
		Score: 88, Verdict: "PHISHING", RiskLevel: core.RiskHigh, Triggers: []string{"x"},
	}))

	require.True(t, applied)
	assert.Equal(t, ShowingResult, p.State().Mode)
	assert.Equal(t, View{
		Mode:        ResultView,
		Tier:        TierHigh,
		Banner:      "PHISHING",
		ScoreLine:   "Risk Score: 88/100",
		SubjectLine: "Reset your password",
		Triggers:    []string{"x"},
	}, p.View())
}

func TestPresenter_ErrorTransitions(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "list view", err: &core.ExtractionError{Reason: core.NotInMessageView}, want: MsgOpenAnEmail},
		{name: "no content", err: &core.ExtractionError{Reason: core.NoContentFound}, want: MsgNoContent},
		{name: "no responder", err: &core.TransportError{Kind: core.NoResponder}, want: MsgNoResponder},
		{name: "empty response", err: &core.TransportError{Kind: core.EmptyResponse}, want: MsgEmptyResponse},
		{name: "server error", err: &core.ClassifierError{Kind: core.ServerError, Status: "502 Bad Gateway"}, want: MsgBackendDown},
		{name: "unreachable", err: &core.ClassifierError{Kind: core.Unreachable}, want: MsgBackendDown},
		{name: "malformed", err: &core.ClassifierError{Kind: core.MalformedPayload}, want: MsgBackendDown},
		{name: "timeout", err: &core.ClassifierError{Kind: core.Timeout}, want: MsgBackendDown},
		{name: "wrapped classifier error", err: fmt.Errorf("attempt: %w", &core.ClassifierError{Kind: core.Unreachable}), want: MsgBackendDown},
		{name: "anything else", err: errors.New("context canceled"), want: MsgUnexpected},
		{name: "nil outcome", err: nil, want: MsgUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(zap.NewNop())
			token := p.Begin()

			p.Resolve(token, failure(tt.err))

			state := p.State()
			assert.Equal(t, ShowingError, state.Mode)
			assert.Equal(t, tt.want, state.Message)
			assert.Nil(t, state.Verdict)

			view := p.View()
			assert.Equal(t, EntryView, view.Mode)
			assert.True(t, view.IsError)
			assert.Equal(t, tt.want, view.Status)
		})
	}
}

func TestPresenter_ServerErrorNeverShowsResult(t *testing.T) {
	p := New(zap.NewNop())
	token := p.Begin()

	v := core.NormalizedVerdict{Score: 10, Verdict: "SAFE", RiskLevel: core.RiskLow}
	p.Resolve(token, core.AnalysisOutcome{
		Subject: "s",
		Verdict: &v,
		Err:     &core.ClassifierError{Kind: core.ServerError, Status: "500 Internal Server Error"},
	})

	assert.Equal(t, ShowingError, p.State().Mode)
	assert.Equal(t, MsgBackendDown, p.State().Message)
}

func TestPresenter_DismissClearsResult(t *testing.T) {
	p := New(zap.NewNop())
	token := p.Begin()
	p.Resolve(token, success("s", core.NormalizedVerdict{Score: 50, Verdict: "SUSPICIOUS", RiskLevel: core.RiskMedium, Triggers: []string{"a"}}))

	require.True(t, p.Dismiss())

	assert.Equal(t, State{Mode: Idle}, p.State())
	assert.Equal(t, View{Mode: EntryView}, p.View())

	p.Begin()
	view := p.View()
	assert.Empty(t, view.Banner)
	assert.Empty(t, view.ScoreLine)
	assert.Empty(t, view.Triggers)
}

func TestPresenter_ErrorIsTerminalUntilBegin(t *testing.T) {
	p := New(zap.NewNop())
	token := p.Begin()
	p.Resolve(token, failure(&core.TransportError{Kind: core.NoResponder}))

	assert.False(t, p.Dismiss())
	assert.Equal(t, ShowingError, p.State().Mode)

	retry := p.Begin()
	assert.NotEqual(t, token, retry)
	assert.Equal(t, Analyzing, p.State().Mode)
}

func TestPresenter_StaleOutcomeDropped(t *testing.T) {
	p := New(zap.NewNop())
	first := p.Begin()
	second := p.Begin()

	assert.False(t, p.Resolve(first, failure(&core.TransportError{Kind: core.NoResponder})))
	assert.Equal(t, Analyzing, p.State().Mode)

	assert.True(t, p.Resolve(second, success("s", core.NormalizedVerdict{Verdict: "SAFE", RiskLevel: core.RiskLow})))
	assert.Equal(t, ShowingResult, p.State().Mode)

	assert.False(t, p.Resolve(second, failure(errors.New("late duplicate"))))
	assert.Equal(t, ShowingResult, p.State().Mode)
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		name    string
		verdict core.NormalizedVerdict
		want    Tier
	}{
		{name: "high risk level", verdict: core.NormalizedVerdict{Verdict: "SAFE", RiskLevel: core.RiskHigh}, want: TierHigh},
		{name: "phishing verdict", verdict: core.NormalizedVerdict{Verdict: "PHISHING", RiskLevel: core.RiskLow}, want: TierHigh},
		{name: "medium risk level", verdict: core.NormalizedVerdict{Verdict: "SAFE", RiskLevel: core.RiskMedium}, want: TierMedium},
		{name: "suspicious verdict", verdict: core.NormalizedVerdict{Verdict: "SUSPICIOUS", RiskLevel: core.RiskUnknown}, want: TierMedium},
		{name: "phishing outranks medium", verdict: core.NormalizedVerdict{Verdict: "PHISHING", RiskLevel: core.RiskMedium}, want: TierHigh},
		{name: "unknown falls to low", verdict: core.NormalizedVerdict{Verdict: "UNKNOWN", RiskLevel: core.RiskUnknown}, want: TierLow},
		{name: "safe low", verdict: core.NormalizedVerdict{Verdict: "SAFE", RiskLevel: core.RiskLow}, want: TierLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierFor(tt.verdict))
		})
	}
}

func TestRender_ResultPlaceholders(t *testing.T) {
	view := Render(State{
		Mode:    ShowingResult,
		Verdict: &core.NormalizedVerdict{Score: 3, RiskLevel: core.RiskUnknown, Triggers: []string{}},
	})

	assert.Equal(t, []string{NoThreatsDetected}, view.Triggers)
	assert.Equal(t, UnknownSubject, view.SubjectLine)
	assert.Equal(t, "UNKNOWN", view.Banner)
	assert.Equal(t, "Risk Score: 3/100", view.ScoreLine)
	assert.Equal(t, TierLow, view.Tier)
}
