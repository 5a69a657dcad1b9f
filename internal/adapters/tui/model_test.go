package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/presenter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubRunner struct {
	outcome core.AnalysisOutcome
	runs    int
}

func (s *stubRunner) Run(ctx context.Context) core.AnalysisOutcome {
	s.runs++
	return s.outcome
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m tea.Model, k string) (tea.Model, tea.Cmd) {
	t.Helper()
	return m.Update(key(k))
}

func TestModel_AnalyzeThenBack(t *testing.T) {
	verdict := core.NormalizedVerdict{Score: 88, Verdict: "PHISHING", RiskLevel: core.RiskHigh, Triggers: []string{"IP Address URL"}}
	runner := &stubRunner{outcome: core.AnalysisOutcome{Subject: "Reset password", Verdict: &verdict}}
	p := presenter.New(zap.NewNop())
	var m tea.Model = NewModel(context.Background(), runner, p, zap.NewNop(), false)

	m, cmd := press(t, m, "a")
	require.NotNil(t, cmd)
	assert.Equal(t, presenter.Analyzing, p.State().Mode)
	assert.Contains(t, m.View(), presenter.MsgAnalyzing)

	m, _ = m.Update(cmd())
	assert.Equal(t, 1, runner.runs)
	assert.Equal(t, presenter.ShowingResult, p.State().Mode)
	view := m.View()
	assert.Contains(t, view, "PHISHING")
	assert.Contains(t, view, "Risk Score: 88/100")
	assert.Contains(t, view, "Reset password")
	assert.Contains(t, view, "1. IP Address URL")

	// analyze is not offered on the result view
	_, cmd = press(t, m, "a")
	assert.Nil(t, cmd)

	m, _ = press(t, m, "b")
	assert.Equal(t, presenter.Idle, p.State().Mode)
	assert.NotContains(t, m.View(), "Risk Score")
}

func TestModel_ErrorStaysUntilRetry(t *testing.T) {
	runner := &stubRunner{outcome: core.AnalysisOutcome{Err: &core.TransportError{Kind: core.NoResponder}}}
	p := presenter.New(zap.NewNop())
	var m tea.Model = NewModel(context.Background(), runner, p, zap.NewNop(), false)

	m, cmd := press(t, m, "a")
	m, _ = m.Update(cmd())
	assert.Contains(t, m.View(), presenter.MsgNoResponder)

	m, _ = press(t, m, "b")
	assert.Equal(t, presenter.ShowingError, p.State().Mode)

	_, cmd = press(t, m, "a")
	require.NotNil(t, cmd)
	assert.Equal(t, presenter.Analyzing, p.State().Mode)
}

func TestModel_StaleOutcomeIgnored(t *testing.T) {
	runner := &stubRunner{outcome: core.AnalysisOutcome{Err: &core.ClassifierError{Kind: core.Timeout}}}
	p := presenter.New(zap.NewNop())
	obsCore, logs := observer.New(zapcore.DebugLevel)
	var m tea.Model = NewModel(context.Background(), runner, p, zap.New(obsCore), false)

	m, first := press(t, m, "a")
	m, second := press(t, m, "a")

	m, _ = m.Update(first())
	assert.Equal(t, presenter.Analyzing, p.State().Mode)
	require.Equal(t, 1, logs.FilterMessage("Panel ignored outcome of superseded attempt").Len())

	m.Update(second())
	assert.Equal(t, presenter.ShowingError, p.State().Mode)
	assert.Equal(t, 1, logs.Len())
}

func TestModel_AutoStartAndQuit(t *testing.T) {
	runner := &stubRunner{outcome: core.AnalysisOutcome{Err: &core.ExtractionError{Reason: core.NotInMessageView}}}
	p := presenter.New(zap.NewNop())
	m := NewModel(context.Background(), runner, p, zap.NewNop(), true)

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, presenter.Analyzing, p.State().Mode)

	_, quit := press(t, m, "q")
	require.NotNil(t, quit)
	assert.Equal(t, tea.Quit(), quit())
}
