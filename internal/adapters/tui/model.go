// Package tui is the interactive terminal panel
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/presenter"
	"go.uber.org/zap"
)

// Runner runs one analysis attempt
type Runner interface {
	Run(ctx context.Context) core.AnalysisOutcome
}

// outcomeMsg carries a finished attempt back into the update loop
type outcomeMsg struct {
	token   string
	outcome core.AnalysisOutcome
}

// Model is the bubbletea model for the panel
type Model struct {
	ctx       context.Context
	runner    Runner
	presenter *presenter.Presenter
	logger    *zap.Logger
	autoStart bool
}

// NewModel creates a panel model. With autoStart the first analysis begins as
// soon as the panel opens.
func NewModel(ctx context.Context, runner Runner, p *presenter.Presenter, logger *zap.Logger, autoStart bool) Model {
	return Model{
		ctx:       ctx,
		runner:    runner,
		presenter: p,
		logger:    logger,
		autoStart: autoStart,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.autoStart {
		return m.begin()
	}
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case outcomeMsg:
		if !m.presenter.Resolve(msg.token, msg.outcome) {
			m.logger.Debug("Panel ignored outcome of superseded attempt", zap.String("token", msg.token))
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "a", "enter":
		if m.presenter.State().Mode == presenter.ShowingResult {
			return m, nil
		}
		return m, m.begin()
	case "b", "esc", "backspace":
		m.presenter.Dismiss()
	}
	return m, nil
}

// begin starts an attempt and returns the command that runs it
func (m Model) begin() tea.Cmd {
	token := m.presenter.Begin()
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		return outcomeMsg{token: token, outcome: runner.Run(ctx)}
	}
}

// View implements tea.Model
func (m Model) View() string {
	return Render(m.presenter.View())
}

// Render draws a render model as a terminal frame
func Render(v presenter.View) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("PhisHawk"))
	b.WriteString("\n\n")

	if v.Mode == presenter.ResultView {
		b.WriteString(bannerStyle(v.Tier).Render(v.Banner))
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render(v.ScoreLine))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Subject:"), v.SubjectLine)
		b.WriteString(labelStyle.Render("Triggers:"))
		b.WriteString("\n")
		for i, trigger := range v.Triggers {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, trigger)
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("[b] back  [q] quit"))
		return panelStyle.Render(b.String())
	}

	b.WriteString(helpStyle.Render("[a] analyze email  [q] quit"))
	switch {
	case v.Loading:
		b.WriteString("\n\n")
		b.WriteString(loadStyle.Render(v.Status))
	case v.IsError:
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(v.Status))
	}
	return panelStyle.Render(b.String())
}
