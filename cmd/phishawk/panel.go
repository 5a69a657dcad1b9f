package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mikey/phishawk/internal/adapters/tui"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/ports"
	"github.com/mikey/phishawk/internal/presenter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewPanelCommand opens the interactive panel
func NewPanelCommand(build containerBuilder) *cobra.Command {
	var autoStart bool

	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Open the interactive panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := build(true)
			if err != nil {
				return err
			}
			return container.Invoke(func(
				logger *zap.Logger,
				host ports.ExtractionHost,
				service *core.AnalysisService,
				p *presenter.Presenter,
			) error {
				return runPanel(cmd.Context(), logger, host, service, p, autoStart)
			})
		},
	}

	cmd.Flags().BoolVar(&autoStart, "auto", false, "Start analyzing as soon as the panel opens")
	return cmd
}

func runPanel(
	ctx context.Context,
	logger *zap.Logger,
	host ports.ExtractionHost,
	service *core.AnalysisService,
	p *presenter.Presenter,
	autoStart bool,
) error {
	defer logger.Sync()

	if err := host.Start(); err != nil {
		return err
	}
	defer host.Stop()

	model := tui.NewModel(ctx, service, p, logger, autoStart)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("panel exited: %w", err)
	}
	return nil
}
