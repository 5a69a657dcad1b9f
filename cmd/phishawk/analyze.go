package main

import (
	"context"

	"github.com/mikey/phishawk/internal/adapters/console"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/ports"
	"github.com/mikey/phishawk/internal/presenter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewAnalyzeCommand runs one analysis and prints the result
func NewAnalyzeCommand(build containerBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the open message once and print the verdict",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := build(false)
			if err != nil {
				return err
			}
			return container.Invoke(func(
				logger *zap.Logger,
				host ports.ExtractionHost,
				service *core.AnalysisService,
				p *presenter.Presenter,
				printer *console.Printer,
			) error {
				return runAnalyze(cmd.Context(), logger, host, service, p, printer)
			})
		},
	}
}

func runAnalyze(
	ctx context.Context,
	logger *zap.Logger,
	host ports.ExtractionHost,
	service *core.AnalysisService,
	p *presenter.Presenter,
	printer *console.Printer,
) error {
	defer logger.Sync()

	if err := host.Start(); err != nil {
		return err
	}
	defer host.Stop()

	token := p.Begin()
	printer.PrintView(p.View())

	outcome := service.Run(ctx)
	p.Resolve(token, outcome)
	printer.PrintView(p.View())

	// The message is already on screen; the error only sets the exit status
	return outcome.Err
}
