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

// NewExtractCommand prints what would be sent for classification
func NewExtractCommand(build containerBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Print the open message without classifying it",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := build(false)
			if err != nil {
				return err
			}
			return container.Invoke(func(
				logger *zap.Logger,
				host ports.ExtractionHost,
				relay core.Relay,
				service *core.AnalysisService,
				printer *console.Printer,
			) error {
				return runExtract(cmd.Context(), logger, host, relay, service.Target(), printer)
			})
		},
	}
}

func runExtract(
	ctx context.Context,
	logger *zap.Logger,
	host ports.ExtractionHost,
	relay core.Relay,
	target string,
	printer *console.Printer,
) error {
	defer logger.Sync()

	if err := host.Start(); err != nil {
		return err
	}
	defer host.Stop()

	result, err := relay.RequestExtraction(ctx, target)
	if err == nil && !result.Succeeded() {
		err = &core.ExtractionError{Reason: result.Failure}
	}
	if err != nil {
		printer.PrintView(presenter.View{Status: presenter.ErrorMessage(err), IsError: true})
		return err
	}

	printer.PrintEmail(*result.Email)
	return nil
}
