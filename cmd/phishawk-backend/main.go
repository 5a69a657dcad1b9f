package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/di"
	"github.com/mikey/phishawk/internal/ports"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	server ports.AnalysisServer,
	llmClient core.LLMClient,
) error {
	defer logger.Sync()

	if err := server.Start(); err != nil {
		logger.Error("Failed to start analysis server", zap.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigCh:
		logger.Info("Shutting down...", zap.String("signal", sig.String()))
		if err := server.Stop(); err != nil {
			logger.Error("Failed to stop analysis server", zap.Error(err))
		}
	case serveErr = <-server.Err():
		logger.Error("Analysis server stopped unexpectedly", zap.Error(serveErr))
	}

	if closer, ok := llmClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return serveErr
}
