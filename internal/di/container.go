package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/phishawk/internal/analyzer"
	"github.com/mikey/phishawk/internal/config"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/factory"
	"github.com/mikey/phishawk/internal/logging"
	"github.com/mikey/phishawk/internal/ports"
	"github.com/mikey/phishawk/internal/utils"
	"github.com/mikey/phishawk/internal/whitelist"
)

// BuildContainer creates and configures a dependency injection container for the
// analysis backend
func BuildContainer() (*dig.Container, error) {
	return buildBackend(config.New)
}

func buildBackend(newConfig func() (*config.Config, error)) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(newConfig); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewServerFactory); err != nil {
		return nil, err
	}

	// Register LLM client, nil when no provider is configured
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return nil, err
	}

	// Register whitelist checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *whitelist.Checker {
		domains := cfg.GetAnalyzer().WhitelistedDomains
		if len(domains) > 0 {
			logger.Info("Loaded whitelisted domains", zap.Strings("domains", domains))
		}
		return whitelist.NewChecker(domains, logger)
	}); err != nil {
		return nil, err
	}

	// Register analyzer
	if err := container.Provide(func(
		llmClient core.LLMClient,
		checker *whitelist.Checker,
		cfg *config.Config,
		logger *zap.Logger,
	) core.EmailAnalyzer {
		return analyzer.New(llmClient, checker, cfg.GetAnalyzer().MLTriggerThreshold, logger)
	}); err != nil {
		return nil, err
	}

	// Register analysis server
	if err := container.Provide(func(f *factory.ServerFactory) (ports.AnalysisServer, error) {
		return f.CreateAnalysisServer()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
