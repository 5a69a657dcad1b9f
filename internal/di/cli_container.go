package di

import (
	"os"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/phishawk/internal/adapters/console"
	"github.com/mikey/phishawk/internal/config"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/extractor"
	"github.com/mikey/phishawk/internal/factory"
	"github.com/mikey/phishawk/internal/logging"
	"github.com/mikey/phishawk/internal/ports"
	"github.com/mikey/phishawk/internal/presenter"
	"github.com/mikey/phishawk/internal/relay"
	"github.com/mikey/phishawk/internal/utils"
)

// CLIFlags contains the command line flags for the panel CLI.
// Zero values leave the configured setting untouched.
type CLIFlags struct {
	ConfigFile string

	// Page flags
	Page     string
	URL      string
	Location string
	Target   string

	// Classifier flags
	Endpoint string
	Timeout  string

	// Output flags
	Verbose bool
	JSONLog bool
	LogFile string

	// Interactive is set when a full-screen panel owns the terminal
	Interactive bool
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(newCLILogger); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		cfg, err := config.NewWithFile(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		if used := cfg.GetViper().ConfigFileUsed(); used != "" {
			logger.Info("Loaded configuration from file", zap.String("file", used))
		}
		applyFlags(cfg, flags)
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewDocumentFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewRelayFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}

	// Register relay broker, also serving as the pipeline's relay
	if err := container.Provide(relay.NewBroker); err != nil {
		return nil, err
	}
	if err := container.Provide(func(b *relay.Broker) core.Relay { return b }); err != nil {
		return nil, err
	}

	// Register page source, extractor and the host that owns the page
	if err := container.Provide(func(f *factory.DocumentFactory) (ports.DocumentSource, error) {
		return f.CreateDocumentSource()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.RelayFactory) *extractor.Extractor {
		return f.CreateExtractor()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(
		f *factory.RelayFactory,
		broker *relay.Broker,
		source ports.DocumentSource,
		ex *extractor.Extractor,
	) ports.ExtractionHost {
		return f.CreateExtractionHost(broker, source, ex)
	}); err != nil {
		return nil, err
	}

	// Register classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register analysis service
	if err := container.Provide(func(
		r core.Relay,
		c core.Classifier,
		cfg *config.Config,
		logger *zap.Logger,
	) *core.AnalysisService {
		return core.NewAnalysisService(r, c, logger, cfg.GetRelay().Target)
	}); err != nil {
		return nil, err
	}

	// Register presenter and console output
	if err := container.Provide(presenter.New); err != nil {
		return nil, err
	}
	if err := container.Provide(func(flags *CLIFlags) *console.Printer {
		return console.NewPrinter(os.Stdout, flags.Verbose)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// newCLILogger builds the console logger. An interactive panel draws over the
// terminal, so without a log file its logs are discarded.
func newCLILogger(flags *CLIFlags) (*zap.Logger, error) {
	if flags.Interactive && flags.LogFile == "" {
		return zap.NewNop(), nil
	}
	return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog, flags.LogFile)
}

// applyFlags overrides configuration keys with the flags that were given
func applyFlags(cfg *config.Config, flags *CLIFlags) {
	if flags.Page != "" {
		cfg.Set("document.source", "file")
		cfg.Set("document.path", flags.Page)
	}
	if flags.URL != "" {
		cfg.Set("document.source", "http")
		cfg.Set("document.url", flags.URL)
	}
	if flags.Location != "" {
		cfg.Set("document.location", flags.Location)
	}
	if flags.Target != "" {
		cfg.Set("relay.target", flags.Target)
	}
	if flags.Endpoint != "" {
		cfg.Set("classifier.endpoint", flags.Endpoint)
	}
	if flags.Timeout != "" {
		cfg.Set("classifier.timeout", flags.Timeout)
	}
}
