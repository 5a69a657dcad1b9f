package factory

import (
	"github.com/mikey/phishawk/internal/config"
	"github.com/mikey/phishawk/internal/extractor"
	"github.com/mikey/phishawk/internal/ports"
	"github.com/mikey/phishawk/internal/relay"
	"github.com/mikey/phishawk/internal/utils"
	"go.uber.org/zap"
)

// RelayFactory creates the extractor and the extraction host that answers for a page
type RelayFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewRelayFactory creates a new relay factory
func NewRelayFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *RelayFactory {
	return &RelayFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateExtractor creates an extractor from the configured page markers.
// Blank markers fall back to the defaults.
func (f *RelayFactory) CreateExtractor() *extractor.Extractor {
	exCfg := f.cfg.GetExtractor()
	selectors := extractor.DefaultSelectors()

	if exCfg.SubjectSelector != "" {
		selectors.Subject = exCfg.SubjectSelector
	}
	if exCfg.SenderSelector != "" {
		selectors.Sender = exCfg.SenderSelector
	}
	if exCfg.SenderAddressAttr != "" {
		selectors.SenderAddress = exCfg.SenderAddressAttr
	}
	if exCfg.BodySelector != "" {
		selectors.Body = exCfg.BodySelector
	}

	return extractor.New(selectors, f.textProcessor, f.logger)
}

// CreateExtractionHost creates a host for the configured target, attached to broker
// once started
func (f *RelayFactory) CreateExtractionHost(
	broker *relay.Broker,
	source ports.DocumentSource,
	ex *extractor.Extractor,
) ports.ExtractionHost {
	relayCfg := f.cfg.GetRelay()
	return relay.NewHost(relayCfg.Target, broker, source, ex, relayCfg.AllowedHosts, f.logger)
}
