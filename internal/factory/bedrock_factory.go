package factory

import (
	"context"

	"github.com/mikey/phishawk/internal/adapters/bedrock"
	"github.com/mikey/phishawk/internal/config"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/utils"
	"go.uber.org/zap"
)

// BedrockFactory creates Bedrock LLM clients
type BedrockFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewBedrockFactory creates a new Bedrock factory
func NewBedrockFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *BedrockFactory {
	return &BedrockFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateLLMClient creates a Bedrock LLM client using the default AWS credential chain
func (f *BedrockFactory) CreateLLMClient() (core.LLMClient, error) {
	bedrockCfg := f.cfg.GetBedrock()

	runtime, err := bedrock.NewRuntimeClient(context.Background(), bedrockCfg.Region)
	if err != nil {
		return nil, err
	}

	return bedrock.NewBedrockClient(
		runtime,
		bedrockCfg.ModelID,
		bedrockCfg.MaxTokens,
		bedrockCfg.Temperature,
		bedrockCfg.TopP,
		bedrockCfg.MaxBodySize,
		f.logger,
		f.textProcessor,
	), nil
}
