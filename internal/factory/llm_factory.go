package factory

import (
	"fmt"

	"github.com/mikey/phishawk/internal/config"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/utils"
	"go.uber.org/zap"
)

// ProviderNone disables the model stage; the backend scores on URL heuristics alone
const ProviderNone = "none"

// LLMFactory creates LLM clients
type LLMFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *LLMFactory {
	return &LLMFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateLLMClient creates a new LLM client based on the configuration.
// It returns a nil client when the provider is "none".
func (f *LLMFactory) CreateLLMClient() (core.LLMClient, error) {
	provider := f.cfg.GetLLM().Provider

	switch provider {
	case "", ProviderNone:
		f.logger.Info("No LLM provider configured, model stage disabled")
		return nil, nil
	case "bedrock":
		return NewBedrockFactory(f.cfg, f.logger, f.textProcessor).CreateLLMClient()
	case "gemini":
		return NewGeminiFactory(f.cfg, f.logger, f.textProcessor).CreateLLMClient()
	case "openai":
		return NewOpenAIFactory(f.cfg, f.logger, f.textProcessor).CreateLLMClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
