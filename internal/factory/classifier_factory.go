package factory

import (
	"fmt"
	"net/url"

	"github.com/mikey/phishawk/internal/adapters/classifier"
	"github.com/mikey/phishawk/internal/config"
	"github.com/mikey/phishawk/internal/core"
	"go.uber.org/zap"
)

// ClassifierFactory creates classification clients
type ClassifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClassifier creates the HTTP client for the configured endpoint
func (f *ClassifierFactory) CreateClassifier() (core.Classifier, error) {
	classifierCfg, err := f.cfg.GetClassifier()
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(classifierCfg.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid classifier endpoint: %q", classifierCfg.Endpoint)
	}

	return classifier.NewHTTPClient(classifierCfg.Endpoint, classifierCfg.Timeout, nil, f.logger), nil
}
