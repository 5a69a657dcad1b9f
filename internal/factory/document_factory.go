package factory

import (
	"fmt"
	"net/http"

	"github.com/mikey/phishawk/internal/adapters/document"
	"github.com/mikey/phishawk/internal/config"
	"github.com/mikey/phishawk/internal/ports"
	"go.uber.org/zap"
)

// DocumentFactory creates page sources based on configuration
type DocumentFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewDocumentFactory creates a new document factory
func NewDocumentFactory(cfg *config.Config, logger *zap.Logger) *DocumentFactory {
	return &DocumentFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateDocumentSource creates a page source based on the configuration
func (f *DocumentFactory) CreateDocumentSource() (ports.DocumentSource, error) {
	docCfg, err := f.cfg.GetDocument()
	if err != nil {
		return nil, err
	}

	switch docCfg.Source {
	case "file":
		f.logger.Debug("Using page snapshot",
			zap.String("path", docCfg.Path),
			zap.String("location", docCfg.Location))
		return document.NewFileSource(docCfg.Path, docCfg.Location, f.logger), nil
	case "http":
		f.logger.Debug("Using live page", zap.String("url", docCfg.URL))
		return document.NewHTTPSource(docCfg.URL, &http.Client{Timeout: docCfg.Timeout}, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported document source: %s", docCfg.Source)
	}
}
