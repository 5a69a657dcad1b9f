package factory

import (
	"fmt"

	"github.com/mikey/phishawk/internal/adapters/server"
	"github.com/mikey/phishawk/internal/config"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/ports"
	"go.uber.org/zap"
)

// ServerFactory creates the analysis backend server
type ServerFactory struct {
	cfg      *config.Config
	logger   *zap.Logger
	analyzer core.EmailAnalyzer
}

// NewServerFactory creates a new server factory
func NewServerFactory(cfg *config.Config, logger *zap.Logger, analyzer core.EmailAnalyzer) *ServerFactory {
	return &ServerFactory{
		cfg:      cfg,
		logger:   logger,
		analyzer: analyzer,
	}
}

// CreateAnalysisServer creates the HTTP server from the server configuration
func (f *ServerFactory) CreateAnalysisServer() (ports.AnalysisServer, error) {
	serverCfg, err := f.cfg.GetServer()
	if err != nil {
		return nil, err
	}

	return server.NewHTTPServer(f.analyzer, server.Options{
		ListenAddress:   serverCfg.ListenAddress,
		BodyLimit:       serverCfg.BodyLimit,
		CORSOrigins:     serverCfg.CORSOrigins,
		ShutdownTimeout: serverCfg.ShutdownTimeout,
		Modules:         f.Modules(),
	}, f.logger), nil
}

// Modules lists the scoring stages the backend runs with the current configuration
func (f *ServerFactory) Modules() []string {
	modules := []string{"URL Security"}
	if provider := f.cfg.GetLLM().Provider; provider != "" && provider != ProviderNone {
		modules = append(modules, fmt.Sprintf("LLM (%s)", provider))
	}
	if len(f.cfg.GetAnalyzer().WhitelistedDomains) > 0 {
		modules = append(modules, "Sender Whitelist")
	}
	return modules
}
