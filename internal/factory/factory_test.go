package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/phishawk/internal/adapters/document"
	"github.com/mikey/phishawk/internal/config"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/relay"
	"github.com/mikey/phishawk/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConfig(settings map[string]any) *config.Config {
	cfg := config.NewFromViper(config.NewEmptyViper())
	for key, value := range settings {
		cfg.Set(key, value)
	}
	return cfg
}

func TestLLMFactory_CreateLLMClient(t *testing.T) {
	logger := zap.NewNop()
	tp := utils.NewTextProcessor(logger)

	t.Run("none disables the model stage", func(t *testing.T) {
		client, err := NewLLMFactory(newTestConfig(nil), logger, tp).CreateLLMClient()

		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		_, err := NewLLMFactory(newTestConfig(map[string]any{"llm.provider": "watson"}), logger, tp).CreateLLMClient()

		assert.EqualError(t, err, "unsupported LLM provider: watson")
	})

	t.Run("openai requires a key", func(t *testing.T) {
		_, err := NewLLMFactory(newTestConfig(map[string]any{"llm.provider": "openai"}), logger, tp).CreateLLMClient()

		assert.EqualError(t, err, "openai API key is required")
	})

	t.Run("gemini requires a key", func(t *testing.T) {
		_, err := NewLLMFactory(newTestConfig(map[string]any{"llm.provider": "gemini"}), logger, tp).CreateLLMClient()

		assert.EqualError(t, err, "gemini API key is required")
	})

	t.Run("openai", func(t *testing.T) {
		cfg := newTestConfig(map[string]any{
			"llm.provider":    "openai",
			"openai.api_key":  "sk-test",
			"openai.base_url": "http://127.0.0.1:1/v1",
		})

		client, err := NewLLMFactory(cfg, logger, tp).CreateLLMClient()

		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestDocumentFactory_CreateDocumentSource(t *testing.T) {
	logger := zap.NewNop()

	t.Run("file", func(t *testing.T) {
		cfg := newTestConfig(map[string]any{"document.path": "/tmp/page.html"})

		src, err := NewDocumentFactory(cfg, logger).CreateDocumentSource()

		require.NoError(t, err)
		assert.IsType(t, &document.FileSource{}, src)
		assert.Equal(t, "https://mail.google.com/mail/u/0/", src.Location())
	})

	t.Run("http", func(t *testing.T) {
		cfg := newTestConfig(map[string]any{
			"document.source": "http",
			"document.url":    "https://mail.google.com/mail/u/0/#inbox/1",
		})

		src, err := NewDocumentFactory(cfg, logger).CreateDocumentSource()

		require.NoError(t, err)
		assert.IsType(t, &document.HTTPSource{}, src)
		assert.Equal(t, "https://mail.google.com/mail/u/0/#inbox/1", src.Location())
	})

	t.Run("file without a path", func(t *testing.T) {
		_, err := NewDocumentFactory(newTestConfig(nil), logger).CreateDocumentSource()

		assert.Error(t, err)
	})
}

func TestClassifierFactory_CreateClassifier(t *testing.T) {
	logger := zap.NewNop()

	client, err := NewClassifierFactory(newTestConfig(nil), logger).CreateClassifier()
	require.NoError(t, err)
	assert.NotNil(t, client)

	for _, endpoint := range []string{"localhost:5000", "ftp://host/analyze", "http://"} {
		_, err := NewClassifierFactory(newTestConfig(map[string]any{"classifier.endpoint": endpoint}), logger).CreateClassifier()
		assert.Error(t, err, endpoint)
	}

	_, err = NewClassifierFactory(newTestConfig(map[string]any{"classifier.timeout": "soon"}), logger).CreateClassifier()
	assert.ErrorContains(t, err, "invalid duration for classifier.timeout")
}

func TestServerFactory_Modules(t *testing.T) {
	logger := zap.NewNop()

	f := NewServerFactory(newTestConfig(nil), logger, nil)
	assert.Equal(t, []string{"URL Security"}, f.Modules())

	f = NewServerFactory(newTestConfig(map[string]any{
		"llm.provider":             "bedrock",
		"spam.whitelisted_domains": []string{"example.com"},
	}), logger, nil)
	assert.Equal(t, []string{"URL Security", "LLM (bedrock)", "Sender Whitelist"}, f.Modules())

	srv, err := f.CreateAnalysisServer()
	require.NoError(t, err)
	assert.NotNil(t, srv)
}

func TestRelayFactory_SnapshotRoundTrip(t *testing.T) {
	logger := zap.NewNop()
	path := filepath.Join(t.TempDir(), "inbox.html")
	page := `<html><body>
		<h2 class="subject">Your parcel is waiting</h2>
		<span class="gD" email="track@parcel.example">Parcel Service</span>
		<div class="a3s aiL">Pay the fee at http://parcel.example.tk/fee</div>
	</body></html>`
	require.NoError(t, os.WriteFile(path, []byte(page), 0o600))

	cfg := newTestConfig(map[string]any{
		"document.path":              path,
		"extractor.subject_selector": "h2.subject",
		"relay.target":               "snapshot",
	})

	src, err := NewDocumentFactory(cfg, logger).CreateDocumentSource()
	require.NoError(t, err)

	rf := NewRelayFactory(cfg, logger, utils.NewTextProcessor(logger))
	broker := relay.NewBroker(logger)
	host := rf.CreateExtractionHost(broker, src, rf.CreateExtractor())
	require.NoError(t, host.Start())
	t.Cleanup(func() { _ = host.Stop() })

	result, err := broker.RequestExtraction(context.Background(), "snapshot")

	require.NoError(t, err)
	require.True(t, result.Succeeded())
	assert.Equal(t, core.ExtractedEmail{
		Subject:   "Your parcel is waiting",
		Sender:    "Parcel Service <track@parcel.example>",
		Body:      "Pay the fee at http://parcel.example.tk/fee",
		SourceURL: "https://mail.google.com/mail/u/0/",
	}, *result.Email)
}
