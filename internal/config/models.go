package config

import (
	"fmt"
	"time"
)

// ExtractorConfig holds the markers used to find message fields on the page
type ExtractorConfig struct {
	SubjectSelector   string
	SenderSelector    string
	SenderAddressAttr string
	BodySelector      string
}

// DocumentConfig describes where the rendered page comes from
type DocumentConfig struct {
	Source   string
	Path     string
	URL      string
	Location string
	Timeout  time.Duration
}

// RelayConfig represents the configuration for the extraction relay
type RelayConfig struct {
	Target       string
	AllowedHosts []string
}

// ClassifierConfig represents the configuration for the classification client
type ClassifierConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// ServerConfig represents the configuration for the analysis backend
type ServerConfig struct {
	ListenAddress   string
	BodyLimit       int
	CORSOrigins     string
	ShutdownTimeout time.Duration
}

// AnalyzerConfig represents the configuration for backend scoring
type AnalyzerConfig struct {
	MaxBodySize        int
	MLTriggerThreshold float64
	WhitelistedDomains []string
}

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GetExtractor returns the extractor configuration
func (c *Config) GetExtractor() ExtractorConfig {
	return ExtractorConfig{
		SubjectSelector:   c.GetString("extractor.subject_selector"),
		SenderSelector:    c.GetString("extractor.sender_selector"),
		SenderAddressAttr: c.GetString("extractor.sender_address_attr"),
		BodySelector:      c.GetString("extractor.body_selector"),
	}
}

// GetDocument returns the document source configuration
func (c *Config) GetDocument() (DocumentConfig, error) {
	timeout, err := c.GetDuration("document.timeout")
	if err != nil {
		return DocumentConfig{}, err
	}

	cfg := DocumentConfig{
		Source:   c.GetString("document.source"),
		Path:     c.GetString("document.path"),
		URL:      c.GetString("document.url"),
		Location: c.GetString("document.location"),
		Timeout:  timeout,
	}

	switch cfg.Source {
	case "file":
		if cfg.Path == "" {
			return DocumentConfig{}, fmt.Errorf("document.path is required for file source")
		}
	case "http":
		if cfg.URL == "" {
			return DocumentConfig{}, fmt.Errorf("document.url is required for http source")
		}
	default:
		return DocumentConfig{}, fmt.Errorf("unsupported document source: %s", cfg.Source)
	}

	return cfg, nil
}

// GetRelay returns the relay configuration
func (c *Config) GetRelay() RelayConfig {
	return RelayConfig{
		Target:       c.GetString("relay.target"),
		AllowedHosts: c.GetStringSlice("relay.allowed_hosts"),
	}
}

// GetClassifier returns the classifier client configuration
func (c *Config) GetClassifier() (ClassifierConfig, error) {
	timeout, err := c.GetDuration("classifier.timeout")
	if err != nil {
		return ClassifierConfig{}, err
	}
	return ClassifierConfig{
		Endpoint: c.GetString("classifier.endpoint"),
		Timeout:  timeout,
	}, nil
}

// GetServer returns the backend server configuration
func (c *Config) GetServer() (ServerConfig, error) {
	shutdown, err := c.GetDuration("server.shutdown_timeout")
	if err != nil {
		return ServerConfig{}, err
	}
	return ServerConfig{
		ListenAddress:   c.GetString("server.listen_address"),
		BodyLimit:       c.GetInt("server.body_limit"),
		CORSOrigins:     c.GetString("server.cors_origins"),
		ShutdownTimeout: shutdown,
	}, nil
}

// GetAnalyzer returns the backend scoring configuration
func (c *Config) GetAnalyzer() AnalyzerConfig {
	return AnalyzerConfig{
		MaxBodySize:        c.GetInt("analyzer.max_body_size"),
		MLTriggerThreshold: c.GetFloat64("analyzer.ml_trigger_threshold"),
		WhitelistedDomains: c.GetStringSlice("spam.whitelisted_domains"),
	}
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("analyzer.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("analyzer.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("analyzer.max_body_size"),
	}
}
