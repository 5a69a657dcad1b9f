package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ContentGenerator is the part of *genai.GenerativeModel the client uses
type ContentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClient rates phishing likelihood with a Google Gemini model
type GeminiClient struct {
	client        *genai.Client
	model         ContentGenerator
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	ctx context.Context,
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = genai.NewUserContent(genai.Text(utils.AssessmentSystemPrompt))

	gc := NewGeminiClientWithModel(model, modelName, maxBodySize, logger, textProcessor)
	gc.client = client
	return gc, nil
}

// NewGeminiClientWithModel creates a client around an already configured model
func NewGeminiClientWithModel(
	model ContentGenerator,
	modelName string,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *GeminiClient {
	return &GeminiClient{
		model:         model,
		modelName:     modelName,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// AssessEmail asks the model how likely the email is to be phishing
func (c *GeminiClient) AssessEmail(ctx context.Context, email *core.ExtractedEmail) (*core.ModelAssessment, error) {
	prompt := c.textProcessor.BuildAssessmentPrompt(email, c.maxBodySize)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	assessment, err := utils.ParseAssessment(responseText.String(), c.modelName)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Gemini assessment received", zap.Float64("model_score", assessment.ModelScore))
	return assessment, nil
}
