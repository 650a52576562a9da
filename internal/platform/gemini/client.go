package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/AymanChabbaki/tutor-MVP/internal/config"
)

// errEmptyResponse marks a provider call that returned no usable text.
// Empty output is an error condition, not success, so it goes through the
// same retry discipline as any other provider failure.
var errEmptyResponse = errors.New("empty response from model")

// contentCaller abstracts the single provider operation the generator needs.
// The production implementation wraps the genai client; tests substitute a
// scripted fake.
type contentCaller interface {
	generateText(ctx context.Context, prompt string) (string, error)
}

// genaiCaller implements contentCaller against the Gemini API.
type genaiCaller struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// newGenaiCaller builds the API client plus the per-call generation config.
// Safety thresholds are fixed at block-medium-and-above for the four harm
// categories relevant to student-submitted material; generation parameters
// come from configuration.
func newGenaiCaller(ctx context.Context, cfg config.LLMConfig) (*genaiCaller, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	safetySettings := []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	}

	return &genaiCaller{
		client: client,
		model:  cfg.ModelName,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(cfg.Temperature),
			MaxOutputTokens: cfg.MaxOutputTokens,
			TopP:            genai.Ptr(cfg.TopP),
			TopK:            genai.Ptr(cfg.TopK),
			SafetySettings:  safetySettings,
		},
	}, nil
}

// generateText implements contentCaller against the live API.
func (c *genaiCaller) generateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errEmptyResponse
	}

	return text, nil
}
