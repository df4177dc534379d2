// Package suggest provides the LLM-backed text generator used to seed a
// plan with starter packing items.
package suggest

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerator generates text with the Google Gemini API.
// It satisfies the service layer's Generator interface.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiGenerator creates a generator backed by the given API key.
func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("suggest.NewGeminiGenerator: %w", err)
	}
	return &GeminiGenerator{
		client: client,
		model:  client.GenerativeModel("gemini-pro"),
	}, nil
}

// Generate sends the prompt to the model and returns the generated text.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("suggest.GeminiGenerator.Generate: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("suggest.GeminiGenerator.Generate: no content generated")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("suggest.GeminiGenerator.Generate: generated content is not text")
	}
	return string(text), nil
}

// Close releases the underlying API client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
