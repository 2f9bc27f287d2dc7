package provider

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash-image"

type GeminiConfig struct {
	APIKey string
	Model  string // e.g., "gemini-2.5-flash-image"
}

// GeminiGenerator produces images via Google's Gemini API. Gemini always
// returns inline image bytes, never hosted URLs.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

var _ Generator = (*GeminiGenerator)(nil)

func NewGeminiGenerator(ctx context.Context, config GeminiConfig) (*GeminiGenerator, error) {
	if config.Model == "" {
		config.Model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiGenerator{client: client, model: config.Model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) ([]Output, error) {
	prompt := enhancePrompt(req)

	// Gemini has no negative prompt parameter; fold it into the prompt
	if req.NegativePrompt != "" {
		prompt += ". Do not include: " + req.NegativePrompt
	}

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		CandidateCount:     int32(resolveNumOutputs(req)),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, genConfig)
	if err != nil {
		return nil, Classify(fmt.Errorf("generation failed: %w", err))
	}

	return parseGeminiResult(result), nil
}

func parseGeminiResult(result *genai.GenerateContentResponse) []Output {
	if result == nil {
		return nil
	}

	var outputs []Output

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != nil {
				outputs = append(outputs, Output{
					Kind:  OutputBytes,
					Bytes: part.InlineData.Data,
				})
			}
		}
	}

	return outputs
}
