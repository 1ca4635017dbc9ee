package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/BerylCAtieno/stratyx-planner/internal/models"
)

const DefaultModel = "gemini-2.5-flash"

type GeminiClient struct {
	client    *genai.Client
	modelName string
	log       *zap.SugaredLogger
}

func NewGeminiClient(apiKey, modelName string, log *zap.SugaredLogger) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
		log:       log,
	}, nil
}

func (g *GeminiClient) Close() {
	g.client.Close()
}

// model returns a model configured to answer with JSON matching schema.
func (g *GeminiClient) model(schema *genai.Schema, temperature float32) *genai.GenerativeModel {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(temperature)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(16384)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema
	return model
}

func (g *GeminiClient) GeneratePlan(ctx context.Context, profile models.BusinessProfile) (*models.MarketingPlan, error) {
	g.log.Infow("generating plan", "business", profile.Name, "platforms", len(profile.SelectedPlatforms))

	resp, err := g.model(planSchema(), 0.8).GenerateContent(ctx, genai.Text(buildPlanPrompt(profile)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	plan, err := DecodePlan(raw)
	if err != nil {
		return nil, err
	}
	plan.GroundingSources = citations(resp)
	return plan, nil
}

func (g *GeminiClient) ExtendPlan(ctx context.Context, req ExtendRequest) ([]models.PostItem, error) {
	g.log.Infow("extending calendar", "business", req.Profile.Name, "lastDay", req.LastDay)

	resp, err := g.model(postsSchema(), 0.9).GenerateContent(ctx, genai.Text(buildExtendPrompt(req)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return DecodePosts(raw)
}

func (g *GeminiClient) ExtractPalette(ctx context.Context, imageDataURI string) ([]string, error) {
	img, err := parseImageDataURI(imageDataURI)
	if err != nil {
		return nil, err
	}

	resp, err := g.model(paletteSchema(), 0.2).GenerateContent(ctx,
		genai.ImageData(img.format, img.data),
		genai.Text(palettePrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return DecodePalette(raw)
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &ValidationError{Kind: "response", Err: fmt.Errorf("no content generated")}
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return []byte(b.String()), nil
}

func citations(resp *genai.GenerateContentResponse) []models.GroundingSource {
	var sources []models.GroundingSource
	seen := map[string]bool{}
	for _, cand := range resp.Candidates {
		if cand.CitationMetadata == nil {
			continue
		}
		for _, src := range cand.CitationMetadata.CitationSources {
			if src == nil || src.URI == nil || seen[*src.URI] {
				continue
			}
			seen[*src.URI] = true
			sources = append(sources, models.GroundingSource{URI: *src.URI, License: src.License})
		}
	}
	return sources
}
