package server

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bodul/xpuzzle/internal/config"
	"github.com/bodul/xpuzzle/internal/wordbank"
	"google.golang.org/genai"
)

const (
	defaultRegion = "europe-west1"
	defaultModel  = "gemini-2.5-flash"
)

// ErrNoProject is returned when clue suggestion is configured without a project.
var ErrNoProject = errors.New("gemini: no GCP project configured")

// Vertex AI regions look like "europe-west1" or "us-central1"; "global" is
// the multi-region endpoint.
var regionPattern = regexp.MustCompile(`^(global|[a-z]+-[a-z]+[0-9]+)$`)

// GeminiClient wraps the Google GenAI client for VertexAI.
type GeminiClient struct {
	client    *genai.Client
	modelName string
	region    string
}

// NewGeminiClient creates a client using Application Default Credentials.
// Set GOOGLE_APPLICATION_CREDENTIALS to the service account key file path.
// Region and model fall back to europe-west1 and gemini-2.5-flash.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig) (*GeminiClient, error) {
	if cfg.ProjectID == "" {
		return nil, ErrNoProject
	}
	region := cmp.Or(cfg.Region, defaultRegion)
	if !regionPattern.MatchString(region) {
		return nil, fmt.Errorf("gemini: invalid region %q", region)
	}
	model := cmp.Or(cfg.Model, defaultModel)
	if !strings.HasPrefix(model, "gemini-") {
		return nil, fmt.Errorf("gemini: model %q is not a Gemini model", model)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.ProjectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: model,
		region:    region,
	}, nil
}

// Model returns the model name and region the client talks to.
func (g *GeminiClient) Model() (name, region string) {
	return g.modelName, g.region
}

// ClueSuggester writes crossword clues for keywords.
type ClueSuggester interface {
	SuggestClues(ctx context.Context, keywords []string, language string) (map[string]string, error)
}

const cluePrompt = `You write clues for a crossword puzzle in %s.

For each of the following keywords write one short clue (at most six words) that
does not contain the keyword itself:
%s

Answer ONLY with a JSON object mapping each keyword, exactly as given, to its clue.`

var languageNames = map[string]string{
	"de": "German",
	"en": "English",
}

// SuggestClues asks Gemini for one clue per keyword.
func (g *GeminiClient) SuggestClues(ctx context.Context, keywords []string, language string) (map[string]string, error) {
	lang, ok := languageNames[language]
	if !ok {
		lang = languageNames["de"]
	}
	prompt := fmt.Sprintf(cluePrompt, lang, "- "+strings.Join(keywords, "\n- "))

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.7)),
			TopP:             genai.Ptr(float32(1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}
	return parseClues(text, keywords)
}

// parseClues keeps the clues of the requested keywords, matching them after
// normalization so that "Haus" and "HAUS" are the same keyword.
func parseClues(text string, keywords []string) (map[string]string, error) {
	var raw map[string]string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse clues JSON: %w\nraw response: %s", err, text)
	}

	wanted := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		if n, ok := wordbank.Normalize(k); ok {
			wanted[n] = true
		}
	}

	out := make(map[string]string, len(keywords))
	for k, clue := range raw {
		n, ok := wordbank.Normalize(k)
		clue = strings.TrimSpace(clue)
		if !ok || !wanted[n] || clue == "" {
			continue
		}
		out[n] = clue
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no usable clues in response: %s", text)
	}
	return out, nil
}
