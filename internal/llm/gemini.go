// Package llm wraps the Gemini API for song selection: criteria and catalog
// in, newline-separated "Title by Artist" strings out.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/curatecli/curate/internal/models"
)

const (
	defaultModel       = "gemini-2.0-flash"
	defaultTemperature = 0.20
)

// Client invokes the Gemini model to select songs. It satisfies the
// tasks.Suggester interface.
type Client struct {
	apiKey      string
	model       string
	temperature float32
	logger      *log.Logger
}

// ClientOpts configures a Client. Model and Temperature default to
// gemini-2.0-flash at 0.20; Logger defaults to the package default logger.
type ClientOpts struct {
	APIKey      string
	Model       string
	Temperature float32
	Logger      *log.Logger
}

// NewClient creates a Gemini-backed suggestion client.
func NewClient(opts ClientOpts) *Client {
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Temperature <= 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Client{
		apiKey:      opts.APIKey,
		model:       opts.Model,
		temperature: opts.Temperature,
		logger:      opts.Logger,
	}
}

// safetySettings relaxes nothing: medium-and-above blocking across the four
// harm categories, matching the service defaults the curator was tuned on.
var safetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockMediumAndAbove},
}

// Suggest asks the model to select tracks matching the criteria and returns
// its answer as raw suggestion lines. An empty or blocked response is an
// error; interpreting the lines is the matcher's job.
func (c *Client) Suggest(ctx context.Context, criteria models.Criteria, entries []models.CatalogEntry) ([]string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SetTemperature(c.temperature)
	model.SafetySettings = safetySettings

	prompt := BuildPrompt(criteria, entries)
	c.logger.Debug("sending curation prompt", "model", c.model, "entries", len(entries), "prompt_bytes", len(prompt))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text := collectText(resp)
	if text == "" {
		if reason := blockReason(resp); reason != "" {
			return nil, fmt.Errorf("model response was blocked: %s", reason)
		}
		return nil, fmt.Errorf("model returned an empty response")
	}

	suggestions := SplitSuggestions(text)
	c.logger.Info("model suggested tracks", "count", len(suggestions))
	return suggestions, nil
}

// collectText concatenates the text parts of every candidate.
func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// blockReason extracts a human-readable reason when the response carried no
// usable content.
func blockReason(resp *genai.GenerateContentResponse) string {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return resp.PromptFeedback.BlockReason.String()
	}
	for _, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop && cand.FinishReason != genai.FinishReasonUnspecified {
			return cand.FinishReason.String()
		}
	}
	return ""
}
