package recognition

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Gemini defaults.
const (
	DefaultModel = "gemini-2.0-flash"
	Prompt       = "Briefly describe what you see in one short sentence."
)

// GeminiConfig configures the Gemini describer.
type GeminiConfig struct {
	APIKey          string
	Model           string
	MaxOutputTokens int32
	Temperature     float32
}

// DefaultGeminiConfig returns the short-caption settings for apiKey.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:          apiKey,
		Model:           DefaultModel,
		MaxOutputTokens: 60,
		Temperature:     0.2,
	}
}

// contentGenerator is the subset of *genai.Models the describer uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiDescriber describes frames with a Gemini vision model.
type GeminiDescriber struct {
	models contentGenerator
	config GeminiConfig
	logger zerolog.Logger
}

// NewGeminiDescriber creates a describer backed by the Gemini API.
func NewGeminiDescriber(ctx context.Context, cfg GeminiConfig) (*GeminiDescriber, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newGeminiDescriber(client.Models, cfg), nil
}

func newGeminiDescriber(models contentGenerator, cfg GeminiConfig) *GeminiDescriber {
	defaults := DefaultGeminiConfig(cfg.APIKey)
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = defaults.MaxOutputTokens
	}

	return &GeminiDescriber{
		models: models,
		config: cfg,
		logger: log.With().Str("component", "gemini").Str("model", cfg.Model).Logger(),
	}
}

// Describe sends the frame inline with the caption prompt and returns the
// trimmed reply. HTTP 429 is reported as ErrRateLimited.
func (g *GeminiDescriber) Describe(ctx context.Context, frame Frame) (string, error) {
	mimeType := frame.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(frame.Data, mimeType),
			genai.NewPartFromText(Prompt),
		}, genai.RoleUser),
	}

	resp, err := g.models.GenerateContent(ctx, g.config.Model, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: g.config.MaxOutputTokens,
		Temperature:     genai.Ptr(g.config.Temperature),
	})
	if err != nil {
		if code, ok := apiErrorCode(err); ok && code == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	g.logger.Debug().Int("bytes", len(frame.Data)).Int("chars", len(text)).Msg("Frame described")
	return text, nil
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code, true
	}
	return 0, false
}
