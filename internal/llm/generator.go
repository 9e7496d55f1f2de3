package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	errx "github.com/shopmate-fulfillment/server/internal/core/error"
	logx "github.com/shopmate-fulfillment/server/pkg/logger"
)

// Config holds the generative model settings. One configured client serves
// every handler call site.
type Config struct {
	Model       string  `envconfig:"GENERATIVE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"GENERATIVE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"GENERATIVE_TEMPERATURE" default:"0.4"`
}

// GeminiGenerator turns a plain-text prompt into plain-text output using a
// single long-lived Gemini chat model.
type GeminiGenerator struct {
	chatModel *gemini.ChatModel
	modelName string
}

// NewGeminiGenerator builds the genai client and chat model once at startup.
func NewGeminiGenerator(ctx context.Context, apiKey, baseURL string, cfg Config) (*GeminiGenerator, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		MaxTokens:   &cfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating generative model")
		return nil, fmt.Errorf("error creating generative model: %w", err)
	}

	return &GeminiGenerator{chatModel: chatModel, modelName: cfg.Model}, nil
}

// Generate sends one user message and returns the model's text verbatim.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := g.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		logx.Error().Err(err).Str("model", g.modelName).Msg("generative model invoke failed")
		return "", errx.New(err, http.StatusBadGateway, errx.ModelErrorMessage)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", errx.New(fmt.Errorf("empty model response"), http.StatusBadGateway, errx.ModelErrorMessage)
	}
	return out.Content, nil
}
