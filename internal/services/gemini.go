package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/cv-analyzer/internal/config"
	"alfredoptarigan/cv-analyzer/internal/logger"
)

const previewLength = 200

// InferenceClient sends one prompt and returns the model's textual answer.
// A single attempt is made; failures are reported as PipelineErrors.
type InferenceClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Provider() string
}

// NewInferenceClient picks the backend named by cfg.Provider.
func NewInferenceClient(ctx context.Context, cfg config.InferenceConfig, log *zap.Logger) (InferenceClient, error) {
	switch cfg.Provider {
	case config.ProviderInvoke, "":
		return NewInvokeClient(cfg, log), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown inference provider %q", cfg.Provider)
	}
}

// invokeRequest is the body POSTed to the invoke endpoint.
type invokeRequest struct {
	Contents []*genai.Content `json:"contents"`
}

type invokeClient struct {
	url     string
	apiKey  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewInvokeClient talks to a fixed URL that accepts a generateContent style
// envelope and authenticates with the raw key in the Authorization header.
func NewInvokeClient(cfg config.InferenceConfig, log *zap.Logger) InferenceClient {
	url := cfg.URL
	if url == "" {
		url = config.DefaultInferenceURL
	}
	return &invokeClient{
		url:     url,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		timeout: cfg.Timeout,
		logger:  logger.WithFields(log, zap.String("provider", config.ProviderInvoke)),
	}
}

func (c *invokeClient) Provider() string {
	return config.ProviderInvoke
}

func (c *invokeClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		c.logger.Error("inference credential missing", zap.String("error_kind", string(KindAIAuth)))
		return "", newPipelineError(KindAIAuth, "", nil)
	}

	if err := ctx.Err(); err != nil {
		return "", c.fail(KindAINetwork, err)
	}

	logRequest(c.logger, prompt)

	agent := fiber.Post(c.url).
		Set(fiber.HeaderAuthorization, c.apiKey).
		JSON(invokeRequest{
			Contents: []*genai.Content{{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: prompt}},
			}},
		})
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return "", c.fail(KindAINetwork, errors.Join(errs...))
	}

	switch {
	case code == fiber.StatusUnauthorized || code == fiber.StatusForbidden:
		return "", c.fail(KindAIAuth, fmt.Errorf("request failed with status code %d", code))
	case code < 200 || code > 299:
		return "", c.fail(KindAINetwork, fmt.Errorf("request failed with status code %d", code))
	}

	var resp genai.GenerateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", c.fail(KindAIEmptyResponse, fmt.Errorf("decode response: %w", err))
	}

	return c.answer(&resp)
}

func (c *invokeClient) answer(resp *genai.GenerateContentResponse) (string, error) {
	text := firstCandidateText(resp)
	if text == "" {
		return "", c.fail(KindAIEmptyResponse, nil)
	}
	logResponse(c.logger, text)
	return text, nil
}

func (c *invokeClient) fail(kind ErrorKind, err error) error {
	c.logger.Error("inference call failed", zap.String("error_kind", string(kind)), zap.Error(err))
	return newPipelineError(kind, "", err)
}

type geminiClient struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewGeminiClient uses the native Gemini API. Without a key no SDK client is
// built and every call fails with KindAIAuth.
func NewGeminiClient(ctx context.Context, cfg config.InferenceConfig, log *zap.Logger) (InferenceClient, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = config.DefaultGeminiModel
	}

	g := &geminiClient{
		modelName: model,
		timeout:   cfg.Timeout,
		logger: logger.WithFields(log,
			zap.String("provider", config.ProviderGemini),
			zap.String("model", model),
		),
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return g, nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client

	return g, nil
}

func (g *geminiClient) Provider() string {
	return config.ProviderGemini
}

func (g *geminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		g.logger.Error("inference credential missing", zap.String("error_kind", string(KindAIAuth)))
		return "", newPipelineError(KindAIAuth, "", nil)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	logRequest(g.logger, prompt)

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: prompt}},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, nil)
	if err != nil {
		kind := KindAINetwork
		if code := apiErrorCode(err); code == http.StatusUnauthorized || code == http.StatusForbidden {
			kind = KindAIAuth
		}
		g.logger.Error("inference call failed", zap.String("error_kind", string(kind)), zap.Error(err))
		return "", newPipelineError(kind, "", err)
	}

	text := firstCandidateText(resp)
	if text == "" {
		g.logger.Error("inference call failed", zap.String("error_kind", string(KindAIEmptyResponse)))
		return "", newPipelineError(KindAIEmptyResponse, "", nil)
	}

	logResponse(g.logger, text)
	return text, nil
}

func apiErrorCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}

// firstCandidateText returns candidates[0].content.parts[0].text, or "" when
// any link in that chain is missing.
func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}
	part := candidate.Content.Parts[0]
	if part == nil {
		return ""
	}
	return part.Text
}

func logRequest(log *zap.Logger, prompt string) {
	log.Debug("inference request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, previewLength)),
	)
}

func logResponse(log *zap.Logger, text string) {
	log.Debug("inference response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
		zap.String("response_preview", logger.TruncateForLog(text, previewLength)),
	)
}
