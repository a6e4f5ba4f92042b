package ai

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"github.com/YashPatkar/ShortlistAI/internal/config"
	apperrors "github.com/YashPatkar/ShortlistAI/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	operationType  string
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *apperrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *apperrors.Logger) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.NewConfigError(apperrors.ErrCodeMissingAPIKey,
			"No Gemini API key configured", nil).WithContext("operation_type", operationType)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		operationType:  operationType,
		circuitBreaker: NewAICircuitBreaker(operationType, cfg, logger),
		modelBreaker:   NewModelCircuitBreaker(operationType, cfg, logger),
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

const modelCheckTimeout = 10 * time.Second

// Complete sends the analysis prompt and returns the raw model text.
// The response MIME type is pinned to JSON; parsing and schema
// enforcement stay with the caller.
func (g *GeminiProvider) Complete(ctx context.Context, prompt string) (string, *TokenUsage, error) {
	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}

	result, err := g.generate(ctx, "complete", prompt, g.getSystemPrompt(), genaiConfig,
		attribute.Int("input.prompt_length", len(prompt)))
	if err != nil {
		return "", nil, err
	}
	return result.Text(), extractTokenUsage(result), nil
}

// Classify sends a short yes/no question. Temperature is pinned to zero
// and the output budget kept to a few tokens; the caller only inspects
// the leading word of the answer.
func (g *GeminiProvider) Classify(ctx context.Context, prompt string) (string, error) {
	genaiConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0),
		MaxOutputTokens: 5,
	}

	result, err := g.generate(ctx, "classify", prompt, g.getSystemPrompt(), genaiConfig,
		attribute.Int("input.prompt_length", len(prompt)))
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

// generate runs one GenerateContent call with tracing, circuit breaker
// and retry handling
func (g *GeminiProvider) generate(
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (*genai.GenerateContentResponse, error) {
	tracer := otel.Tracer("shortlistai.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.String("ai.operation_type", g.operationType),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed,
			"Failed to generate content for "+operationName, err)
	}

	if usage := extractTokenUsage(result); usage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", usage.InputTokens),
			attribute.Int64("ai.tokens.output", usage.OutputTokens),
			attribute.Int64("ai.tokens.total", usage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return result, nil
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on auth failures, invalid input and the like
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		// Timeouts and connection-level failures are worth retrying
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}
	stats["overall_healthy"] = g.circuitBreaker.IsHealthy() && g.modelBreaker.IsModelHealthy()
	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// The genai client holds no long-lived connection in single-shot usage
	return nil
}

// getSystemPrompt resolves the system instruction for this provider's operation
func (g *GeminiProvider) getSystemPrompt() string {
	loadedPrompts := config.GetPromptsForOperation(g.operationType)
	configPrompts := g.config.CustomPrompts

	switch g.operationType {
	case config.OperationAnalyze:
		return resolvePrompt(
			loadedPrompts.SystemPrompts.AnalyzeMatch,
			configPrompts.SystemPrompts.AnalyzeMatch,
			DefaultSystemPrompts.AnalyzeMatch,
		)
	case config.OperationClassify:
		return resolvePrompt(
			loadedPrompts.SystemPrompts.ClassifyJD,
			configPrompts.SystemPrompts.ClassifyJD,
			DefaultSystemPrompts.ClassifyJD,
		)
	default:
		return ""
	}
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from a Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// resolvePrompt selects the prompt string by priority: a prompt loaded
// from a file, then a prompt from configuration, then the default
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
