package generation

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"

	"github.com/mark3labs/vacancy/internal/config"
	"github.com/mark3labs/vacancy/internal/logger"
)

// OpenAICompleter implements Completer with the chat completions API.
type OpenAICompleter struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewOpenAICompleter builds a completer from cfg. Requests go through a
// retrying HTTP client; openai-go's own retry loop is disabled so only one
// layer retries.
func NewOpenAICompleter(cfg *config.Config) (*OpenAICompleter, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; set OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		return nil, errors.New("model is required")
	}

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = cfg.MaxRetries
	httpClient.RetryWaitMin = 500 * time.Millisecond
	httpClient.RetryWaitMax = 5 * time.Second
	httpClient.Logger = logger.NewLeveled(nil)
	// Hand the final response back untouched so error bodies can be read.
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient.StandardClient()),
		option.WithMaxRetries(0),
	}
	if cfg.APIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.APIBaseURL))
	}

	logger.Debug("openai completer: model=%s base_url=%s retries=%d", cfg.Model, cfg.APIBaseURL, cfg.MaxRetries)

	return &OpenAICompleter{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		maxTokens:   int64(cfg.MaxTokens),
		temperature: cfg.Temperature,
	}, nil
}

// Complete sends prompt as a single user message.
func (o *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(o.maxTokens),
		Temperature: openai.Float(o.temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &UpstreamError{Status: apiErr.StatusCode, Message: upstreamMessage(apiErr)}
		}
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// upstreamMessage extracts error.message from an API error, falling back to
// the raw response body when the SDK could not decode it.
func upstreamMessage(apiErr *openai.Error) string {
	if apiErr.Message != "" {
		return apiErr.Message
	}
	if apiErr.Response == nil || apiErr.Response.Body == nil {
		return ""
	}
	body, err := io.ReadAll(apiErr.Response.Body)
	if err != nil {
		return ""
	}
	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
		return strings.TrimSpace(msg.String())
	}
	return ""
}
