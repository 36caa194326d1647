package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"schoolfinder/internal/utils"
	"schoolfinder/providers/ai"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	messagesEndpoint = "/v1/messages"
	apiVersion       = "2023-06-01"
	defaultModel     = "claude-3-5-haiku-latest"

	// The messages API requires max_tokens on every request.
	defaultMaxTokens = 4096
)

// AnthropicProvider implements the ai.Provider interface for the Anthropic
// API. The messages API has no structured-output parameter, so any response
// schema on the request is carried by the prompt text alone.
type AnthropicProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates a new Anthropic provider instance with default values from
// environment.
// Environment variables:
//   - ANTHROPIC_API_KEY: API key for authentication
//   - ANTHROPIC_API_BASE_URL: Base URL for API (optional)
func New() *AnthropicProvider {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	baseURL := os.Getenv("ANTHROPIC_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &AnthropicProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key for the provider.
func (p *AnthropicProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL for the API.
func (p *AnthropicProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *AnthropicProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// SendMessage implements the ai.Provider interface.
func (p *AnthropicProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("API key is not set")
	}

	headers := map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": apiVersion,
	}

	httpResponse, resp, err := utils.DoPostSync[messagesResponse](ctx, p.client, p.baseURL+messagesEndpoint, headers, requestFromGeneric(request))
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from Anthropic API: %s", httpResponse.Status)
	}

	return responseToGeneric(*resp), nil
}

// IsStopMessage reports whether the given chat response should be treated as
// a stop/end signal.
func (p *AnthropicProvider) IsStopMessage(message *ai.ChatResponse) bool {
	if message == nil {
		return true
	}
	if message.FinishReason == "end_turn" || message.FinishReason == "max_tokens" || message.FinishReason == "stop_sequence" {
		return true
	}
	return message.Content == ""
}

// requestFromGeneric converts an ai.ChatRequest to the messages wire format.
func requestFromGeneric(request ai.ChatRequest) messagesRequest {
	req := messagesRequest{
		Model:     request.Model,
		MaxTokens: defaultMaxTokens,
		System:    request.SystemPrompt,
	}
	if req.Model == "" {
		req.Model = defaultModel
	}

	if gc := request.GenerationConfig; gc != nil {
		if gc.MaxTokens > 0 {
			req.MaxTokens = gc.MaxTokens
		}
		req.Temperature = gc.Temperature
		req.TopP = gc.TopP
	}

	for _, msg := range request.Messages {
		role := string(msg.Role)
		if msg.Role == ai.RoleSystem {
			// System text belongs in the top-level system field.
			if req.System == "" {
				req.System = msg.Content
			}
			continue
		}
		req.Messages = append(req.Messages, chatMessage{Role: role, Content: msg.Content})
	}

	return req
}

// responseToGeneric converts a messages response to an ai.ChatResponse,
// concatenating the text content blocks.
func responseToGeneric(resp messagesResponse) *ai.ChatResponse {
	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	out := &ai.ChatResponse{
		Id:           resp.ID,
		Model:        resp.Model,
		Object:       resp.Type,
		Content:      sb.String(),
		FinishReason: resp.StopReason,
	}

	if resp.Usage != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		}
	}

	return out
}
