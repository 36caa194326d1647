package gemini

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"schoolfinder/internal/utils"
	"schoolfinder/providers/ai"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash-lite" // Most cost-effective model
)

// GeminiProvider implements the ai.Provider interface for Google's Gemini
// API.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates a new Gemini provider instance with default values from
// environment.
// Environment variables:
//   - GEMINI_API_KEY: API key for authentication
//   - GEMINI_API_BASE_URL: Base URL for API (optional, defaults to Google's API)
func New() *GeminiProvider {
	apiKey := os.Getenv("GEMINI_API_KEY")
	baseURL := os.Getenv("GEMINI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key for the provider.
func (p *GeminiProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL for the API.
func (p *GeminiProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *GeminiProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// SendMessage implements the ai.Provider interface.
func (p *GeminiProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("API key is not set")
	}

	model := request.Model
	if model == "" {
		model = defaultModel
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, model)
	headers := map[string]string{"x-goog-api-key": p.apiKey}

	httpResponse, resp, err := utils.DoPostSync[generateContentResponse](ctx, p.client, url, headers, requestToGemini(request))
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from Gemini API: %s", httpResponse.Status)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}

	out := responseToGeneric(*resp)
	if out.Model == "" {
		out.Model = model
	}
	return out, nil
}

// IsStopMessage reports whether the given chat response should be treated as
// a stop/end signal.
func (p *GeminiProvider) IsStopMessage(message *ai.ChatResponse) bool {
	if message == nil {
		return true
	}
	if message.FinishReason == "stop" || message.FinishReason == "max_tokens" || message.FinishReason == "safety" {
		return true
	}
	return message.Content == ""
}
