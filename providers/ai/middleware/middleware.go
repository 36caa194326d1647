package middleware

import (
	"context"
	"net/http"

	"schoolfinder/providers/ai"
)

// SendFunc is the signature being decorated: one synchronous provider call.
type SendFunc func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)

// Middleware decorates a SendFunc with additional behavior.
type Middleware func(next SendFunc) SendFunc

// Wrap returns a Provider whose SendMessage runs through the given
// middlewares. The first middleware is outermost. All other Provider
// methods delegate to the wrapped provider.
func Wrap(provider ai.Provider, middlewares ...Middleware) ai.Provider {
	return &wrappedProvider{inner: provider, middlewares: middlewares, send: buildChain(provider, middlewares)}
}

func buildChain(provider ai.Provider, middlewares []Middleware) SendFunc {
	send := provider.SendMessage
	for i := len(middlewares) - 1; i >= 0; i-- {
		send = middlewares[i](send)
	}
	return send
}

type wrappedProvider struct {
	inner       ai.Provider
	middlewares []Middleware
	send        SendFunc
}

func (w *wrappedProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	return w.send(ctx, request)
}

func (w *wrappedProvider) IsStopMessage(message *ai.ChatResponse) bool {
	return w.inner.IsStopMessage(message)
}

func (w *wrappedProvider) WithAPIKey(apiKey string) ai.Provider {
	return w.reconfigure(w.inner.WithAPIKey(apiKey))
}

func (w *wrappedProvider) WithBaseURL(baseURL string) ai.Provider {
	return w.reconfigure(w.inner.WithBaseURL(baseURL))
}

func (w *wrappedProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	return w.reconfigure(w.inner.WithHttpClient(httpClient))
}

// reconfigure rebinds the middleware chain to the reconfigured provider so
// builder calls made after Wrap still take effect on dispatched requests.
func (w *wrappedProvider) reconfigure(inner ai.Provider) ai.Provider {
	w.inner = inner
	w.send = buildChain(inner, w.middlewares)
	return w
}
