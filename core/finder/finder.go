package finder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"schoolfinder/core/normalize"
	"schoolfinder/providers/ai"
	"schoolfinder/schools"
)

const defaultMaxTokens = 8192

// Option configures a Finder.
type Option func(*Finder)

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Finder) { f.logger = logger }
}

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(f *Finder) { f.model = model }
}

// WithTargetCount sets how many entries the prompt asks for. It is a prompt
// tuning parameter only; batches of any size are accepted back.
func WithTargetCount(count int) Option {
	return func(f *Finder) { f.targetCount = count }
}

// WithNormalizer replaces the default lenient normalizer, e.g. to switch to
// strict validation or enable the jsonrepair fallback.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(f *Finder) { f.normalizer = n }
}

// Finder performs address searches against a generative model. Construct it
// once with New and reuse it; it holds no per-search state.
type Finder struct {
	provider    ai.Provider
	normalizer  *normalize.Normalizer
	logger      *slog.Logger
	model       string
	targetCount int
}

// New creates a Finder backed by the given provider.
func New(provider ai.Provider, opts ...Option) (*Finder, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider must not be nil")
	}

	f := &Finder{
		provider:    provider,
		normalizer:  normalize.New(),
		logger:      slog.Default(),
		targetCount: schools.DefaultTargetCount,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.normalizer == nil {
		f.normalizer = normalize.New()
	}
	return f, nil
}

// FindNearby asks the model to invent schools near address and returns the
// validated records. The address must be non-empty; callers are expected to
// reject blank input before invoking the finder, but it is re-checked here
// so the contract holds regardless of the caller.
func (f *Finder) FindNearby(ctx context.Context, address string) ([]schools.SchoolRecord, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("address must not be empty")
	}

	request := ai.ChatRequest{
		Model:        f.model,
		SystemPrompt: schools.SystemPrompt,
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: schools.BuildPrompt(address, f.targetCount)},
		},
		ResponseFormat: &ai.ResponseFormat{
			OutputSchema: schools.ResponseSchema(),
			Type:         "json_object",
		},
		GenerationConfig: &ai.GenerationConfig{
			MaxTokens: defaultMaxTokens,
		},
	}

	start := time.Now()
	response, err := f.provider.SendMessage(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	var content string
	if response != nil {
		content = response.Content
	}

	records, err := f.normalizer.Normalize(content)
	if err != nil {
		f.logger.WarnContext(ctx, "school search failed to normalize",
			slog.String("address", address),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	f.logger.InfoContext(ctx, "school search completed",
		slog.String("address", address),
		slog.Int("records", len(records)),
		slog.Duration("duration", time.Since(start)),
	)
	return records, nil
}
