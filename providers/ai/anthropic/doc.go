// Package anthropic implements the ai.Provider interface against the
// Anthropic messages API.
package anthropic
