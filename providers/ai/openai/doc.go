// Package openai implements the ai.Provider interface against the OpenAI
// chat completions API.
package openai
