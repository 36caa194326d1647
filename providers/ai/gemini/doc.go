// Package gemini implements the ai.Provider interface against Google's
// Gemini generateContent API.
package gemini
