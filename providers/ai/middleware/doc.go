// Package middleware wraps an ai.Provider with cross-cutting behavior.
// Middlewares compose around the provider's SendMessage call: logging emits
// structured entries for every request, timeout bounds each call with a
// context deadline. There is deliberately no retry middleware: a failed
// model call surfaces once as a single terminal error per search.
package middleware
