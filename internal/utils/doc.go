// Package utils contains small shared helpers: a generic JSON POST client
// used by every provider, string truncation for log and error excerpts, and
// pointer construction for optional API fields.
package utils
