// Package ai defines the provider-agnostic boundary to generative text
// models: the Provider interface plus the request and response models
// shared by every implementation.
package ai
