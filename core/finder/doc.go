// Package finder orchestrates one school search: it builds the instruction
// for the generative model, sends it through the configured provider, and
// runs the reply through the response normalizer. One call per search, no
// retries; a failed outbound request surfaces once as a terminal error.
package finder
