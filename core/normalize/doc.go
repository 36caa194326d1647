// Package normalize turns raw generative-model text into validated
// [schools.SchoolRecord] lists.
//
// Generative models do not reliably emit strictly valid JSON. The pipeline
// here targets the failure modes actually observed in replies - fenced code
// blocks around the payload and stray non-ASCII characters inserted next to
// value boundaries - rather than attempting a general-purpose fuzzy JSON
// parser. After cleanup the text must parse as a JSON array of objects;
// anything else fails with a typed error callers can match with errors.As.
package normalize
