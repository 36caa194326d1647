// Package server exposes the school finder over HTTP: a JSON search
// endpoint, a CSV export endpoint, and the static browser frontend. Search
// and export failures are reported separately so an export error never
// clears previously fetched data on the client.
package server
