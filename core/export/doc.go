// Package export serializes validated school records to CSV and delivers
// the result as an HTTP file download.
package export
