// Package output renders ls-remote and fetch results as either
// human-readable or JSON text.
package output

import "github.com/gitwire-go/gitwire/ref"

// FetchSummary is the CLI-facing view of a fetchplan.Plan: enough to report
// what a fetch did without the formatter needing to import fetchplan types
// directly.
type FetchSummary struct {
	Remote    string
	Asked     bool
	Tracking  []TrackingUpdate
	FetchHead int
}

// TrackingUpdate is one local tracking-ref change the fetch applied.
type TrackingUpdate struct {
	LocalName string
	OldID     string
	NewID     string
	Force     bool
	Deleted   bool
}

// Formatter renders CLI output in one of the supported formats.
type Formatter interface {
	// FormatRefs outputs every ref in an advertisement/ls-remote result.
	FormatRefs(refs []ref.Ref) error
	// FormatFetchResult outputs the summary of one fetch.
	FormatFetchResult(summary FetchSummary) error
}

// Get returns the formatter for the named output format ("json" or
// anything else for human-readable).
func Get(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewHumanFormatter()
	}
}
