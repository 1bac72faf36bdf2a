// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paperscan pipeline.
package types

// SearchResult represents one candidate paper returned by a search backend.
// It is produced by the search stage and read-only thereafter.
type SearchResult struct {
	// Title is the paper title as returned by the source, with any
	// "[PDF]"/"[HTML]" annotations stripped.
	Title string `json:"title" yaml:"title"`

	// Byline is the authors/venue/year line as a single combined string,
	// the way result pages present it (e.g. "A Smith, B Jones - CVPR, 2021").
	Byline string `json:"byline" yaml:"byline"`

	// Year is the publication year parsed from the byline, or 0 when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// MainURL is the primary landing-page link for the result, possibly empty.
	MainURL string `json:"main_url,omitempty" yaml:"main_url,omitempty"`

	// PDFURL is an explicit open-access PDF link the search engine annotated
	// on the result (the "[PDF]" button), or empty when none was offered.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// Source identifies which backend found this result (e.g. "scholar", "arxiv").
	Source string `json:"source" yaml:"source"`
}
