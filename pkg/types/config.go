// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. Search
	// engines and publishers block the Go default agent, so a browser-like
	// string is used.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of candidate results to collect.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// PageDelay is the blocking delay between consecutive result-page
	// fetches, to respect the upstream service's implicit rate limits.
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`

	// MaxPages caps how many result pages a backend will walk (default 50).
	MaxPages int `json:"max_pages" yaml:"max_pages"`
}

// FetchConfig holds settings for the PDF fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// PapersDir is the base directory for downloaded papers
	// (contains raw/ and metadata/).
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`
}

// PipelineConfig groups the stage configurations for a survey run.
type PipelineConfig struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`

	// CandidateDelay is the blocking delay between consecutive candidates
	// that performed network activity.
	CandidateDelay time.Duration `json:"candidate_delay" yaml:"candidate_delay"`

	// OutputFile is the path of the plain-text report.
	OutputFile string `json:"output_file" yaml:"output_file"`
}
