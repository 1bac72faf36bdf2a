// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries academic sources for candidate papers and returns
// unified, deduplicated results.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/Laam24/research-paper-extractor/pkg/types"
)

// Backend searches a single academic source. Each backend (Scholar, arXiv)
// implements this interface.
type Backend interface {
	Name() string
	Search(ctx context.Context, topic string, cfg types.SearchConfig) ([]types.SearchResult, error)
}

// Output holds the merged results and per-backend statistics.
type Output struct {
	Results       []types.SearchResult
	DupsRemoved   int
	BackendErrors []string
}

// Search runs the topic against each backend in turn, deduplicates by
// normalized title, and truncates to MaxResults. Backends run strictly
// sequentially with a blocking delay between them; a failing backend is
// reported and skipped, and the run only fails when every backend does.
func Search(ctx context.Context, topic string, backends []Backend, cfg types.SearchConfig, w io.Writer) (Output, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Output{}, fmt.Errorf("search topic is empty")
	}
	if len(backends) == 0 {
		return Output{}, fmt.Errorf("no search backends configured")
	}

	var all []types.SearchResult
	var backendErrors []string
	for i, b := range backends {
		if i > 0 && cfg.PageDelay > 0 {
			time.Sleep(cfg.PageDelay)
		}
		results, err := b.Search(ctx, topic, cfg)
		if err != nil {
			backendErrors = append(backendErrors, fmt.Sprintf("%s: %v", b.Name(), err))
			fmt.Fprintf(w, "warning: backend %s failed: %v\n", b.Name(), err)
			continue
		}
		all = append(all, results...)
	}

	if len(backendErrors) == len(backends) {
		return Output{BackendErrors: backendErrors}, fmt.Errorf("all search backends failed")
	}

	deduped, removed := deduplicate(all)
	if cfg.MaxResults > 0 && len(deduped) > cfg.MaxResults {
		deduped = deduped[:cfg.MaxResults]
	}

	return Output{
		Results:       deduped,
		DupsRemoved:   removed,
		BackendErrors: backendErrors,
	}, nil
}

// deduplicate merges results that share a normalized title, keeping the
// first occurrence and filling its empty fields from later duplicates.
func deduplicate(results []types.SearchResult) ([]types.SearchResult, int) {
	seen := make(map[string]int)
	var deduped []types.SearchResult
	removed := 0

	for _, r := range results {
		key := normalizeTitle(r.Title)
		if key == "" {
			deduped = append(deduped, r)
			continue
		}
		if idx, ok := seen[key]; ok {
			mergeInto(&deduped[idx], r)
			removed++
			continue
		}
		seen[key] = len(deduped)
		deduped = append(deduped, r)
	}
	return deduped, removed
}

// mergeInto fills empty fields of dst from src. An explicit PDF link wins
// over none since the resolver prefers it.
func mergeInto(dst *types.SearchResult, src types.SearchResult) {
	if dst.Byline == "" && src.Byline != "" {
		dst.Byline = src.Byline
	}
	if dst.Year == 0 && src.Year != 0 {
		dst.Year = src.Year
	}
	if dst.MainURL == "" && src.MainURL != "" {
		dst.MainURL = src.MainURL
	}
	if dst.PDFURL == "" && src.PDFURL != "" {
		dst.PDFURL = src.PDFURL
	}
	if dst.Source != src.Source && src.Source != "" && !strings.Contains(dst.Source, src.Source) {
		dst.Source = dst.Source + "," + src.Source
	}
}

// normalizeTitle returns a lowercased, punctuation-stripped version of the title.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-4s  %-4s  %s\n", "Rank", "Title", "Year", "PDF", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for i, r := range out.Results {
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		year := ""
		if r.Year != 0 {
			year = fmt.Sprintf("%d", r.Year)
		}
		pdf := ""
		if r.PDFURL != "" {
			pdf = "yes"
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-4s  %-4s  %s\n", i+1, title, year, pdf, r.Source)
	}

	fmt.Fprintf(w, "\n%d results", len(out.Results))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", out.DupsRemoved)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Results)
}
