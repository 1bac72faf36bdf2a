// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Laam24/research-paper-extractor/pkg/types"
)

// fakeBackend returns canned results or an error.
type fakeBackend struct {
	name    string
	results []types.SearchResult
	err     error
}

func (b *fakeBackend) Name() string { return b.name }

func (b *fakeBackend) Search(ctx context.Context, topic string, cfg types.SearchConfig) ([]types.SearchResult, error) {
	return b.results, b.err
}

func TestSearchMergesAndDeduplicates(t *testing.T) {
	scholar := &fakeBackend{name: "scholar", results: []types.SearchResult{
		{Title: "Object Detection: A Survey!", Byline: "A Smith - 2021", Year: 2021, Source: "scholar"},
		{Title: "Unique Scholar Paper", Source: "scholar"},
	}}
	arxiv := &fakeBackend{name: "arxiv", results: []types.SearchResult{
		{Title: "Object Detection, a survey", PDFURL: "https://arxiv.org/pdf/2105.1", Source: "arxiv"},
		{Title: "Unique Arxiv Paper", Source: "arxiv"},
	}}

	var buf bytes.Buffer
	out, err := Search(context.Background(), "object detection", []Backend{scholar, arxiv},
		types.SearchConfig{MaxResults: 10}, &buf)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out.Results) != 3 {
		t.Fatalf("got %d results, want 3: %+v", len(out.Results), out.Results)
	}
	if out.DupsRemoved != 1 {
		t.Errorf("DupsRemoved = %d, want 1", out.DupsRemoved)
	}

	merged := out.Results[0]
	if merged.Title != "Object Detection: A Survey!" {
		t.Errorf("merged Title = %q, want first occurrence kept", merged.Title)
	}
	if merged.PDFURL != "https://arxiv.org/pdf/2105.1" {
		t.Errorf("merged PDFURL = %q, want filled from duplicate", merged.PDFURL)
	}
	if merged.Year != 2021 {
		t.Errorf("merged Year = %d, want 2021", merged.Year)
	}
	if merged.Source != "scholar,arxiv" {
		t.Errorf("merged Source = %q, want combined", merged.Source)
	}
}

func TestSearchPartialBackendFailure(t *testing.T) {
	ok := &fakeBackend{name: "arxiv", results: []types.SearchResult{{Title: "Fine Paper", Source: "arxiv"}}}
	bad := &fakeBackend{name: "scholar", err: fmt.Errorf("blocked")}

	var buf bytes.Buffer
	out, err := Search(context.Background(), "topic", []Backend{bad, ok}, types.SearchConfig{}, &buf)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out.Results) != 1 {
		t.Errorf("got %d results, want 1", len(out.Results))
	}
	if len(out.BackendErrors) != 1 || !strings.Contains(out.BackendErrors[0], "scholar") {
		t.Errorf("BackendErrors = %v, want one scholar error", out.BackendErrors)
	}
	if !strings.Contains(buf.String(), "warning: backend scholar failed") {
		t.Errorf("progress output %q should warn about the failed backend", buf.String())
	}
}

func TestSearchAllBackendsFail(t *testing.T) {
	bad := &fakeBackend{name: "scholar", err: fmt.Errorf("blocked")}
	var buf bytes.Buffer
	if _, err := Search(context.Background(), "topic", []Backend{bad}, types.SearchConfig{}, &buf); err == nil {
		t.Error("Search err = nil, want failure when every backend fails")
	}
}

func TestSearchEmptyTopic(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Search(context.Background(), "   ", []Backend{&fakeBackend{name: "x"}}, types.SearchConfig{}, &buf); err == nil {
		t.Error("Search err = nil, want failure for empty topic")
	}
}

func TestSearchTruncatesToMaxResults(t *testing.T) {
	var results []types.SearchResult
	for i := 0; i < 8; i++ {
		results = append(results, types.SearchResult{Title: fmt.Sprintf("Paper %d", i), Source: "scholar"})
	}
	b := &fakeBackend{name: "scholar", results: results}

	var buf bytes.Buffer
	out, err := Search(context.Background(), "topic", []Backend{b}, types.SearchConfig{MaxResults: 5}, &buf)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out.Results) != 5 {
		t.Errorf("got %d results, want 5", len(out.Results))
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Object Detection: A Survey!", "object detection a survey"},
		{"  Spaced   Out  ", "spaced out"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeTitle(tt.in); got != tt.want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTable(t *testing.T) {
	out := Output{
		Results: []types.SearchResult{
			{Title: "Object Detection at Scale", Year: 2021, PDFURL: "https://x/y.pdf", Source: "scholar"},
			{Title: "No PDF Here", Source: "arxiv"},
		},
		DupsRemoved: 2,
	}
	var buf bytes.Buffer
	FormatTable(out, &buf)
	s := buf.String()
	for _, want := range []string{"Object Detection at Scale", "2021", "2 results", "(2 duplicates removed)"} {
		if !strings.Contains(s, want) {
			t.Errorf("table output missing %q:\n%s", want, s)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(Output{}, &buf)
	if !strings.Contains(buf.String(), "No results found.") {
		t.Errorf("empty table output = %q", buf.String())
	}
}

func TestFormatJSON(t *testing.T) {
	out := Output{Results: []types.SearchResult{{Title: "P", Source: "arxiv"}}}
	var buf bytes.Buffer
	if err := FormatJSON(out, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"title": "P"`) {
		t.Errorf("JSON output = %q", buf.String())
	}
}
