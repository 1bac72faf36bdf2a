// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve decides which URL, if any, is a usable open-access PDF
// for a search result. Returning no candidate is the normal path for
// paywalled results and never halts a run.
package resolve

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/Laam24/research-paper-extractor/internal/httputil"
	"github.com/Laam24/research-paper-extractor/pkg/types"
)

// Base URLs for arXiv resolution. Declared as vars so tests can substitute
// httptest servers.
var (
	arxivPDFBase = "https://arxiv.org/pdf/"
	arxivAPIBase = "https://export.arxiv.org/api/query"
)

// arxivIDPattern matches an arXiv identifier mentioned inline, e.g.
// "arXiv:2301.07041" or "arxiv 2301.07041v2".
var arxivIDPattern = regexp.MustCompile(`(?i)ar\s?xiv[.: ]\s*(\d{4}\.\d{4,5}(?:v\d+)?)`)

// arxivURLPattern matches an identifier inside an arxiv.org abs/pdf URL.
var arxivURLPattern = regexp.MustCompile(`arxiv\.org/(?:abs|pdf)/(\d{4}\.\d{4,5}(?:v\d+)?)`)

// Candidate is a resolved PDF URL tagged with how it was found.
type Candidate struct {
	URL  string
	Kind types.SourceKind
}

// Resolve picks at most one candidate PDF URL for a search result.
// Preference order: the engine's explicit "[PDF]" link, then an arXiv
// identifier reconstructed into the canonical PDF URL, then an arXiv
// title lookup for results that point at arxiv.org without a usable
// identifier, then any main link whose path ends in a PDF suffix.
// The second return value is false when no rule applies; that is a data
// condition, not an error, and lookup failures degrade to the next rule.
func Resolve(client *http.Client, result types.SearchResult, cfg types.HTTPConfig) (Candidate, bool) {
	if result.PDFURL != "" {
		kind := types.SourceScholarPDF
		if strings.Contains(strings.ToLower(result.PDFURL), "arxiv.org") {
			kind = types.SourceArxiv
		}
		return Candidate{URL: result.PDFURL, Kind: kind}, true
	}

	if id := arxivID(result); id != "" {
		return Candidate{URL: arxivPDFBase + id, Kind: types.SourceArxiv}, true
	}

	if looksArxiv(result) && result.Title != "" {
		if pdfURL, err := lookupArxivByTitle(client, result.Title, cfg); err == nil && pdfURL != "" {
			return Candidate{URL: pdfURL, Kind: types.SourceArxiv}, true
		}
	}

	if isPDFPath(result.MainURL) {
		return Candidate{URL: result.MainURL, Kind: types.SourceDirect}, true
	}

	return Candidate{Kind: types.SourceNone}, false
}

// arxivID extracts an arXiv identifier from the result's main URL, title,
// or byline, returning "" when none is present.
func arxivID(result types.SearchResult) string {
	if m := arxivURLPattern.FindStringSubmatch(strings.ToLower(result.MainURL)); m != nil {
		return m[1]
	}
	for _, s := range []string{result.Title, result.Byline} {
		if m := arxivIDPattern.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	return ""
}

// looksArxiv reports whether the result appears to come from arXiv even
// though no identifier could be extracted directly.
func looksArxiv(result types.SearchResult) bool {
	if strings.Contains(strings.ToLower(result.MainURL), "arxiv.org") {
		return true
	}
	return strings.Contains(strings.ToLower(result.Title), "arxiv") ||
		strings.Contains(strings.ToLower(result.Byline), "arxiv")
}

// isPDFPath reports whether the URL's path ends in a PDF-like suffix.
func isPDFPath(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".pdf")
}

// arXiv Atom feed structures for the title lookup.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID    string     `xml:"id"`
	Title string     `xml:"title"`
	Links []atomLink `xml:"link"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
}

// nonWord strips punctuation from titles before querying the arXiv API.
var nonWord = regexp.MustCompile(`[^\w\s]`)

// lookupArxivByTitle queries the arXiv API for the paper title and returns
// the PDF link of the best-matching entry. A returned empty string means
// no entry matched closely enough.
func lookupArxivByTitle(client *http.Client, title string, cfg types.HTTPConfig) (string, error) {
	search := nonWord.ReplaceAllString(title, " ")
	search = strings.Join(strings.Fields(search), " ")
	if search == "" {
		return "", nil
	}

	apiURL := fmt.Sprintf("%s?search_query=all:%s&max_results=3", arxivAPIBase, url.QueryEscape(search))
	req, err := httputil.NewRequest(apiURL, cfg)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return "", fmt.Errorf("parsing arXiv response: %w", err)
	}

	want := strings.ToLower(search)
	for _, entry := range feed.Entries {
		got := strings.ToLower(strings.TrimSpace(entry.Title))
		if got == "" {
			continue
		}
		if !strings.Contains(got, want) && !strings.Contains(want, got) && titleSimilarity(want, got) <= 0.6 {
			continue
		}
		for _, link := range entry.Links {
			if link.Title == "pdf" {
				return link.Href, nil
			}
		}
		// Entries without an annotated pdf link still carry the abs URL.
		if m := arxivURLPattern.FindStringSubmatch(strings.ToLower(entry.ID)); m != nil {
			return arxivPDFBase + m[1], nil
		}
	}
	return "", nil
}

// titleSimilarity returns the word-overlap ratio between two titles:
// |intersection| / max(|words1|, |words2|).
func titleSimilarity(a, b string) float64 {
	wordsA := fieldSet(a)
	wordsB := fieldSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}
	common := 0
	for w := range wordsA {
		if wordsB[w] {
			common++
		}
	}
	denom := len(wordsA)
	if len(wordsB) > denom {
		denom = len(wordsB)
	}
	return float64(common) / float64(denom)
}

func fieldSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}
