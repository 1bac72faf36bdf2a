// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Laam24/research-paper-extractor/internal/httputil"
	"github.com/Laam24/research-paper-extractor/pkg/types"
)

// scholarBase is the result-page host. Declared as a var so tests can
// substitute an httptest server.
var scholarBase = "https://scholar.google.com"

const (
	scholarPageSize     = 10
	defaultMaxPages     = 50
	maxConsecutiveEmpty = 5
	annotationPDF       = "[PDF]"
	annotationHTML      = "[HTML]"
)

// yearRe finds a 4-digit publication year in a result byline.
var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// ScholarBackend scrapes search-engine result pages. Results are parsed out
// of the page's result blocks; citation-only entries are skipped.
type ScholarBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *ScholarBackend) Name() string { return "scholar" }

// Search walks result pages until MaxResults candidates are collected, the
// page cap is hit, or several consecutive pages yield nothing. A blocking
// delay runs between page fetches.
func (b *ScholarBackend) Search(ctx context.Context, topic string, cfg types.SearchConfig) ([]types.SearchResult, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	var results []types.SearchResult
	empty := 0
	for page := 0; page < maxPages && len(results) < maxResults && empty < maxConsecutiveEmpty; page++ {
		if page > 0 && cfg.PageDelay > 0 {
			time.Sleep(cfg.PageDelay)
		}

		pageResults, err := b.searchPage(ctx, topic, page, cfg)
		if err != nil {
			// The first page failing means the engine is unreachable or
			// blocking us; later pages failing just end the walk early.
			if page == 0 {
				return nil, err
			}
			break
		}

		if len(pageResults) == 0 {
			empty++
			continue
		}
		empty = 0
		results = append(results, pageResults...)
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// searchPage fetches and parses a single result page.
func (b *ScholarBackend) searchPage(ctx context.Context, topic string, page int, cfg types.SearchConfig) ([]types.SearchResult, error) {
	pageURL := fmt.Sprintf("%s/scholar?q=%s&start=%d&hl=en",
		scholarBase, url.QueryEscape(topic), page*scholarPageSize)

	req, err := httputil.NewRequest(pageURL, cfg.HTTPConfig)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req = req.WithContext(ctx)

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("result page request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("result page returned HTTP %d", resp.StatusCode)
	}

	return ParseResultPage(resp.Body, scholarBase)
}

// ParseResultPage extracts search results from result-page HTML. Each
// result block carries the title (with optional access annotation), the
// authors/venue/year byline, the landing-page link, and sometimes a
// sidebar open-access PDF link.
func ParseResultPage(r io.Reader, base string) ([]types.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing result page: %w", err)
	}

	var results []types.SearchResult
	doc.Find(".gs_r.gs_or.gs_scl").Each(func(_ int, s *goquery.Selection) {
		titleElem := s.Find(".gs_rt")
		if titleElem.Length() == 0 {
			return
		}

		rawTitle := strings.TrimSpace(titleElem.Text())
		title := cleanTitle(rawTitle)
		// Citation-only entries carry no retrievable document.
		if title == "" || strings.HasPrefix(title, "[") || strings.Contains(rawTitle, "CITATION") {
			return
		}

		byline := strings.TrimSpace(s.Find(".gs_a").Text())

		mainURL, _ := s.Find(".gs_rt a").First().Attr("href")

		pdfURL, _ := s.Find(".gs_or_ggsm a").First().Attr("href")
		if strings.HasPrefix(pdfURL, "/") {
			pdfURL = base + pdfURL
		}

		results = append(results, types.SearchResult{
			Title:   title,
			Byline:  byline,
			Year:    bylineYear(byline),
			MainURL: mainURL,
			PDFURL:  pdfURL,
			Source:  "scholar",
		})
	})
	return results, nil
}

// cleanTitle strips the engine's access annotations from a result title.
func cleanTitle(title string) string {
	title = strings.ReplaceAll(title, annotationPDF, "")
	title = strings.ReplaceAll(title, annotationHTML, "")
	return strings.TrimSpace(title)
}

// bylineYear parses the publication year out of a byline, returning 0
// when none is present.
func bylineYear(byline string) int {
	m := yearRe.FindString(byline)
	if m == "" {
		return 0
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return year
}
