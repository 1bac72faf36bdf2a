// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a full survey run: resolve a PDF for each search
// result, download it, extract text and metrics, and append a report block.
// Candidates are processed strictly one at a time with a blocking delay
// between those that touched the network. Every per-candidate failure is
// printed and skipped; only a report-write error aborts the run.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Laam24/research-paper-extractor/internal/fetch"
	"github.com/Laam24/research-paper-extractor/internal/httputil"
	"github.com/Laam24/research-paper-extractor/internal/metrics"
	"github.com/Laam24/research-paper-extractor/internal/pdftext"
	"github.com/Laam24/research-paper-extractor/internal/report"
	"github.com/Laam24/research-paper-extractor/internal/resolve"
	"github.com/Laam24/research-paper-extractor/pkg/types"
)

// Summary holds the outcome counters of a run.
type Summary struct {
	Attempted      int
	Accepted       int
	NoCandidate    int
	DownloadFailed int
	ExtractFailed  int
}

// Pipeline processes search results sequentially into a report.
type Pipeline struct {
	cfg    types.PipelineConfig
	report *report.Writer
	out    io.Writer

	// ExtractText converts raw PDF bytes to text. Defaults to
	// pdftext.Extract; tests substitute a stub to supply text directly.
	ExtractText func(data []byte) (string, error)
}

// New builds a pipeline writing paper blocks to rep and progress lines to out.
func New(cfg types.PipelineConfig, rep *report.Writer, out io.Writer) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		report:      rep,
		out:         out,
		ExtractText: pdftext.Extract,
	}
}

// Run walks results in order until target papers are accepted or the results
// are exhausted. A target of zero or less returns immediately without any
// network activity.
func (p *Pipeline) Run(results []types.SearchResult, target int) (Summary, error) {
	var sum Summary
	if target <= 0 {
		return sum, nil
	}

	client := httputil.NewClient(p.cfg.Fetch.HTTPConfig)
	for i, result := range results {
		if sum.Accepted >= target {
			break
		}
		if i > 0 && p.cfg.CandidateDelay > 0 {
			time.Sleep(p.cfg.CandidateDelay)
		}
		sum.Attempted++

		accepted, err := p.processResult(client, result, &sum)
		if err != nil {
			return sum, err
		}
		if accepted {
			sum.Accepted++
		}
	}

	fmt.Fprintf(p.out, "\nRun summary: %d accepted, %d no candidate, %d download failed, %d unreadable (attempted: %d)\n",
		sum.Accepted, sum.NoCandidate, sum.DownloadFailed, sum.ExtractFailed, sum.Attempted)
	return sum, nil
}

// processResult handles one search result end to end. The returned error is
// non-nil only for report-write failures, which abort the run.
func (p *Pipeline) processResult(client *http.Client, result types.SearchResult, sum *Summary) (bool, error) {
	title := truncateTitle(result.Title)

	cand, ok := resolve.Resolve(client, result, p.cfg.Fetch.HTTPConfig)
	if !ok {
		fmt.Fprintf(p.out, "skipped: %s (no open-access PDF)\n", title)
		sum.NoCandidate++
		return false, nil
	}

	fmt.Fprintf(p.out, "downloading: %s (%s)\n", title, cand.Kind)
	data, err := fetch.Fetch(client, cand.URL, p.cfg.Fetch.HTTPConfig)
	if err != nil {
		var de *fetch.DownloadError
		if errors.As(err, &de) {
			fmt.Fprintf(p.out, "failed:  %s (%s)\n", title, de.Reason)
		} else {
			fmt.Fprintf(p.out, "failed:  %s (%v)\n", title, err)
		}
		sum.DownloadFailed++
		return false, nil
	}

	fileName := fetch.PDFFileName(cand.Kind, sum.Accepted+1, result.Title)
	pdfPath, err := fetch.SavePDF(p.cfg.Fetch.PapersDir, fileName, data)
	if err != nil {
		fmt.Fprintf(p.out, "failed:  %s (%v)\n", title, err)
		sum.DownloadFailed++
		return false, nil
	}

	text, err := p.ExtractText(data)
	if err != nil {
		fmt.Fprintf(p.out, "failed:  %s (unreadable PDF: %v)\n", title, err)
		sum.ExtractFailed++
		return false, nil
	}

	res := metrics.Extract(text)
	rec := types.PaperRecord{
		Title:    result.Title,
		Byline:   result.Byline,
		Year:     result.Year,
		Source:   cand.Kind,
		PDFURL:   cand.URL,
		PDFPath:  pdfPath,
		Metrics:  res.Values,
		Datasets: res.Datasets,
		Models:   res.Models,
	}

	if _, err := fetch.SaveMetadata(p.cfg.Fetch.PapersDir, fileName, rec); err != nil {
		fmt.Fprintf(p.out, "  warning: metadata write failed: %v\n", err)
	}

	if err := p.report.WritePaper(rec); err != nil {
		return false, fmt.Errorf("writing report block: %w", err)
	}
	fmt.Fprintf(p.out, "accepted: %s (%d metric(s))\n", title, len(res.Values))
	return true, nil
}

// truncateTitle shortens a title for progress lines.
func truncateTitle(title string) string {
	const max = 60
	if len(title) <= max {
		return title
	}
	return title[:max-3] + "..."
}
