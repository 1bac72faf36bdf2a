// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report formats per-paper results into a plain-text report.
// The output file is opened once and written incrementally, so partial
// results survive a mid-run failure. Write errors here are the one fatal
// failure class of a run: losing results silently is worse than stopping.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Laam24/research-paper-extractor/internal/metrics"
	"github.com/Laam24/research-paper-extractor/pkg/types"
)

const (
	bannerWide   = "================================================================================"
	bannerNarrow = "----------------------------------------"
	ruleWide     = "--------------------------------------------------------------------------------"
)

// Header carries run information for the report preamble. GeneratedAt is
// caller-supplied so that identical inputs produce byte-identical reports.
type Header struct {
	Query       string
	GeneratedAt time.Time
}

// Writer owns the report file handle. It is handed to the orchestrator via
// scoped acquisition and must be closed on every exit path.
type Writer struct {
	f      *os.File
	papers int
}

// NewWriter creates (or truncates) the report file and writes the preamble.
func NewWriter(path string, h Header) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating report file %s: %w", path, err)
	}

	w := &Writer{f: f}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", bannerWide)
	fmt.Fprintf(&b, "OPEN ACCESS PAPER SEARCH RESULTS\n")
	fmt.Fprintf(&b, "%s\n\n", bannerWide)
	fmt.Fprintf(&b, "Search Query: %s\n", h.Query)
	fmt.Fprintf(&b, "Generated: %s\n", h.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%s\n", ruleWide)

	if err := w.write(b.String()); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// WritePaper appends one formatted block for an accepted paper.
func (w *Writer) WritePaper(rec types.PaperRecord) error {
	w.papers++

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", bannerWide)
	fmt.Fprintf(&b, "PAPER #%d\n", w.papers)
	fmt.Fprintf(&b, "%s\n\n", bannerWide)

	fmt.Fprintf(&b, "TITLE:\n%s\n\n", rec.Title)
	fmt.Fprintf(&b, "AUTHORS:\n%s\n\n", valueOr(rec.Byline, "Unknown"))
	if rec.Year != 0 {
		fmt.Fprintf(&b, "YEAR: %d\n", rec.Year)
	} else {
		fmt.Fprintf(&b, "YEAR: N/A\n")
	}
	fmt.Fprintf(&b, "SOURCE: %s\n", rec.Source)
	if rec.PDFURL != "" {
		fmt.Fprintf(&b, "PDF URL: %s\n", rec.PDFURL)
	}
	if rec.PDFPath != "" {
		fmt.Fprintf(&b, "LOCAL PDF: %s\n", rec.PDFPath)
	}

	fmt.Fprintf(&b, "\n%s\n", bannerNarrow)
	fmt.Fprintf(&b, "EVALUATION METRICS\n")
	fmt.Fprintf(&b, "%s\n\n", bannerNarrow)

	found := false
	for _, name := range metrics.Names {
		value, ok := rec.Metrics[name]
		if !ok {
			continue
		}
		found = true
		fmt.Fprintf(&b, "  %-15s: %s\n", displayName(name), formatValue(name, value))
	}
	if !found {
		fmt.Fprintf(&b, "  No metrics found.\n")
	}

	if len(rec.Datasets) > 0 {
		fmt.Fprintf(&b, "\n  DATASETS USED: %s\n", strings.Join(rec.Datasets, ", "))
	}
	if len(rec.Models) > 0 {
		fmt.Fprintf(&b, "  MODELS: %s\n", strings.Join(rec.Models, ", "))
	}

	return w.write(b.String())
}

// Close writes the summary footer and releases the file handle.
func (w *Writer) Close(accepted, attempted int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", bannerWide)
	if w.papers == 0 {
		fmt.Fprintf(&b, "No open access papers were found for this query.\n")
	}
	fmt.Fprintf(&b, "SUMMARY: %d accepted of %d attempted\n", accepted, attempted)
	fmt.Fprintf(&b, "END OF REPORT\n")
	fmt.Fprintf(&b, "%s\n", bannerWide)

	writeErr := w.write(b.String())
	closeErr := w.f.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return fmt.Errorf("closing report file: %w", closeErr)
	}
	return nil
}

func (w *Writer) write(s string) error {
	if _, err := w.f.WriteString(s); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// formatValue renders bounded metrics as both fraction and percentage;
// raw magnitudes are shown plain.
func formatValue(name string, value float64) string {
	if metrics.IsBounded(name) {
		return fmt.Sprintf("%.4f (%.2f%%)", value, value*100)
	}
	return fmt.Sprintf("%.4f", value)
}

// displayName turns a metric key into its report label, e.g. "f1_score"
// into "F1 SCORE".
func displayName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "_", " "))
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
