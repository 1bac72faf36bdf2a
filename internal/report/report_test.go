// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Laam24/research-paper-extractor/pkg/types"
)

var testHeader = Header{
	Query:       "object detection",
	GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
}

func writeReport(t *testing.T, path string, records []types.PaperRecord) string {
	t.Helper()
	w, err := NewWriter(path, testHeader)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	accepted := 0
	for _, rec := range records {
		if err := w.WritePaper(rec); err != nil {
			t.Fatalf("WritePaper: %v", err)
		}
		accepted++
	}
	if err := w.Close(accepted, accepted+1); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	return string(data)
}

func TestReportLayout(t *testing.T) {
	rec := types.PaperRecord{
		Title:   "Vision Transformers at Scale",
		Byline:  "A Smith, B Jones - NeurIPS, 2023",
		Year:    2023,
		Source:  types.SourceArxiv,
		PDFURL:  "https://arxiv.org/pdf/2301.00001",
		PDFPath: "papers/raw/arxiv_1_vision_transformers_at_scale.pdf",
		Metrics: map[string]float64{
			"accuracy": 0.98,
			"rmse":     4.32,
		},
		Datasets: []string{"coco", "imagenet"},
		Models:   []string{"resnet", "vit"},
	}

	out := writeReport(t, filepath.Join(t.TempDir(), "report.txt"), []types.PaperRecord{rec})

	for _, want := range []string{
		"OPEN ACCESS PAPER SEARCH RESULTS",
		"Search Query: object detection",
		"Generated: 2026-03-14 09:30:00",
		"PAPER #1",
		"TITLE:\nVision Transformers at Scale",
		"AUTHORS:\nA Smith, B Jones - NeurIPS, 2023",
		"YEAR: 2023",
		"SOURCE: arxiv",
		"PDF URL: https://arxiv.org/pdf/2301.00001",
		"LOCAL PDF: papers/raw/arxiv_1_vision_transformers_at_scale.pdf",
		"EVALUATION METRICS",
		"ACCURACY       : 0.9800 (98.00%)",
		"RMSE           : 4.3200",
		"DATASETS USED: coco, imagenet",
		"MODELS: resnet, vit",
		"SUMMARY: 1 accepted of 2 attempted",
		"END OF REPORT",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\nfull report:\n%s", want, out)
		}
	}

	// Bounded metric ordering follows the canonical metric order, so
	// accuracy must come before rmse.
	if strings.Index(out, "ACCURACY") > strings.Index(out, "RMSE") {
		t.Error("metrics not in canonical order")
	}
}

func TestReportNoMetrics(t *testing.T) {
	rec := types.PaperRecord{
		Title:  "A Paper Without Numbers",
		Source: types.SourceScholarPDF,
	}
	out := writeReport(t, filepath.Join(t.TempDir(), "report.txt"), []types.PaperRecord{rec})

	if !strings.Contains(out, "No metrics found.") {
		t.Error("missing no-metrics line")
	}
	if !strings.Contains(out, "AUTHORS:\nUnknown") {
		t.Error("missing authors fallback")
	}
	if !strings.Contains(out, "YEAR: N/A") {
		t.Error("missing year fallback")
	}
	if strings.Contains(out, "DATASETS USED") || strings.Contains(out, "MODELS:") {
		t.Error("empty vocab lists should be omitted")
	}
}

func TestReportNoPapers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	w, err := NewWriter(path, testHeader)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Close(0, 3); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, _ := os.ReadFile(path)
	out := string(data)

	if !strings.Contains(out, "No open access papers were found for this query.") {
		t.Error("missing empty-run notice")
	}
	if !strings.Contains(out, "SUMMARY: 0 accepted of 3 attempted") {
		t.Error("missing summary line")
	}
}

func TestReportIdempotent(t *testing.T) {
	recs := []types.PaperRecord{
		{
			Title:   "Deterministic Output",
			Source:  types.SourceDirect,
			Metrics: map[string]float64{"f1_score": 0.91, "precision": 0.93},
		},
	}
	dir := t.TempDir()
	first := writeReport(t, filepath.Join(dir, "a.txt"), recs)
	second := writeReport(t, filepath.Join(dir, "b.txt"), recs)
	if first != second {
		t.Error("identical inputs produced different reports")
	}
}

func TestReportCreateFailure(t *testing.T) {
	_, err := NewWriter(filepath.Join(t.TempDir(), "missing", "report.txt"), testHeader)
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
