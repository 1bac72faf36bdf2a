// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceKind identifies how a paper's PDF was obtained.
type SourceKind string

const (
	// SourceScholarPDF is an explicit "[PDF]" link on the search result.
	SourceScholarPDF SourceKind = "scholar_pdf"

	// SourceArxiv is a PDF reconstructed from or resolved through arXiv.
	SourceArxiv SourceKind = "arxiv"

	// SourceDirect is a result link whose path ended in a PDF suffix.
	SourceDirect SourceKind = "direct"

	// SourceNone means no PDF bytes were ever obtained for the paper.
	SourceNone SourceKind = "none"
)

// PaperRecord accumulates the per-paper results of the pipeline. It is
// created once per accepted search result, populated incrementally by each
// stage, and discarded after serialization to the report.
//
// Invariants: Source is SourceNone iff no PDF was obtained; Metrics is empty
// iff text extraction failed or no pattern matched.
type PaperRecord struct {
	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Byline is the authors/venue/year string from the search result.
	Byline string `json:"byline" yaml:"byline"`

	// Year is the publication year, or 0 when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Source records how the PDF was obtained.
	Source SourceKind `json:"source" yaml:"source"`

	// PDFURL is the URL the PDF was downloaded from.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// PDFPath is the local filesystem path of the downloaded PDF.
	PDFPath string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`

	// Metrics maps metric name to its extracted value. Bounded metrics
	// (accuracy through sensitivity) are normalized to [0,1]; MAE, MSE,
	// RMSE, BLEU, and ROUGE are raw magnitudes.
	Metrics map[string]float64 `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Datasets lists distinct dataset names mentioned in the text, lowercase, sorted.
	Datasets []string `json:"datasets,omitempty" yaml:"datasets,omitempty"`

	// Models lists distinct model/architecture names mentioned, lowercase, sorted.
	Models []string `json:"models,omitempty" yaml:"models,omitempty"`
}
