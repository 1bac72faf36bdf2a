// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext converts PDF bytes into plain text. Corrupt, encrypted,
// or image-only documents are reported as explicit failures or empty text,
// never as a panic or a nil value propagated downstream.
package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPages bounds how many pages are read per document. Evaluation tables
// appear well before this in practice, and some scanned PDFs run to
// hundreds of image-only pages.
const maxPages = 20

// Extract returns the plain text of a PDF, concatenating page text in page
// order. Pages that fail individually are skipped; a document that opens
// but yields no text returns an empty string with a nil error. The pdf
// library panics on some malformed inputs, so extraction is wrapped with a
// recover that converts the panic into an error.
func Extract(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parsing PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	var b strings.Builder
	pages := reader.NumPage()
	if pages > maxPages {
		pages = maxPages
	}
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		if pageText != "" {
			b.WriteString(pageText)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// ExtractFile reads a PDF from disk and extracts its text.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Extract(data)
}
