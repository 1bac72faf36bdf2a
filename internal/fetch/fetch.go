// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads candidate PDFs and persists accepted ones.
// Every failure is classified so the orchestrator can report why a
// candidate was skipped; none of them are fatal to a run.
package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/Laam24/research-paper-extractor/internal/httputil"
	"github.com/Laam24/research-paper-extractor/pkg/types"
)

const (
	rawDir      = "raw"
	metadataDir = "metadata"
)

// FailReason classifies why a download was rejected.
type FailReason string

const (
	// ReasonForbidden: the server answered 403, typically a paywall.
	ReasonForbidden FailReason = "forbidden"

	// ReasonHTTPStatus: any other non-2xx response.
	ReasonHTTPStatus FailReason = "http-status"

	// ReasonTimeout: the request exceeded the client timeout.
	ReasonTimeout FailReason = "timeout"

	// ReasonWrongContentType: the body is not a PDF, e.g. an HTML landing page.
	ReasonWrongContentType FailReason = "wrong-content-type"
)

// DownloadError reports a classified, non-fatal download failure.
type DownloadError struct {
	URL    string
	Reason FailReason
	Status int
	Err    error
}

func (e *DownloadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("download failed: %s (HTTP %d) from %s", e.Reason, e.Status, e.URL)
	}
	return fmt.Sprintf("download failed: %s from %s", e.Reason, e.URL)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Fetch performs the GET for a resolved candidate URL and returns the raw
// PDF bytes. A non-2xx status, a timeout, or a non-PDF body produce a
// *DownloadError; other transport errors are returned wrapped.
func Fetch(client *http.Client, url string, cfg types.HTTPConfig) ([]byte, error) {
	req, err := httputil.NewRequest(url, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &DownloadError{URL: url, Reason: ReasonTimeout, Err: err}
		}
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, &DownloadError{URL: url, Reason: ReasonForbidden, Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &DownloadError{URL: url, Reason: ReasonHTTPStatus, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &DownloadError{URL: url, Reason: ReasonTimeout, Err: err}
		}
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if !httputil.LooksLikePDF(resp.Header.Get("Content-Type"), data) {
		return nil, &DownloadError{URL: url, Reason: ReasonWrongContentType, Status: resp.StatusCode}
	}
	return data, nil
}

// isTimeout reports whether err is a deadline/timeout transport error.
func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "context deadline exceeded")
}

// unsafeChars strips everything but word characters, spaces, and hyphens
// when building filenames from titles.
var unsafeChars = regexp.MustCompile(`[^\w\s-]`)

// PDFFileName builds the on-disk name for an accepted paper:
// "<kind>_<n>_<title stem>.pdf" with the stem cut to 40 characters.
func PDFFileName(kind types.SourceKind, n int, title string) string {
	stem := unsafeChars.ReplaceAllString(title, "")
	if len(stem) > 40 {
		stem = stem[:40]
	}
	stem = strings.Join(strings.Fields(stem), " ")
	stem = strings.TrimSpace(stem)
	if stem == "" {
		stem = "untitled"
	}
	return fmt.Sprintf("%s_%d_%s.pdf", kind, n, stem)
}

// SavePDF writes PDF bytes under papersDir/raw/ via a temporary file
// renamed on success, so a crash never leaves a truncated PDF behind.
// It returns the final path.
func SavePDF(papersDir, fileName string, data []byte) (string, error) {
	dir := filepath.Join(papersDir, rawDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	destPath := filepath.Join(dir, fileName)
	if _, err := os.Stat(destPath); err == nil {
		return destPath, nil
	}

	tmpFile, err := os.CreateTemp(dir, ".fetch-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing download: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return destPath, nil
}

// SaveMetadata writes the paper record as YAML under papersDir/metadata/,
// named after the PDF file. The metadata file is the durable sidecar of the
// download: reports can be regenerated from it without refetching.
func SaveMetadata(papersDir, pdfFileName string, rec types.PaperRecord) (string, error) {
	dir := filepath.Join(papersDir, metadataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshaling metadata: %w", err)
	}

	name := strings.TrimSuffix(pdfFileName, ".pdf") + ".yaml"
	destPath := filepath.Join(dir, name)
	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing metadata %s: %w", destPath, err)
	}
	return destPath, nil
}
