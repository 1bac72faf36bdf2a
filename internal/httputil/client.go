// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/Laam24/research-paper-extractor/pkg/types"
)

// DefaultUserAgent is sent when the configuration does not supply one.
// A browser-like agent reduces blocking by search engines and publishers.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// pdfMagic is the signature at the start of every PDF file.
var pdfMagic = []byte("%PDF")

// NewClient builds the HTTP client used by all network stages. Requests
// block with the configured timeout, bounding the worst-case stall per
// candidate. Redirects are followed by default, which DOI-style resolver
// URLs rely on.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// NewRequest creates a GET request carrying the configured User-Agent.
func NewRequest(url string, cfg types.HTTPConfig) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	return req, nil
}

// LooksLikePDF reports whether a response body is a PDF, judged by the
// Content-Type header or the %PDF magic bytes. HTML landing pages served
// in place of a paywalled PDF fail both checks.
func LooksLikePDF(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "application/pdf") {
		return true
	}
	return bytes.HasPrefix(body, pdfMagic)
}
