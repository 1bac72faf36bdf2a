// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laam24/research-paper-extractor/pkg/types"
)

func TestNewClientTimeout(t *testing.T) {
	c := NewClient(types.HTTPConfig{Timeout: 5 * time.Second})
	assert.Equal(t, 5*time.Second, c.Timeout)

	c = NewClient(types.HTTPConfig{})
	assert.Equal(t, 30*time.Second, c.Timeout, "zero timeout falls back to default")
}

func TestNewRequestUserAgent(t *testing.T) {
	req, err := NewRequest("https://example.com/paper.pdf", types.HTTPConfig{UserAgent: "paperscan-test/0.1"})
	require.NoError(t, err)
	assert.Equal(t, "paperscan-test/0.1", req.Header.Get("User-Agent"))

	req, err = NewRequest("https://example.com/", types.HTTPConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, req.Header.Get("User-Agent"))
}

func TestLooksLikePDF(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        []byte
		want        bool
	}{
		{"pdf content type", "application/pdf", []byte("whatever"), true},
		{"pdf content type with charset", "Application/PDF; charset=binary", nil, true},
		{"magic bytes only", "application/octet-stream", []byte("%PDF-1.4 stuff"), true},
		{"html landing page", "text/html", []byte("<html><body>Sign in</body></html>"), false},
		{"empty", "", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikePDF(tt.contentType, tt.body))
		})
	}
}
