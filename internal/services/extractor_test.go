package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestExtractPlainTextFile(t *testing.T) {
	e := NewTextExtractor()

	path := writeTempFile(t, "cv.txt", []byte("John Doe\nSoftware Engineer\n"))

	result := e.Extract(path)
	require.True(t, result.OK())
	assert.Contains(t, result.Text, "John Doe")
	assert.Contains(t, result.Text, "Software Engineer")
}

func TestExtractPlainTextDropsUndecodableBytes(t *testing.T) {
	e := NewTextExtractor()

	content := append([]byte("readable "), 0xff, 0xfe)
	content = append(content, []byte(" text")...)
	path := writeTempFile(t, "cv.txt", content)

	result := e.Extract(path)
	require.True(t, result.OK())
	assert.Contains(t, result.Text, "readable")
	assert.Contains(t, result.Text, "text")
}

func TestExtractMissingFileCollectsReasons(t *testing.T) {
	e := NewTextExtractor()

	result := e.Extract(filepath.Join(t.TempDir(), "nope.txt"))
	assert.False(t, result.OK())
	assert.NotEmpty(t, result.Failures)
}

func TestExtractUnsupportedExtensionFallsBackToRaw(t *testing.T) {
	e := NewTextExtractor()

	path := writeTempFile(t, "cv.rtf", []byte("plain enough text inside"))

	result := e.Extract(path)
	require.True(t, result.OK())
	assert.Contains(t, result.Text, "plain enough text")
	// The unsupported-extension reason is still recorded.
	assert.NotEmpty(t, result.Failures)
	assert.Contains(t, result.Failures[0], "unsupported file extension")
}

func TestExtractBrokenPDFReportsEveryAttempt(t *testing.T) {
	e := NewTextExtractor()

	// Not a parsable PDF for either library, and the raw decode is rejected
	// as PDF structure.
	path := writeTempFile(t, "cv.pdf", []byte("%PDF-1.4\n1 0 obj\nendobj\n"))

	result := e.Extract(path)
	assert.False(t, result.OK())
	require.GreaterOrEqual(t, len(result.Failures), 2)
	joined := strings.Join(result.Failures, "; ")
	assert.Contains(t, joined, "primary PDF")
	assert.Contains(t, joined, "fallback PDF")
}

func TestLooksLikeRawPDF(t *testing.T) {
	assert.True(t, looksLikeRawPDF("%PDF-1.7 garbage"))
	assert.True(t, looksLikeRawPDF("1 0 obj << /Type /Page >> endobj"))
	assert.True(t, looksLikeRawPDF("content with /Font references"))
	assert.False(t, looksLikeRawPDF("A perfectly normal CV about live streaming and objectives."))

	// Low printable ratio in the sample counts as structure.
	assert.True(t, looksLikeRawPDF(strings.Repeat("\x00\x01", 500)))
}

func TestPrintableRatio(t *testing.T) {
	assert.Equal(t, 1.0, printableRatio("hello world"))
	assert.Less(t, printableRatio("\x00\x01\x02\x03ab"), 0.7)
}
