package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"code.sajari.com/docconv"
	dslipak "github.com/dslipak/pdf"
	"github.com/ledongthuc/pdf"
)

// ExtractionResult carries either the extracted plain text or the ordered
// list of human-readable reasons every attempted method failed. Extraction
// never returns a Go error to its caller.
type ExtractionResult struct {
	Text     string
	Failures []string
}

func (r ExtractionResult) OK() bool {
	return strings.TrimSpace(r.Text) != ""
}

type TextExtractor interface {
	Extract(filePath string) ExtractionResult
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// Extract implements TextExtractor. Dispatch is by filename suffix; every
// branch falls through to a raw permissive decode before giving up.
func (e *textExtractor) Extract(filePath string) ExtractionResult {
	var failures []string

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".txt":
		text, reason := extractPlainText(filePath)
		if text != "" {
			return ExtractionResult{Text: text}
		}
		failures = append(failures, reason)

	case ".pdf":
		text, reasons := extractPDF(filePath)
		if text != "" {
			return ExtractionResult{Text: text}
		}
		failures = append(failures, reasons...)

	case ".docx", ".doc":
		text, reason := extractWordDocument(filePath)
		if text != "" {
			return ExtractionResult{Text: text}
		}
		failures = append(failures, reason)

	default:
		failures = append(failures, fmt.Sprintf("unsupported file extension %q", filepath.Ext(filePath)))
	}

	// Last resort for every branch: raw bytes, decoded permissively. A PDF
	// read this way is still its object graph, not text, so it stays a failure.
	if raw, err := os.ReadFile(filePath); err != nil {
		failures = append(failures, fmt.Sprintf("raw read failed: %v", err))
	} else if text := permissiveDecode(raw); strings.TrimSpace(text) != "" && !looksLikeRawPDF(text) {
		return ExtractionResult{Text: text, Failures: failures}
	} else {
		failures = append(failures, "raw decode produced no readable text")
	}

	return ExtractionResult{Failures: failures}
}

func extractPlainText(filePath string) (string, string) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Sprintf("txt read failed: %v", err)
	}

	text := permissiveDecode(raw)
	if strings.TrimSpace(text) == "" {
		return "", "txt file contains no readable text"
	}

	return text, ""
}

// extractPDF tries the primary library page by page; if the joined output is
// empty or still looks like raw PDF internals it tries the secondary library.
func extractPDF(filePath string) (string, []string) {
	var reasons []string

	text, reason := extractPDFPrimary(filePath)
	if reason != "" {
		reasons = append(reasons, reason)
	} else if looksLikeRawPDF(text) {
		reasons = append(reasons, "primary PDF extraction returned raw PDF structure instead of text")
	} else {
		return text, nil
	}

	text, reason = extractPDFFallback(filePath)
	if reason != "" {
		reasons = append(reasons, reason)
		return "", reasons
	}
	if looksLikeRawPDF(text) {
		reasons = append(reasons, "fallback PDF extraction returned raw PDF structure instead of text")
		return "", reasons
	}

	return text, reasons
}

func extractPDFPrimary(filePath string) (string, string) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Sprintf("primary PDF open failed: %v", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip the broken page, keep the rest.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", "primary PDF extraction found no text content"
	}

	return text, ""
}

func extractPDFFallback(filePath string) (string, string) {
	r, err := dslipak.Open(filePath)
	if err != nil {
		return "", fmt.Sprintf("fallback PDF open failed: %v", err)
	}

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Sprintf("fallback PDF extraction failed: %v", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Sprintf("fallback PDF read failed: %v", err)
	}

	text := buf.String()
	if strings.TrimSpace(text) == "" {
		return "", "fallback PDF extraction found no text content"
	}

	return text, ""
}

func extractWordDocument(filePath string) (string, string) {
	res, err := docconv.ConvertPath(filePath)
	if err != nil {
		return "", fmt.Sprintf("word document extraction failed: %v", err)
	}

	if res == nil || strings.TrimSpace(res.Body) == "" {
		return "", "word document contains no readable text"
	}

	return res.Body, ""
}

// pdfStructureMarkers show up when an extractor hands back the file's internal
// object graph instead of page text.
var pdfStructureMarkers = []string{"%PDF", "endobj", "/Type", "/Font", "endstream"}

// looksLikeRawPDF samples the first 1000 characters and reports whether the
// "extracted" text is really undigested PDF structure.
func looksLikeRawPDF(text string) bool {
	sample := text
	if len(sample) > 1000 {
		sample = sample[:1000]
	}

	for _, marker := range pdfStructureMarkers {
		if strings.Contains(sample, marker) {
			return true
		}
	}

	return printableRatio(sample) < 0.7
}

func printableRatio(s string) float64 {
	if s == "" {
		return 1
	}

	total, printable := 0, 0
	for _, r := range s {
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}

	return float64(printable) / float64(total)
}

// permissiveDecode drops undecodable bytes and control garbage, keeping
// whatever reads as text.
func permissiveDecode(raw []byte) string {
	var sb strings.Builder
	for _, r := range string(raw) {
		if r == '�' {
			continue
		}
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
