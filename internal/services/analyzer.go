package services

import (
	"context"
	"fmt"
	"strings"
)

// ExtractionError carries the per-method failure reasons when no extraction
// method produced text from an upload.
type ExtractionError struct {
	Failures []string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract text from file: %s", strings.Join(e.Failures, "; "))
}

type CVAnalyzerService interface {
	AnalyzeFile(ctx context.Context, filePath string) (string, error)
}

type cvAnalyzerService struct {
	extractor     TextExtractor
	geminiService GeminiService
	formatter     ResponseFormatter
	promptBuilder *PromptBuilder
	maxTextLength int
	maxRetries    int
}

func NewCVAnalyzerService(
	extractor TextExtractor,
	geminiService GeminiService,
	formatter ResponseFormatter,
	maxTextLength int,
	maxRetries int,
) CVAnalyzerService {
	return &cvAnalyzerService{
		extractor:     extractor,
		geminiService: geminiService,
		formatter:     formatter,
		promptBuilder: NewPromptBuilder(),
		maxTextLength: maxTextLength,
		maxRetries:    maxRetries,
	}
}

// AnalyzeFile implements CVAnalyzerService. Stateless one-shot pipeline:
// extract text, cap it, ask the model for the four assessment sections,
// format the reply. Returns *ExtractionError when every extraction method
// failed.
func (s *cvAnalyzerService) AnalyzeFile(ctx context.Context, filePath string) (string, error) {
	result := s.extractor.Extract(filePath)
	if !result.OK() {
		return "", &ExtractionError{Failures: result.Failures}
	}

	cvText := truncateRunes(result.Text, s.maxTextLength)

	prompt := s.promptBuilder.BuildCVAnalysisPrompt(cvText)

	reply, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, s.maxRetries)
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}

	return s.formatter.Format(reply), nil
}
