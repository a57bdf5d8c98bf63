package services

// TextChunker slices a formatted reply into fixed-size pieces for the
// streaming chat endpoint.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText implements TextChunker. Chunks are cut on rune boundaries so a
// multi-byte character is never split across two stream events.
func (tc *textChunker) ChunkText(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 64
	}

	if text == "" {
		return nil
	}

	runes := []rune(text)

	chunks := make([]string, 0, len(runes)/maxChunkSize+1)
	for start := 0; start < len(runes); start += maxChunkSize {
		end := start + maxChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
