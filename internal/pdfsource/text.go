package pdfsource

import (
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

const maxTextSize = 10 * 1024 * 1024 // 10MB text limit

// TextReader extracts plain text lines from PDF pages
type TextReader struct {
	debugMode bool
}

// NewTextReader creates a new text line reader
func NewTextReader(debugMode bool) *TextReader {
	return &TextReader{
		debugMode: debugMode,
	}
}

// Lines returns the ordered, whitespace-trimmed, non-empty text lines of the
// document, pages concatenated in reading order. The slice is empty when the
// file cannot be opened or yields no text; a failing page only skips that
// page.
func (tr *TextReader) Lines(path string) []string {
	text := tr.text(path)
	if text == "" {
		return nil
	}

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// text extracts the raw text of all pages
func (tr *TextReader) text(path string) (content string) {
	// The underlying PDF library panics on some malformed documents; a bad
	// upload must degrade to an empty source, never crash the request.
	defer func() {
		if r := recover(); r != nil {
			if tr.debugMode {
				log.Printf("text source: recovered while reading %s: %v", path, r)
			}
			content = ""
		}
	}()

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		if tr.debugMode {
			log.Printf("text source: cannot open %s: %v", path, err)
		}
		return ""
	}
	defer f.Close()

	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		if totalLength+len(pageText) > maxTextSize {
			remaining := maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(pageText[:remaining])
			}
			break
		}

		builder.WriteString(pageText)
		builder.WriteString("\n")
		totalLength += len(pageText)
	}

	return builder.String()
}
