package textextract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type ExtractedText struct {
	Content string
	Pages   int
}

// ExtractPDF pulls the embedded text layer out of a PDF. Pages without a
// readable text layer are skipped; a wholly scanned PDF therefore yields
// empty content, which callers must treat as an extraction failure.
func ExtractPDF(data []byte) (*ExtractedText, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	var buf strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}

	return &ExtractedText{
		Content: strings.TrimSpace(buf.String()),
		Pages:   numPages,
	}, nil
}

// ExtractPlainText reads a plain-text document as-is.
func ExtractPlainText(data []byte) *ExtractedText {
	return &ExtractedText{
		Content: string(bytes.TrimSpace(data)),
		Pages:   1,
	}
}
