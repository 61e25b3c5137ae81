package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/studypilot/backend/internal/generation"
	"github.com/studypilot/backend/pkg/textextract"
)

// imageExtensions maps the OCR-supported image subtypes to file extensions
// tesseract will accept. Anything outside this set fails fast before any
// file I/O.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/bmp":  ".bmp",
	"image/webp": ".webp",
}

// Extractor converts stored document bytes into plain text, dispatching on
// the declared media type. It never mutates the document row.
type Extractor struct {
	ocr *OCRService
}

func NewExtractor(ocr *OCRService) *Extractor {
	return &Extractor{ocr: ocr}
}

func (e *Extractor) Extract(ctx context.Context, data []byte, mediaType string) (*generation.ExtractedContent, error) {
	mt := normalizeMediaType(mediaType)

	switch {
	case strings.HasPrefix(mt, "image/"):
		return e.extractImage(ctx, data, mt)
	case mt == "application/pdf":
		return extractPDF(data)
	case mt == "text/plain" || mt == "text/markdown":
		result := textextract.ExtractPlainText(data)
		return &generation.ExtractedContent{Text: result.Content, Pages: result.Pages}, nil
	default:
		return nil, generation.Errf(generation.KindUnsupportedFormat, "unsupported media type: %s", mediaType)
	}
}

func (e *Extractor) extractImage(ctx context.Context, data []byte, mediaType string) (*generation.ExtractedContent, error) {
	ext, ok := imageExtensions[mediaType]
	if !ok {
		return nil, generation.Errf(generation.KindUnsupportedFormat, "unsupported image subtype: %s", mediaType)
	}

	if !e.ocr.Available() {
		return nil, generation.Errf(generation.KindExtractionFailed, "OCR backend unavailable")
	}

	tmp, err := os.CreateTemp("", "ocr-*"+ext)
	if err != nil {
		return nil, generation.Wrap(generation.KindExtractionFailed, "create temp image", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, generation.Wrap(generation.KindExtractionFailed, "write temp image", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, generation.Wrap(generation.KindExtractionFailed, "close temp image", err)
	}

	text, err := e.ocr.ExtractText(ctx, tmp.Name())
	if err != nil {
		return nil, generation.Wrap(generation.KindExtractionFailed, "run OCR", err)
	}
	if text == "" {
		return nil, generation.Errf(generation.KindExtractionFailed, "no readable text found in image %s", filepath.Base(tmp.Name()))
	}

	return &generation.ExtractedContent{Text: text, Pages: 1, FromImage: true}, nil
}

func extractPDF(data []byte) (*generation.ExtractedContent, error) {
	result, err := textextract.ExtractPDF(data)
	if err != nil {
		return nil, generation.Wrap(generation.KindExtractionFailed, "extract PDF text", err)
	}
	if result.Content == "" {
		return nil, generation.Errf(generation.KindExtractionFailed, "no embedded text layer in PDF (%d pages, likely scanned)", result.Pages)
	}
	return &generation.ExtractedContent{Text: result.Content, Pages: result.Pages}, nil
}

// normalizeMediaType strips parameters like "; charset=utf-8" and lowercases.
func normalizeMediaType(mt string) string {
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
