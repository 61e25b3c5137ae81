package document

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studypilot/backend/internal/generation"
)

func TestExtractPlainText(t *testing.T) {
	e := NewExtractor(NewOCRService())

	content, err := e.Extract(context.Background(), []byte("  Notes on the Krebs cycle.  "), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "Notes on the Krebs cycle.", content.Text)
	assert.Equal(t, 1, content.Pages)
	assert.False(t, content.FromImage)
}

func TestExtractMarkdown(t *testing.T) {
	e := NewExtractor(NewOCRService())

	content, err := e.Extract(context.Background(), []byte("# Heading\n\nBody text."), "text/markdown")
	require.NoError(t, err)
	assert.Contains(t, content.Text, "Body text.")
}

func TestExtractNormalizesMediaType(t *testing.T) {
	e := NewExtractor(NewOCRService())

	content, err := e.Extract(context.Background(), []byte("hello"), "text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "hello", content.Text)

	content, err = e.Extract(context.Background(), []byte("hello"), "TEXT/PLAIN")
	require.NoError(t, err)
	assert.Equal(t, "hello", content.Text)
}

func TestExtractUnsupportedMediaType(t *testing.T) {
	e := NewExtractor(NewOCRService())

	for _, mt := range []string{"application/zip", "video/mp4", "application/msword", ""} {
		_, err := e.Extract(context.Background(), []byte("data"), mt)
		require.Error(t, err, "media type %q", mt)
		assert.Equal(t, generation.KindUnsupportedFormat, generation.KindOf(err))
	}
}

func TestExtractUnsupportedImageSubtypeFailsFast(t *testing.T) {
	e := NewExtractor(NewOCRService())

	// tiff is outside the OCR allow-list; this must fail before touching
	// the OCR binary or the filesystem.
	_, err := e.Extract(context.Background(), []byte("data"), "image/tiff")
	require.Error(t, err)
	assert.Equal(t, generation.KindUnsupportedFormat, generation.KindOf(err))
}

func TestExtractCorruptPDF(t *testing.T) {
	e := NewExtractor(NewOCRService())

	_, err := e.Extract(context.Background(), []byte("not a pdf at all"), "application/pdf")
	require.Error(t, err)
	assert.Equal(t, generation.KindExtractionFailed, generation.KindOf(err))
}
