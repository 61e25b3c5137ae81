package document

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// OCRService wraps the tesseract binary. It is created once at startup and
// injected into the extractor; availability is checked explicitly so that a
// missing binary surfaces as a normal extraction error, not a panic deep in
// a run.
type OCRService struct {
	binPath  string
	language string
}

func NewOCRService() *OCRService {
	path, _ := exec.LookPath("tesseract")
	if path == "" {
		path = "tesseract"
	}
	return &OCRService{binPath: path, language: "eng"}
}

func (o *OCRService) Available() bool {
	return exec.Command(o.binPath, "--version").Run() == nil
}

// ExtractText runs OCR over the image at imagePath and returns the
// recognized text, trimmed.
func (o *OCRService) ExtractText(ctx context.Context, imagePath string) (string, error) {
	cmd := exec.CommandContext(ctx, o.binPath, imagePath, "stdout", "-l", o.language)

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract OCR: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}
