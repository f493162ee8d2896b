package provider

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// tesseractOCRBackend shells out to a configured tesseract binary — the one
// backend with no idiomatic Go SDK to wire, matching spec.md §9's TESSERACT
// provider identifier (ocr.commandPath).
type tesseractOCRBackend struct {
	commandPath string
}

func newTesseractOCRBackend(commandPath string) *tesseractOCRBackend {
	if commandPath == "" {
		commandPath = "tesseract"
	}
	return &tesseractOCRBackend{commandPath: commandPath}
}

func (b *tesseractOCRBackend) extract(ctx context.Context, buf []byte, mimeType, language string) (string, []StructuredBlock, error) {
	tmp, err := os.CreateTemp("", "ctrleval-ocr-*.img")
	if err != nil {
		return "", nil, fmt.Errorf("%w: creating temp file: %v", ErrUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return "", nil, fmt.Errorf("%w: writing temp file: %v", ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return "", nil, fmt.Errorf("%w: closing temp file: %v", ErrUnavailable, err)
	}

	if language == "" {
		language = "eng"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, b.commandPath, tmp.Name(), "stdout", "-l", language)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", nil, ErrTimeout
		}
		return "", nil, fmt.Errorf("%w: tesseract: %v: %s", ErrUnavailable, err, stderr.String())
	}

	return stdout.String(), nil, nil
}
