package evidence

import (
	"context"
	"strings"
	"testing"

	"github.com/codeready-toolchain/ctrleval/pkg/config"
	"github.com/codeready-toolchain/ctrleval/pkg/metrics"
	"github.com/codeready-toolchain/ctrleval/pkg/models"
	"github.com/codeready-toolchain/ctrleval/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoneProcessor(t *testing.T, maxTextPerFile, pdfThreshold int) *Processor {
	t.Helper()
	reg, err := provider.NewRegistry(context.Background(),
		&config.LLMConfig{Provider: config.LLMProviderMock, Model: "test-model"},
		&config.OCRConfig{Provider: config.OCRProviderNone},
		metrics.NoopRecorder{})
	require.NoError(t, err)
	return NewProcessor(reg.GetOCR(), maxTextPerFile, pdfThreshold)
}

func TestProcess_PlainText(t *testing.T) {
	p := newNoneProcessor(t, 20000, 200)
	files := []models.EvidenceFile{
		{FileName: "notes.txt", MimeType: models.MimeTypeText, Data: []byte("the control operated as expected")},
	}

	text, artifacts := p.Process(context.Background(), files)

	assert.Contains(t, text, "the control operated as expected")
	assert.Contains(t, text, "=== notes.txt ===")
	require.Len(t, artifacts, 1)
	assert.Equal(t, "highlighted_notes.txt", artifacts[0].FileName)
	assert.Empty(t, artifacts[0].Warning)
}

func TestProcess_Truncation(t *testing.T) {
	p := newNoneProcessor(t, 10, 200)
	files := []models.EvidenceFile{
		{FileName: "big.txt", MimeType: models.MimeTypeText, Data: []byte(strings.Repeat("a", 100))},
	}

	text, artifacts := p.Process(context.Background(), files)

	assert.Contains(t, text, truncationMarker)
	require.Len(t, artifacts, 1)
	assert.Contains(t, artifacts[0].Warning, "truncated")
}

func TestProcess_UnrecognizedMimeTypeIsolatesFailure(t *testing.T) {
	p := newNoneProcessor(t, 20000, 200)
	files := []models.EvidenceFile{
		{FileName: "good.txt", MimeType: models.MimeTypeText, Data: []byte("fine")},
		{FileName: "bad.bin", MimeType: "application/octet-stream", Data: []byte{0x01}},
	}

	text, artifacts := p.Process(context.Background(), files)

	assert.Contains(t, text, "fine")
	require.Len(t, artifacts, 2)
	assert.Empty(t, artifacts[0].Warning)
	assert.NotEmpty(t, artifacts[1].Warning)
}

func TestProcess_PDFEmbeddedTextAboveThreshold(t *testing.T) {
	p := newNoneProcessor(t, 20000, 5)
	pdf := []byte("1 0 obj << >> stream BT (approved by finance manager) Tj ET endstream endobj")
	files := []models.EvidenceFile{
		{FileName: "memo.pdf", MimeType: models.MimeTypePDF, Data: pdf},
	}

	text, artifacts := p.Process(context.Background(), files)

	assert.Contains(t, text, "approved by finance manager")
	require.Len(t, artifacts, 1)
	assert.Empty(t, artifacts[0].Warning)
}

func TestProcess_PDFBelowThresholdFallsBackToNoneOCR(t *testing.T) {
	// With the NONE OCR backend, a PDF under threshold still returns the
	// embedded text (noneOCRBackend.extract re-runs the same scan).
	p := newNoneProcessor(t, 20000, 10000)
	pdf := []byte("BT (hi) Tj ET")
	files := []models.EvidenceFile{
		{FileName: "scan.pdf", MimeType: models.MimeTypePDF, Data: pdf},
	}

	text, _ := p.Process(context.Background(), files)
	assert.Contains(t, text, "hi")
}

func TestProcess_EmptyFileListProducesNoArtifacts(t *testing.T) {
	p := newNoneProcessor(t, 20000, 200)
	text, artifacts := p.Process(context.Background(), nil)
	assert.Empty(t, text)
	assert.Empty(t, artifacts)
}
