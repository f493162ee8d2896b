// Package evidence implements the Evidence Processor (spec.md §4.2): it
// turns a batch of raw EvidenceFile attachments into prompt-ready text plus
// annotated artifacts returned to the client.
package evidence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/codeready-toolchain/ctrleval/pkg/models"
	"github.com/codeready-toolchain/ctrleval/pkg/provider"
)

const truncationMarker = "\n... [truncated]"

// Processor dispatches by mime type to the extraction function for that
// format, falling back to OCR for image-only PDFs.
type Processor struct {
	ocr              *provider.OCRClient
	maxTextPerFile   int
	pdfTextThreshold int
}

// NewProcessor constructs a Processor. maxTextPerFile caps the extracted
// text kept per file before the LLM prompt is assembled; pdfTextThreshold
// is the minimum embedded-text length below which a PDF is re-run through
// OCR (spec.md §4.2 step 2).
func NewProcessor(ocr *provider.OCRClient, maxTextPerFile, pdfTextThreshold int) *Processor {
	if maxTextPerFile <= 0 {
		maxTextPerFile = 20000
	}
	return &Processor{ocr: ocr, maxTextPerFile: maxTextPerFile, pdfTextThreshold: pdfTextThreshold}
}

// extraction is the result of running one EvidenceFile through its
// format-specific extractor.
type extraction struct {
	text    string
	regions []models.ArtifactRegion
	warning string
}

// Process extracts text and builds annotated artifacts for every file in
// order. A single file's extraction failure never aborts the batch
// (spec.md §4.2 failure semantics): it contributes empty text and a
// warning recorded on that file's artifact.
func (p *Processor) Process(ctx context.Context, files []models.EvidenceFile) (string, []models.AnnotatedArtifact) {
	var prompt strings.Builder
	artifacts := make([]models.AnnotatedArtifact, 0, len(files))

	for _, f := range files {
		ex := p.extractOne(ctx, f)

		text := ex.text
		truncated := false
		if len(text) > p.maxTextPerFile {
			text = text[:p.maxTextPerFile] + truncationMarker
			truncated = true
		}

		if text != "" {
			name := f.OriginalFileName
			if name == "" {
				name = f.FileName
			}
			fmt.Fprintf(&prompt, "=== %s ===\n%s\n\n", name, text)
		}

		artifacts = append(artifacts, buildArtifact(f, ex, truncated))
	}

	return prompt.String(), artifacts
}

func (p *Processor) extractOne(ctx context.Context, f models.EvidenceFile) extraction {
	var ex extraction
	var err error

	switch f.MimeType {
	case models.MimeTypePDF:
		ex, err = p.extractPDF(ctx, f)
	case models.MimeTypePNG, models.MimeTypeJPEG, models.MimeTypeGIF:
		ex, err = p.extractImage(ctx, f)
	case models.MimeTypeXLSX:
		ex, err = extractSpreadsheet(f)
	case models.MimeTypeDOCX:
		ex, err = extractDocument(f)
	case models.MimeTypeText:
		ex = extraction{text: string(f.Data)}
	default:
		err = fmt.Errorf("unrecognized mime type %q", f.MimeType)
	}

	if err != nil {
		slog.Warn("evidence extraction failed", "file", f.FileName, "mime_type", f.MimeType, "error", err)
		return extraction{warning: err.Error()}
	}
	return ex
}

func buildArtifact(f models.EvidenceFile, ex extraction, truncated bool) models.AnnotatedArtifact {
	name := f.OriginalFileName
	if name == "" {
		name = f.FileName
	}
	warning := ex.warning
	if truncated {
		if warning != "" {
			warning += "; "
		}
		warning += "extracted text truncated"
	}
	return models.AnnotatedArtifact{
		FileName:         "highlighted_" + name,
		OriginalFileName: name,
		Base64:           encodeBase64(f.Data),
		Regions:          ex.regions,
		Warning:          warning,
	}
}
