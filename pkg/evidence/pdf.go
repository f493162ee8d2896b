package evidence

import (
	"context"

	"github.com/codeready-toolchain/ctrleval/pkg/models"
	"github.com/codeready-toolchain/ctrleval/pkg/provider"
)

// extractPDF prefers the PDF's embedded text layer; when it's empty or
// shorter than pdfTextThreshold characters (scanned/image-only PDFs), it
// falls back to the configured OCR backend, per spec.md §4.2 step 2.
func (p *Processor) extractPDF(ctx context.Context, f models.EvidenceFile) (extraction, error) {
	embedded := provider.ExtractPDFEmbeddedText(f.Data)
	if len(embedded) >= p.pdfTextThreshold {
		return extraction{text: embedded}, nil
	}

	text, blocks, err := p.ocr.Extract(ctx, f.Data, f.MimeType, "")
	if err != nil {
		if embedded != "" {
			// OCR fallback failed but some embedded text survives; prefer
			// a partial result over a hard failure.
			return extraction{text: embedded, warning: "ocr fallback failed: " + err.Error()}, nil
		}
		return extraction{}, err
	}

	if len(text) < len(embedded) {
		text = embedded
	}
	regions := make([]models.ArtifactRegion, 0, len(blocks))
	for _, b := range blocks {
		regions = append(regions, models.ArtifactRegion{PageIndex: b.PageIndex, BoundingBox: b.BoundingBox})
	}
	return extraction{text: text, regions: regions}, nil
}
