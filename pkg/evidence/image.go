package evidence

import (
	"context"

	"github.com/codeready-toolchain/ctrleval/pkg/models"
)

// extractImage always routes through the OCR client; an image carries no
// embedded text layer to prefer.
func (p *Processor) extractImage(ctx context.Context, f models.EvidenceFile) (extraction, error) {
	text, blocks, err := p.ocr.Extract(ctx, f.Data, f.MimeType, "")
	if err != nil {
		return extraction{}, err
	}
	regions := make([]models.ArtifactRegion, 0, len(blocks))
	for _, b := range blocks {
		regions = append(regions, models.ArtifactRegion{PageIndex: b.PageIndex, BoundingBox: b.BoundingBox})
	}
	return extraction{text: text, regions: regions}, nil
}
