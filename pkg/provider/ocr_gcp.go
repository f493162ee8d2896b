package provider

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

// gcpOCRBackend calls the Cloud Vision REST API via the generated
// google.golang.org/api/vision/v1 client — the generic Google API client
// library axonflow also depends on, here exercising its Vision surface
// rather than the GCS surface axonflow uses it for.
type gcpOCRBackend struct {
	svc *vision.Service
}

func newGCPOCRBackend(ctx context.Context, apiKey string) (*gcpOCRBackend, error) {
	svc, err := vision.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gcp ocr backend: %w", err)
	}
	return &gcpOCRBackend{svc: svc}, nil
}

func (b *gcpOCRBackend) extract(ctx context.Context, buf []byte, mimeType, language string) (string, []StructuredBlock, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{
			{
				Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(buf)},
				Features: []*vision.Feature{{Type: "DOCUMENT_TEXT_DETECTION"}},
			},
		},
	}

	resp, err := b.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return "", nil, classifyGoogleServiceError(err)
	}
	if len(resp.Responses) == 0 {
		return "", nil, fmt.Errorf("%w: empty vision response", ErrUnavailable)
	}
	ann := resp.Responses[0]
	if ann.Error != nil {
		return "", nil, fmt.Errorf("%w: %s", ErrUnavailable, ann.Error.Message)
	}

	var blocks []StructuredBlock
	for _, page := range safePages(ann) {
		for _, b := range page.Blocks {
			var text string
			for _, para := range b.Paragraphs {
				for _, word := range para.Words {
					for _, sym := range word.Symbols {
						text += sym.Text
					}
					text += " "
				}
			}
			block := StructuredBlock{Text: text}
			if b.BoundingBox != nil && len(b.BoundingBox.NormalizedVertices) == 4 {
				v := b.BoundingBox.NormalizedVertices
				block.BoundingBox = [4]float64{v[0].X, v[0].Y, v[2].X, v[2].Y}
			}
			blocks = append(blocks, block)
		}
	}

	text := ""
	if ann.FullTextAnnotation != nil {
		text = ann.FullTextAnnotation.Text
	}
	return text, blocks, nil
}

func safePages(ann *vision.AnnotateImageResponse) []*vision.Page {
	if ann.FullTextAnnotation == nil {
		return nil
	}
	return ann.FullTextAnnotation.Pages
}

func classifyGoogleServiceError(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
