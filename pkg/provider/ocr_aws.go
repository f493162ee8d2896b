package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// awsOCRBackend calls Amazon Textract's synchronous DetectDocumentText API.
type awsOCRBackend struct {
	client *textract.Client
}

func newAWSOCRBackend(client *textract.Client) *awsOCRBackend {
	return &awsOCRBackend{client: client}
}

func (b *awsOCRBackend) extract(ctx context.Context, buf []byte, mimeType, language string) (string, []StructuredBlock, error) {
	out, err := b.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: buf},
	})
	if err != nil {
		return "", nil, classifyTextractError(err)
	}

	var text bytes.Buffer
	var blocks []StructuredBlock
	for _, block := range out.Blocks {
		if block.BlockType != types.BlockTypeLine {
			continue
		}
		line := aws.ToString(block.Text)
		text.WriteString(line)
		text.WriteByte('\n')

		sb := StructuredBlock{Text: line}
		if block.Geometry != nil && block.Geometry.BoundingBox != nil {
			bb := block.Geometry.BoundingBox
			sb.BoundingBox = [4]float64{
				float64(aws.ToFloat32(bb.Left)),
				float64(aws.ToFloat32(bb.Top)),
				float64(aws.ToFloat32(bb.Left)) + float64(aws.ToFloat32(bb.Width)),
				float64(aws.ToFloat32(bb.Top)) + float64(aws.ToFloat32(bb.Height)),
			}
		}
		blocks = append(blocks, sb)
	}

	return text.String(), blocks, nil
}

func classifyTextractError(err error) error {
	var throttling *types.ThrottlingException
	if errors.As(err, &throttling) {
		return ErrRateLimited
	}
	var provisionedThroughput *types.ProvisionedThroughputExceededException
	if errors.As(err, &provisionedThroughput) {
		return ErrRateLimited
	}
	var badDocument *types.UnsupportedDocumentException
	if errors.As(err, &badDocument) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	var invalidParam *types.InvalidParameterException
	if errors.As(err, &invalidParam) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
