package provider

import (
	"bytes"
	"context"
)

// noneOCRBackend implements the NONE OCR provider: spec.md §4.1 requires it
// to return empty text for non-PDF/unreadable inputs and fall back to
// plain-text extraction for PDFs. It is the one legitimate stdlib-only
// backend here since "no OCR" has no SDK to wire.
type noneOCRBackend struct{}

func newNoneOCRBackend() *noneOCRBackend {
	return &noneOCRBackend{}
}

func (b *noneOCRBackend) extract(ctx context.Context, buf []byte, mimeType, language string) (string, []StructuredBlock, error) {
	if mimeType != "application/pdf" {
		return "", nil, nil
	}
	return ExtractPDFEmbeddedText(buf), nil, nil
}

// ExtractPDFEmbeddedText performs a best-effort scan for the literal text
// runs a PDF's content streams contain between parentheses in Tj/TJ
// operators. This is not a full PDF parser — it is the same "prefer
// embedded text, don't always need a CV/OCR pass" shortcut evidence
// processing pipelines in this corpus's domain take for lightweight text
// extraction before falling back to a real OCR backend. Exported so the
// Evidence Processor can apply the same embedded-text check before
// deciding whether to invoke OCR at all.
func ExtractPDFEmbeddedText(buf []byte) string {
	var out bytes.Buffer
	inText := false
	for i := 0; i < len(buf); i++ {
		switch buf[i] {
		case '(':
			inText = true
		case ')':
			inText = false
			out.WriteByte(' ')
		case '\\':
			if inText && i+1 < len(buf) {
				i++
			}
		default:
			if inText && buf[i] >= 0x20 && buf[i] < 0x7f {
				out.WriteByte(buf[i])
			}
		}
	}
	return out.String()
}
