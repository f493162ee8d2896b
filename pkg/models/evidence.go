package models

// EvidenceFile is one attachment supporting an EvaluationItem. Base64 is
// the wire representation (spec.md §6); Data is the decoded form the
// Evidence Processor actually reads, populated by DecodeAttachments
// during request ingest.
type EvidenceFile struct {
	FileName         string `json:"fileName"`
	MimeType         string `json:"mimeType"`
	Extension        string `json:"extension"`
	Base64           string `json:"base64,omitempty"`
	Data             []byte `json:"-"`
	OriginalFileName string `json:"originalFileName,omitempty"`
}

// Recognized MIME types for EvidenceFile.MimeType.
const (
	MimeTypePDF  = "application/pdf"
	MimeTypePNG  = "image/png"
	MimeTypeJPEG = "image/jpeg"
	MimeTypeGIF  = "image/gif"
	MimeTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTypeText = "text/plain"
)

// IsRecognizedMimeType reports whether mimeType is in the recognized set.
func IsRecognizedMimeType(mimeType string) bool {
	switch mimeType {
	case MimeTypePDF, MimeTypePNG, MimeTypeJPEG, MimeTypeGIF, MimeTypeXLSX, MimeTypeDOCX, MimeTypeText:
		return true
	default:
		return false
	}
}

// AnnotatedArtifact is an evidence file returned to the client with an
// overlay highlighting the regions a reasoning task matched.
type AnnotatedArtifact struct {
	FileName         string           `json:"fileName"`
	OriginalFileName string           `json:"originalFileName"`
	FilePath         string           `json:"filePath,omitempty"`
	Base64           string           `json:"base64"`
	Regions          []ArtifactRegion `json:"regions,omitempty"`
	Warning          string           `json:"warning,omitempty"`
}

// ArtifactRegion locates one matched passage within an AnnotatedArtifact.
// Only the fields relevant to the source format are populated: page +
// boundingBox for PDFs/images, cell for spreadsheets, paragraphIndex for
// documents.
type ArtifactRegion struct {
	PageIndex      int        `json:"pageIndex,omitempty"`
	BoundingBox    [4]float64 `json:"boundingBox,omitempty"`
	Cell           string     `json:"cell,omitempty"`
	ParagraphIndex int        `json:"paragraphIndex,omitempty"`
}
