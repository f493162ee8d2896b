package evidence

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/codeready-toolchain/ctrleval/pkg/models"
)

type wordDocumentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    struct {
		P []struct {
			R []struct {
				T struct {
					Text string `xml:",chardata"`
				} `xml:"t"`
			} `xml:"r"`
		} `xml:"p"`
	} `xml:"body"`
}

// extractDocument reads the paragraph text runs out of an OOXML document
// (.docx), which like .xlsx is a zip of XML parts.
func extractDocument(f models.EvidenceFile) (extraction, error) {
	zr, err := zip.NewReader(bytes.NewReader(f.Data), int64(len(f.Data)))
	if err != nil {
		return extraction{}, fmt.Errorf("opening docx archive: %w", err)
	}

	docFile, err := findZipFile(zr, "word/document.xml")
	if err != nil {
		return extraction{}, err
	}
	rc, err := docFile.Open()
	if err != nil {
		return extraction{}, fmt.Errorf("opening word/document.xml: %w", err)
	}
	defer rc.Close()

	var doc wordDocumentXML
	if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
		return extraction{}, fmt.Errorf("decoding word/document.xml: %w", err)
	}

	var text strings.Builder
	var regions []models.ArtifactRegion
	for i, p := range doc.Body.P {
		var para strings.Builder
		for _, r := range p.R {
			para.WriteString(r.T.Text)
		}
		if para.Len() == 0 {
			continue
		}
		text.WriteString(para.String())
		text.WriteByte('\n')
		regions = append(regions, models.ArtifactRegion{ParagraphIndex: i})
	}

	return extraction{text: text.String(), regions: regions}, nil
}
