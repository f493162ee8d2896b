package evidence

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/codeready-toolchain/ctrleval/pkg/models"
)

// OOXML spreadsheet (.xlsx) is a zip archive of XML parts; there is no
// third-party OOXML reader anywhere in the example corpus, so this is the
// one evidence format read with only archive/zip + encoding/xml.

type sstXML struct {
	XMLName xml.Name `xml:"sst"`
	SI      []struct {
		T string `xml:"t"`
		R []struct {
			T string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

type sheetXML struct {
	XMLName xml.Name `xml:"worksheet"`
	SheetData struct {
		Row []struct {
			R string `xml:"r,attr"`
			C  []struct {
				R string `xml:"r,attr"`
				T string `xml:"t,attr"`
				V string `xml:"v"`
			} `xml:"c"`
		} `xml:"row"`
	} `xml:"sheetData"`
}

func extractSpreadsheet(f models.EvidenceFile) (extraction, error) {
	zr, err := zip.NewReader(bytes.NewReader(f.Data), int64(len(f.Data)))
	if err != nil {
		return extraction{}, fmt.Errorf("opening xlsx archive: %w", err)
	}

	shared, err := readSharedStrings(zr)
	if err != nil {
		return extraction{}, err
	}

	sheetFile, err := findZipFile(zr, "xl/worksheets/sheet1.xml")
	if err != nil {
		return extraction{}, err
	}
	rc, err := sheetFile.Open()
	if err != nil {
		return extraction{}, fmt.Errorf("opening sheet1.xml: %w", err)
	}
	defer rc.Close()

	var sheet sheetXML
	if err := xml.NewDecoder(rc).Decode(&sheet); err != nil {
		return extraction{}, fmt.Errorf("decoding sheet1.xml: %w", err)
	}

	var text strings.Builder
	var regions []models.ArtifactRegion
	for _, row := range sheet.SheetData.Row {
		var cells []string
		for _, c := range row.C {
			val := c.V
			if c.T == "s" {
				idx, err := strconv.Atoi(c.V)
				if err == nil && idx >= 0 && idx < len(shared) {
					val = shared[idx]
				}
			}
			if val == "" {
				continue
			}
			cells = append(cells, val)
			regions = append(regions, models.ArtifactRegion{Cell: c.R})
		}
		if len(cells) > 0 {
			text.WriteString(strings.Join(cells, "\t"))
			text.WriteByte('\n')
		}
	}

	return extraction{text: text.String(), regions: regions}, nil
}

func readSharedStrings(zr *zip.Reader) ([]string, error) {
	f, err := findZipFile(zr, "xl/sharedStrings.xml")
	if err != nil {
		// Workbooks with no string cells may omit this part entirely.
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening sharedStrings.xml: %w", err)
	}
	defer rc.Close()

	var sst sstXML
	if err := xml.NewDecoder(rc).Decode(&sst); err != nil {
		return nil, fmt.Errorf("decoding sharedStrings.xml: %w", err)
	}

	out := make([]string, len(sst.SI))
	for i, si := range sst.SI {
		if si.T != "" {
			out[i] = si.T
			continue
		}
		var b strings.Builder
		for _, r := range si.R {
			b.WriteString(r.T)
		}
		out[i] = b.String()
	}
	return out, nil
}

func findZipFile(zr *zip.Reader, name string) (*zip.File, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}
