package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// azureOCRBackend calls Azure AI Vision's Read API, reusing the same
// azidentity credential chain as the Azure LLM backend.
type azureOCRBackend struct {
	endpoint string
	apiKey   string
	cred     *azidentity.DefaultAzureCredential
	client   *http.Client
}

func newAzureOCRBackend(endpoint, apiKey string, timeout time.Duration) (*azureOCRBackend, error) {
	b := &azureOCRBackend{endpoint: endpoint, apiKey: apiKey, client: &http.Client{Timeout: timeout}}
	if apiKey == "" {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("azure ocr backend: constructing default credential: %w", err)
		}
		b.cred = cred
	}
	return b, nil
}

type azureReadResult struct {
	AnalyzeResult struct {
		ReadResults []struct {
			Page  int `json:"page"`
			Lines []struct {
				Text       string    `json:"text"`
				BoundingBox []float64 `json:"boundingBox"`
			} `json:"lines"`
		} `json:"readResults"`
	} `json:"analyzeResult"`
}

func (b *azureOCRBackend) extract(ctx context.Context, buf []byte, mimeType, language string) (string, []StructuredBlock, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+"/vision/v3.2/read/analyze", bytes.NewReader(buf))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if language != "" {
		q := req.URL.Query()
		q.Set("language", language)
		req.URL.RawQuery = q.Encode()
	}
	if b.apiKey != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", b.apiKey)
	} else {
		tok, err := b.cred.GetToken(ctx, policyTokenScope())
		if err != nil {
			return "", nil, fmt.Errorf("%w: azure token acquisition failed: %v", ErrUnavailable, err)
		}
		req.Header.Set("Authorization", "Bearer "+tok.Token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", nil, ErrTimeout
		}
		return "", nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, classifyHTTPStatus(resp.StatusCode) // shares the generic HTTP-status classification
	}

	var out azureReadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", nil, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	var text bytes.Buffer
	var blocks []StructuredBlock
	for _, page := range out.AnalyzeResult.ReadResults {
		for _, line := range page.Lines {
			text.WriteString(line.Text)
			text.WriteByte('\n')
			block := StructuredBlock{Text: line.Text, PageIndex: page.Page}
			if len(line.BoundingBox) == 8 {
				block.BoundingBox = [4]float64{line.BoundingBox[0], line.BoundingBox[1], line.BoundingBox[4], line.BoundingBox[5]}
			}
			blocks = append(blocks, block)
		}
	}
	return text.String(), blocks, nil
}
