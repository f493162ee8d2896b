package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/codeready-toolchain/ctrleval/pkg/provider"
)

// StructuredExtractTask (A3) pulls schema-shaped records out of
// spreadsheet/table text — the Evidence Processor's extracted text for
// XLSX attachments preserves tab-separated rows, which this task's prompt
// asks the LLM to map onto the caller-supplied schema.
type StructuredExtractTask struct{}

func (StructuredExtractTask) Tag() Tag { return TagStructuredExtract }

func (StructuredExtractTask) Run(ctx context.Context, in PromptInputs, llm *provider.LLMClient) (TaskResult, error) {
	schemaJSON, err := json.Marshal(in.Schema)
	if err != nil {
		return TaskResult{}, fmt.Errorf("marshaling schema: %w", err)
	}

	prompt := fmt.Sprintf(
		"Extract records from the following tabular evidence text that match this JSON schema:\n%s\n\n"+
			"Evidence:\n%s\n\n"+
			"Reply with a JSON array of objects only, no surrounding prose.",
		schemaJSON, in.EvidenceText,
	)

	text, usage, err := llm.Invoke(ctx, prompt, nil, 1024, 0.0)
	if err != nil {
		return TaskResult{}, err
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		// The LLM didn't return clean JSON; surface the raw text as a
		// single-record best effort rather than failing the whole task.
		return TaskResult{
			Finding: Finding{Tag: TagStructuredExtract, Summary: "extraction returned non-JSON output", Detail: text},
			Usage:   usage,
		}, nil
	}

	return TaskResult{
		Finding: Finding{Tag: TagStructuredExtract, Summary: fmt.Sprintf("%d record(s) extracted", len(records)), Extra: map[string]any{"records": records}},
		Usage:   usage,
	}, nil
}
