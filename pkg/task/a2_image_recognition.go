package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/codeready-toolchain/ctrleval/pkg/provider"
)

// ImageRecognitionTask (A2) reasons over an image's already-OCR'd text
// (the Evidence Processor runs every image through OCR before this task
// ever sees it; LLMClient.Invoke is text-only) to check for a checklist of
// expected visual features, producing a description plus presence
// booleans per feature.
type ImageRecognitionTask struct{}

func (ImageRecognitionTask) Tag() Tag { return TagImageRecognition }

func (ImageRecognitionTask) Run(ctx context.Context, in PromptInputs, llm *provider.LLMClient) (TaskResult, error) {
	if len(in.Features) == 0 {
		return TaskResult{Finding: Finding{Tag: TagImageRecognition, Summary: "no expected features configured"}}, nil
	}

	prompt := fmt.Sprintf(
		"The following text was extracted (via OCR) from an evidence image:\n%s\n\n"+
			"For each of these expected features, answer yes or no on its own line "+
			"in the form FEATURE: yes|no, then a one-sentence overall description:\n- %s",
		in.EvidenceText, strings.Join(in.Features, "\n- "),
	)

	text, usage, err := llm.Invoke(ctx, prompt, nil, 512, 0.0)
	if err != nil {
		return TaskResult{}, err
	}

	presence := make(map[string]any, len(in.Features))
	var description strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		feature, verdict, ok := strings.Cut(line, ":")
		if !ok {
			if description.Len() > 0 {
				description.WriteByte(' ')
			}
			description.WriteString(line)
			continue
		}
		present := strings.Contains(strings.ToLower(verdict), "yes")
		presence[strings.TrimSpace(feature)] = present
	}

	return TaskResult{
		Finding: Finding{
			Tag:     TagImageRecognition,
			Summary: description.String(),
			Extra:   presence,
		},
		Usage: usage,
	}, nil
}
