package task

import "fmt"

// Factory builds a Task for a given tag. Grounded on the teacher's
// controller.Factory (pkg/agent/controller/factory.go): a stateless
// switch keyed by an enum, not a registration map, since the task set is
// fixed at eight members.
type Factory struct{}

// NewFactory creates a task factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the Task implementation for tag.
func (f *Factory) Create(tag Tag) (Task, error) {
	switch tag {
	case TagSemanticSearch:
		return &SemanticSearchTask{}, nil
	case TagImageRecognition:
		return &ImageRecognitionTask{}, nil
	case TagStructuredExtract:
		return &StructuredExtractTask{}, nil
	case TagStepwiseReasoning:
		return &StepwiseReasoningTask{}, nil
	case TagSemanticReasoning:
		return &SemanticReasoningTask{}, nil
	case TagMultiDocConsolidate:
		return &MultiDocConsolidateTask{}, nil
	case TagPatternAnalysis:
		return &PatternAnalysisTask{}, nil
	case TagSegregationOfDuties:
		return &SegregationOfDutiesTask{}, nil
	default:
		return nil, fmt.Errorf("unknown task tag: %q", tag)
	}
}
