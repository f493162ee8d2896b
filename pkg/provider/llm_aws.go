package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// awsLLMBackend calls Amazon Bedrock's Converse API, grounded directly in
// axonflow's bedrockruntime dependency and independently confirmed by
// jordigilh-kubernaut's own Bedrock usage.
type awsLLMBackend struct {
	client *bedrockruntime.Client
	model  string
}

func newAWSLLMBackend(client *bedrockruntime.Client, model string) *awsLLMBackend {
	return &awsLLMBackend{client: client, model: model}
}

func (b *awsLLMBackend) invoke(ctx context.Context, prompt string, tools []ToolSpec, maxTokens int, temperature float64) (string, Usage, error) {
	temp := float32(temperature)
	maxTok := int32(maxTokens)

	out, err := b.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(b.model),
		Messages: []types.Message{
			{
				Role:    types.ConversationRoleUser,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: prompt}},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   &maxTok,
			Temperature: &temp,
		},
	})
	if err != nil {
		return "", Usage{}, classifyAWSError(err)
	}

	output, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok || len(output.Value.Content) == 0 {
		return "", Usage{}, fmt.Errorf("%w: empty bedrock response", ErrUnavailable)
	}
	textBlock, ok := output.Value.Content[0].(*types.ContentBlockMemberText)
	if !ok {
		return "", Usage{}, fmt.Errorf("%w: non-text bedrock response", ErrUnavailable)
	}

	usage := Usage{}
	if out.Usage != nil {
		usage.PromptTokens = int(aws.ToInt32(out.Usage.InputTokens))
		usage.CompletionTokens = int(aws.ToInt32(out.Usage.OutputTokens))
	}
	return textBlock.Value, usage, nil
}

func classifyAWSError(err error) error {
	var throttling *types.ThrottlingException
	if errors.As(err, &throttling) {
		return ErrRateLimited
	}
	var validation *types.ValidationException
	if errors.As(err, &validation) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() >= 500 {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var serviceUnavailable *types.ServiceUnavailableException
	if errors.As(err, &serviceUnavailable) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var modelTimeout *types.ModelTimeoutException
	if errors.As(err, &modelTimeout) {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
