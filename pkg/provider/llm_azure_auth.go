package provider

import "github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

// policyTokenScope is the Cognitive Services OAuth scope Azure OpenAI /
// Azure AI Foundry deployments expect from DefaultAzureCredential.
func policyTokenScope() policy.TokenRequestOptions {
	return policy.TokenRequestOptions{Scopes: []string{"https://cognitiveservices.azure.com/.default"}}
}
