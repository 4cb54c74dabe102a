package ai

import (
	"context"
	"log"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"bookshelf.dev/storefront/pkg/global"
)

const defaultDeployment = "gpt-35-turbo"

var client *openai.Client
var deploymentName string
var isInitialized bool

// InitializeAIService initializes the Azure OpenAI client from AZURE_OPENAI_* environment variables
func InitializeAIService() {
	Initialize(
		global.GetEnvOrDefault("AZURE_OPENAI_ENDPOINT", ""),
		global.GetEnvOrDefault("AZURE_OPENAI_API_KEY", ""),
		global.GetEnvOrDefault("AZURE_OPENAI_DEPLOYMENT_NAME", defaultDeployment),
	)
}

// Initialize configures the client explicitly. Missing credentials disable the service.
func Initialize(endpoint, apiKey, deployment string, opts ...option.RequestOption) {
	if endpoint == "" || apiKey == "" {
		log.Println("AI service disabled - Azure OpenAI credentials not provided")
		log.Println("Required: AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_API_KEY environment variables")
		client = nil
		isInitialized = false
		return
	}

	if deployment == "" {
		deployment = defaultDeployment
	}

	clientValue := openai.NewClient(append([]option.RequestOption{
		option.WithBaseURL(endpoint),
		option.WithAPIKey(apiKey),
	}, opts...)...)
	client = &clientValue
	deploymentName = deployment

	isInitialized = true
	log.Println("AI service initialized with Azure OpenAI")
}

// IsEnabled returns whether the AI service is properly initialized
func IsEnabled() bool {
	return isInitialized && client != nil
}

func generateCompletion(ctx context.Context, systemMessage, userMessage string) (string, error) {
	if !IsEnabled() {
		return "", &AIError{Message: "AI service is not enabled"}
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(deploymentName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(systemMessage),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(userMessage),
					},
				},
			},
		},
		MaxTokens:   openai.Int(400),
		Temperature: openai.Float(0.7),
	})

	if err != nil {
		log.Printf("AI API Error: %v", err)
		return "", &AIError{Message: "Failed to generate AI response", Cause: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{Message: "AI returned empty response"}
	}

	return resp.Choices[0].Message.Content, nil
}

// AIError represents an AI service error
type AIError struct {
	Message string
	Cause   error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AIError) Unwrap() error {
	return e.Cause
}
