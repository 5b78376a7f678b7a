package models

// Defaults applied to an AI summary input when a field is absent.
const (
	DefaultAiSummaryModel       = "gpt-3.5-turbo"
	DefaultAiSummaryMaxTokens   = 500
	DefaultAiSummaryTemperature = 0.7
)

// ModelOption is one entry of the model selector shown by the step editor.
type ModelOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AiSummaryModelOptions lists the models the editor offers. The executor forwards any model id.
var AiSummaryModelOptions = []ModelOption{
	{Label: "GPT-3.5 Turbo", Value: "gpt-3.5-turbo"},
	{Label: "GPT-4", Value: "gpt-4"},
	{Label: "GPT-4 Turbo", Value: "gpt-4-turbo-preview"},
	{Label: "GPT-4o", Value: "gpt-4o"},
}

// AiSummaryInput is the user-facing part of an AI summary step. Nil means absent.
type AiSummaryInput struct {
	Prompt      string   `json:"prompt"`
	Model       *string  `json:"model,omitempty"`
	MaxTokens   *int     `json:"maxTokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// AiSummaryRequest is an AI summary input with every default applied.
type AiSummaryRequest struct {
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Resolve applies the defaults for absent fields. An empty model counts as absent.
func (in AiSummaryInput) Resolve() AiSummaryRequest {
	req := AiSummaryRequest{
		Prompt:      in.Prompt,
		Model:       DefaultAiSummaryModel,
		MaxTokens:   DefaultAiSummaryMaxTokens,
		Temperature: DefaultAiSummaryTemperature,
	}

	if in.Model != nil && *in.Model != "" {
		req.Model = *in.Model
	}

	if in.MaxTokens != nil {
		req.MaxTokens = *in.MaxTokens
	}

	if in.Temperature != nil {
		req.Temperature = *in.Temperature
	}

	return req
}

// ErrorHandlingOptions controls how the engine reacts to a failed step.
type ErrorHandlingOptions struct {
	RetryOnFailure struct {
		Value bool `json:"value"`
	} `json:"retryOnFailure"`
	ContinueOnFailure struct {
		Value bool `json:"value"`
	} `json:"continueOnFailure"`
}

// AiSummarySettings are the persisted settings of an AI summary step.
type AiSummarySettings struct {
	Input                AiSummaryInput        `json:"input"`
	OutputSchema         OutputSchema          `json:"outputSchema"`
	ErrorHandlingOptions *ErrorHandlingOptions `json:"errorHandlingOptions,omitempty"`
}

// AiSummaryResult is what one AI summary execution produces.
type AiSummaryResult struct {
	Summary    string `json:"summary"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokensUsed"`
}

// NewAiSummaryAction builds a freshly added AI summary step.
func NewAiSummaryAction(id, name string) *AiSummaryAction {
	return &AiSummaryAction{
		BaseAction: BaseAction{ID: id, Name: name, Valid: false},
		Settings: AiSummarySettings{
			Input:        AiSummaryInput{Prompt: ""},
			OutputSchema: DefaultAiSummaryOutputSchema(),
		},
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
