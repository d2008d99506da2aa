package generator

import "context"

// Sampling parameters shared by every completion.
const (
	DefaultModel    = "llama-3.1-8b-instant"
	Temperature     = 1.0
	TopP            = 1.0
	MaxOutputTokens = 1024
	DefaultGroqURL  = "https://api.groq.com/openai/v1"
)

// LLMClient abstracts the completion API so it can be replaced or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings is the provider configuration handed to an implementation.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// CompletionError wraps any failure of the completion API: transport,
// authentication, quota or an empty answer.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string { return "completion: " + e.Err.Error() }

func (e *CompletionError) Unwrap() error { return e.Err }
