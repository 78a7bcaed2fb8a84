package generator

import (
	"context"
	"time"
)

// LLMClient abstracts the language-model API so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (Completion, error)
}

// Completion is what the model handed back: zero or more candidate texts.
type Completion struct {
	Candidates []string
}

// First returns the first candidate, or false when the model gave none.
func (c Completion) First() (string, bool) {
	if len(c.Candidates) == 0 {
		return "", false
	}
	return c.Candidates[0], true
}

// LLMSettings is the provider-independent client configuration.
type LLMSettings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}
