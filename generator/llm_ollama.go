package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// DefaultOllamaURL is where a local Ollama server listens.
const DefaultOllamaURL = "http://localhost:11434"

// OllamaLLM implements LLMClient against a local Ollama server via langchaingo.
type OllamaLLM struct {
	Model       string
	Temperature float64
	Timeout     time.Duration
	llm         llms.Model
}

func NewOllamaLLMFromConfig(cfg *LLMSettings) (*OllamaLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	serverURL := cfg.BaseURL
	if serverURL == "" {
		serverURL = DefaultOllamaURL
	}
	llm, err := ollama.New(ollama.WithModel(cfg.Model), ollama.WithServerURL(serverURL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ollama: %w", err)
	}
	return &OllamaLLM{Model: cfg.Model, Temperature: cfg.Temperature, Timeout: cfg.Timeout, llm: llm}, nil
}

func (o *OllamaLLM) Complete(ctx context.Context, prompt Prompt) (out Completion, err error) {
	// langchaingo dereferences the reply message unchecked when the server
	// streams no lines at all
	defer func() {
		if r := recover(); r != nil {
			out, err = Completion{}, fmt.Errorf("ollama: malformed response: %v", r)
		}
	}()

	var content []llms.MessageContent
	if prompt.System != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, prompt.System))
	}
	content = append(content, llms.TextParts(llms.ChatMessageTypeHuman, prompt.User))

	var callOpts []llms.CallOption
	if o.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(o.Temperature))
	}

	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	resp, err := o.llm.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		return Completion{}, fmt.Errorf("ollama: %w", err)
	}
	if resp == nil {
		return out, nil
	}
	for _, choice := range resp.Choices {
		if choice == nil {
			continue
		}
		out.Candidates = append(out.Candidates, choice.Content)
	}
	return out, nil
}
