package generator

import (
	"context"
	"errors"
)

// ErrNoContent is returned when the model produced no usable study guide.
var ErrNoContent = errors.New("model returned no content")

// Agent runs the two model calls of the flow: classify, then generate.
type Agent struct {
	llm LLMClient
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm}, nil
}

// Classify asks the model whether topic is educational. A reply without
// candidates yields VerdictUnknown rather than an error.
func (a *Agent) Classify(ctx context.Context, topic string) (Verdict, error) {
	resp, err := a.llm.Complete(ctx, BuildClassifyPrompt(topic))
	if err != nil {
		return VerdictUnknown, err
	}
	reply, ok := resp.First()
	if !ok {
		return VerdictUnknown, nil
	}
	return ParseVerdict(reply), nil
}

// Generate produces the study guide for topic. ErrNoContent means the model
// answered but gave nothing usable.
func (a *Agent) Generate(ctx context.Context, topic string) (Notes, error) {
	resp, err := a.llm.Complete(ctx, BuildStudyPrompt(topic))
	if err != nil {
		return Notes{}, err
	}
	raw, ok := resp.First()
	if !ok {
		return Notes{}, ErrNoContent
	}
	return PostProcess(raw)
}
