package generator

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockLLM is an offline stand-in for local development; it never calls a model.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (Completion, error) {
	if prompt.Kind == KindClassify {
		return Completion{Candidates: []string{"VALID"}}, nil
	}
	var sb strings.Builder
	sb.WriteString("## 1. Introduction\n")
	sb.WriteString("These notes were produced by the offline mock model.\n\n")
	for i, sec := range studySections[1:] {
		sb.WriteString(fmt.Sprintf("## %d. %s\n", i+2, sec.Title))
		for _, b := range sec.Bullets {
			sb.WriteString(fmt.Sprintf("- %s\n", b))
		}
		sb.WriteString("\n")
	}
	return Completion{Candidates: []string{sb.String()}}, nil
}

// StubLLM replies with fixed completions per prompt kind and counts calls.
// Tests use it to script the model.
type StubLLM struct {
	Replies map[PromptKind]Completion
	Errs    map[PromptKind]error

	mu    sync.Mutex
	calls map[PromptKind]int
	last  map[PromptKind]Prompt
}

// NewStubLLM answers the classification prompt with verdict and the study
// prompt with notes.
func NewStubLLM(verdict, notes string) *StubLLM {
	return &StubLLM{Replies: map[PromptKind]Completion{
		KindClassify: {Candidates: []string{verdict}},
		KindStudy:    {Candidates: []string{notes}},
	}}
}

func (s *StubLLM) Complete(_ context.Context, prompt Prompt) (Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[PromptKind]int)
		s.last = make(map[PromptKind]Prompt)
	}
	s.calls[prompt.Kind]++
	s.last[prompt.Kind] = prompt
	if err := s.Errs[prompt.Kind]; err != nil {
		return Completion{}, err
	}
	return s.Replies[prompt.Kind], nil
}

// Calls returns how many prompts of kind were sent.
func (s *StubLLM) Calls(kind PromptKind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[kind]
}

// Last returns the most recent prompt of kind.
func (s *StubLLM) Last(kind PromptKind) (Prompt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.last[kind]
	return p, ok
}
