package pipeline

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study_notes_generator/generator"
	"study_notes_generator/layout"
	"study_notes_generator/publisher"
)

func newPipeline(t *testing.T, llm generator.LLMClient) (*Pipeline, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "generated_pdfs")
	agent, err := generator.NewAgent(llm)
	require.NoError(t, err)
	pub, err := publisher.New(publisher.Config{Dir: dir}, nil, nil)
	require.NoError(t, err)
	p, err := New(agent, pub, nil)
	require.NoError(t, err)
	return p, dir
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(nil, nil, nil)
	assert.Error(t, err)
}

func TestRunPhotosynthesis(t *testing.T) {
	stub := generator.NewStubLLM("VALID", "Line one\nLine two")
	p, dir := newPipeline(t, stub)

	res, err := p.Run(context.Background(), "Photosynthesis")
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis", res.Topic)
	assert.Equal(t, "Line one\nLine two", res.Notes)
	assert.Equal(t, "Photosynthesis.pdf", res.Document.FileName)
	assert.Equal(t, 1, res.Document.Pages)
	assert.FileExists(t, filepath.Join(dir, "Photosynthesis.pdf"))
	assert.Contains(t, res.NotesHTML, "Line one")

	pages, err := publisher.ExtractText(res.Document.Path)
	require.NoError(t, err)
	assert.Contains(t, pages[0], "Photosynthesis")
	assert.Contains(t, pages[0], "Line one")
}

func TestRunAcceptsAnythingWithoutInvalid(t *testing.T) {
	for _, reply := range []string{"VALID", "valid", "Yes, VALID.", "sure"} {
		t.Run(reply, func(t *testing.T) {
			stub := generator.NewStubLLM(reply, "notes")
			p, _ := newPipeline(t, stub)

			_, err := p.Run(context.Background(), "Calculus")
			require.NoError(t, err)
			assert.Equal(t, 1, stub.Calls(generator.KindClassify))
			assert.Equal(t, 1, stub.Calls(generator.KindStudy))
		})
	}
}

func TestRunRejectedNeverGenerates(t *testing.T) {
	for _, reply := range []string{"INVALID topic", "invalid", "This is InVaLiD"} {
		t.Run(reply, func(t *testing.T) {
			stub := generator.NewStubLLM(reply, "notes")
			p, dir := newPipeline(t, stub)

			_, err := p.Run(context.Background(), "asdfgh123")
			require.ErrorIs(t, err, ErrTopicRejected)
			assert.Equal(t, http.StatusBadRequest, StatusCode(err))
			assert.Equal(t, 0, stub.Calls(generator.KindStudy))
			assert.NoDirExists(t, dir)
		})
	}
}

func TestRunEmptyTopicMakesNoCalls(t *testing.T) {
	for _, topic := range []string{"", " ", "\t\n  "} {
		stub := generator.NewStubLLM("VALID", "notes")
		p, _ := newPipeline(t, stub)

		_, err := p.Run(context.Background(), topic)
		require.ErrorIs(t, err, ErrInvalidRequest)
		assert.Equal(t, "Topic cannot be empty", Message(err))
		assert.Equal(t, 0, stub.Calls(generator.KindClassify))
		assert.Equal(t, 0, stub.Calls(generator.KindStudy))
	}
}

func TestRunTrimsTopic(t *testing.T) {
	stub := generator.NewStubLLM("VALID", "notes")
	p, _ := newPipeline(t, stub)

	res, err := p.Run(context.Background(), "  Cell Biology \n")
	require.NoError(t, err)
	assert.Equal(t, "Cell Biology", res.Topic)
	assert.Equal(t, "Cell_Biology.pdf", res.Document.FileName)
}

func TestRunClassificationWithoutCandidatesIsRejected(t *testing.T) {
	stub := &generator.StubLLM{Replies: map[generator.PromptKind]generator.Completion{
		generator.KindStudy: {Candidates: []string{"notes"}},
	}}
	p, _ := newPipeline(t, stub)

	_, err := p.Run(context.Background(), "Geology")
	require.ErrorIs(t, err, ErrTopicRejected)
	assert.Equal(t, 0, stub.Calls(generator.KindStudy))
}

func TestRunGenerationUnavailable(t *testing.T) {
	stub := &generator.StubLLM{Replies: map[generator.PromptKind]generator.Completion{
		generator.KindClassify: {Candidates: []string{"VALID"}},
	}}
	p, dir := newPipeline(t, stub)

	_, err := p.Run(context.Background(), "Geology")
	require.ErrorIs(t, err, ErrGenerationUnavailable)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.Equal(t, "No response from the language model", Message(err))
	assert.NoDirExists(t, dir)
}

func TestRunCollaboratorFailureIsInternal(t *testing.T) {
	boom := errors.New("dial tcp: connection refused")
	stub := &generator.StubLLM{Errs: map[generator.PromptKind]error{generator.KindClassify: boom}}
	p, _ := newPipeline(t, stub)

	_, err := p.Run(context.Background(), "Geology")
	require.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "An error occurred: dial tcp: connection refused", Message(err))
}

func TestRunRenderFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	agent, err := generator.NewAgent(generator.NewStubLLM("VALID", "notes"))
	require.NoError(t, err)
	pub, err := publisher.New(publisher.Config{Dir: filepath.Join(blocker, "out")}, nil, nil)
	require.NoError(t, err)
	p, err := New(agent, pub, nil)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), "Geology")
	require.ErrorIs(t, err, ErrRender)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.True(t, strings.HasPrefix(Message(err), "An error occurred: "))
}

type panicLLM struct{}

func (panicLLM) Complete(context.Context, generator.Prompt) (generator.Completion, error) {
	panic("model client bug")
}

func TestRunRecoversPanics(t *testing.T) {
	p, _ := newPipeline(t, panicLLM{})

	_, err := p.Run(context.Background(), "Geology")
	require.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, Message(err), "model client bug")
}

func TestRunMultiPageNotes(t *testing.T) {
	body := strings.Repeat("A fairly long sentence about plate tectonics and the movement of crust. ", 60)
	stub := generator.NewStubLLM("VALID", body)
	p, _ := newPipeline(t, stub)

	res, err := p.Run(context.Background(), "Geology")
	require.NoError(t, err)
	lines := len(layout.Wrap(body, layout.DefaultWidth))
	assert.Equal(t, (lines+34)/35, res.Document.Pages)
	assert.Greater(t, res.Document.Pages, 1)
}

func TestDecodeRequest(t *testing.T) {
	topic, err := DecodeRequest(strings.NewReader(`{"topic": " Algebra "}`))
	require.NoError(t, err)
	assert.Equal(t, " Algebra ", topic)

	for name, body := range map[string]string{
		"empty body":    "",
		"no topic":      `{"subject": "Algebra"}`,
		"null topic":    `{"topic": null}`,
		"not json":      `topic=Algebra`,
		"topic not str": `{"topic": 42}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeRequest(strings.NewReader(body))
			require.ErrorIs(t, err, ErrInvalidRequest)
			assert.Equal(t, http.StatusBadRequest, StatusCode(err))
		})
	}

	_, err = DecodeRequest(nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestOpen(t *testing.T) {
	p, _ := newPipeline(t, generator.NewStubLLM("VALID", "notes"))

	_, _, err := p.Open("Nothing.pdf")
	require.ErrorIs(t, err, ErrFileNotFound)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))

	res, err := p.Run(context.Background(), "Optics")
	require.NoError(t, err)
	f, info, err := p.Open(res.Document.FileName)
	require.NoError(t, err)
	defer f.Close()
	assert.Positive(t, info.Size())
}

func TestStatusCodeForUnclassifiedError(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.Equal(t, "An error occurred: boom", Message(err))
}
