// Package pipeline turns a topic into study notes and a PDF: classify the
// topic, generate the notes, render them. Every failure comes back as an
// *Error carrying one of the kinds in errors.go.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"study_notes_generator/generator"
	"study_notes_generator/publisher"
)

// Result is everything a successful run produced.
type Result struct {
	Topic     string
	Notes     string
	Digest    string
	NotesHTML string
	Document  publisher.Document
}

type Pipeline struct {
	agent  *generator.Agent
	pub    *publisher.Publisher
	logger *slog.Logger
}

func New(agent *generator.Agent, pub *publisher.Publisher, logger *slog.Logger) (*Pipeline, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if pub == nil {
		return nil, errors.New("publisher required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{agent: agent, pub: pub, logger: logger}, nil
}

const missingTopic = "Missing 'topic' in request body"

// DecodeRequest reads {"topic": "..."} from body. The topic is returned
// untrimmed; Run does the trimming.
func DecodeRequest(body io.Reader) (string, error) {
	if body == nil {
		return "", invalidRequest(missingTopic)
	}
	var req struct {
		Topic *string `json:"topic"`
	}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", invalidRequest(missingTopic)
		}
		return "", invalidRequest("Request body must be a JSON object with a string 'topic'")
	}
	if req.Topic == nil {
		return "", invalidRequest(missingTopic)
	}
	return *req.Topic, nil
}

// Run executes the whole flow for one topic. Generation only happens after
// the model accepted the topic.
func (p *Pipeline) Run(ctx context.Context, topic string) (res Result, err error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Result{}, invalidRequest("Topic cannot be empty")
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline panic", "topic", topic, "panic", r)
			err = internal(fmt.Errorf("%v", r))
		}
	}()

	start := time.Now()
	log := p.logger.With("topic", topic)

	verdict, err := p.agent.Classify(ctx, topic)
	if err != nil {
		log.Error("classification failed", "error", err)
		return Result{}, internal(err)
	}
	log.Info("topic classified", "verdict", verdict.String())
	if !verdict.Accepted() {
		return Result{}, topicRejected()
	}

	notes, err := p.agent.Generate(ctx, topic)
	if errors.Is(err, generator.ErrNoContent) {
		log.Warn("model returned no notes")
		return Result{}, generationUnavailable(err)
	}
	if err != nil {
		log.Error("generation failed", "error", err)
		return Result{}, internal(err)
	}

	doc, err := p.pub.Publish(ctx, topic, notes.Markdown)
	if err != nil {
		log.Error("publish failed", "error", err)
		if ctx.Err() != nil {
			return Result{}, internal(err)
		}
		return Result{}, renderFailed(err)
	}

	html, err := publisher.RenderHTML(notes.Markdown)
	if err != nil {
		return Result{}, internal(err)
	}

	log.Info("notes published", "file", doc.FileName, "pages", doc.Pages, "elapsed", time.Since(start).Round(time.Millisecond))
	return Result{
		Topic:     topic,
		Notes:     notes.Markdown,
		Digest:    notes.Digest,
		NotesHTML: html,
		Document:  doc,
	}, nil
}

// Open returns a previously rendered PDF by file name.
func (p *Pipeline) Open(name string) (*os.File, fs.FileInfo, error) {
	f, info, err := p.pub.Open(name)
	if errors.Is(err, publisher.ErrNotFound) {
		return nil, nil, fileNotFound()
	}
	if err != nil {
		return nil, nil, internal(err)
	}
	return f, info, nil
}
