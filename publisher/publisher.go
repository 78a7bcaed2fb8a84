package publisher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Open for names that do not resolve to a stored file.
var ErrNotFound = errors.New("file not found")

// Config tells the publisher where files go.
type Config struct {
	Dir     string
	Creator string
}

// Document is a rendered PDF on disk.
type Document struct {
	FileName string
	Path     string
	Pages    int
}

// Publisher renders notes into the output directory and serves them back.
type Publisher struct {
	cfg      Config
	renderer *Renderer
	logger   *slog.Logger
}

// New creates a Publisher. A nil renderer uses the fpdf-backed default.
func New(cfg Config, renderer *Renderer, logger *slog.Logger) (*Publisher, error) {
	if cfg.Dir == "" {
		return nil, errors.New("output dir is required")
	}
	if renderer == nil {
		renderer = NewRenderer(OpenPDF, cfg.Creator)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{cfg: cfg, renderer: renderer, logger: logger}, nil
}

// Dir is the output directory.
func (p *Publisher) Dir() string { return p.cfg.Dir }

// Publish renders title and body to <dir>/<FileName(title)>, replacing any
// earlier file for the same title. The file is read back and checked before
// it replaces the old one.
func (p *Publisher) Publish(ctx context.Context, title, body string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if err := os.MkdirAll(p.cfg.Dir, 0o755); err != nil {
		return Document{}, fmt.Errorf("create output dir: %w", err)
	}

	name := FileName(title)
	if lost := Unencodable(title + body); len(lost) > 0 {
		p.logger.Warn("characters not supported by the pdf font", "file", name, "count", len(lost), "chars", string(lost))
	}

	path := filepath.Join(p.cfg.Dir, name)
	pages, err := p.renderer.Render(path, title, body)
	if err != nil {
		return Document{}, err
	}
	p.logger.Debug("rendered pdf", "file", name, "pages", pages)

	return Document{FileName: name, Path: path, Pages: pages}, nil
}

// Open opens a stored PDF by file name. The caller closes the file.
func (p *Publisher) Open(name string) (*os.File, fs.FileInfo, error) {
	if !validName(name) {
		return nil, nil, ErrNotFound
	}
	f, err := os.Open(filepath.Join(p.cfg.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, ErrNotFound
	}
	return f, info, nil
}
