package publisher

import (
	"fmt"

	"study_notes_generator/layout"
)

// Renderer lays out a title and body and draws them onto a Canvas.
type Renderer struct {
	open    OpenCanvas
	opts    layout.Options
	width   int
	creator string
}

// NewRenderer returns a Renderer using the default letter-size layout.
// A nil open falls back to OpenPDF.
func NewRenderer(open OpenCanvas, creator string) *Renderer {
	if open == nil {
		open = OpenPDF
	}
	return &Renderer{
		open:    open,
		opts:    layout.DefaultOptions(),
		width:   layout.DefaultWidth,
		creator: creator,
	}
}

// Render writes the document to path and returns its page count.
func (r *Renderer) Render(path, title, body string) (int, error) {
	c, err := r.open(path, r.opts.Page, Meta{Title: title, Creator: r.creator})
	if err != nil {
		return 0, err
	}

	c.SetFont(TitleFont)
	c.DrawString(r.opts.Left, r.opts.Top, title)

	pages := layout.Paginate(layout.Wrap(body, r.width), r.opts)
	for i, page := range pages {
		if i > 0 {
			c.ShowPage()
		}
		c.SetFont(BodyFont)
		for _, line := range page.Lines {
			c.DrawString(line.X, line.Y, line.Text)
		}
	}

	if err := c.Save(); err != nil {
		return 0, fmt.Errorf("save %s: %w", path, err)
	}
	return len(pages), nil
}
