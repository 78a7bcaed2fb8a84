package publisher

import (
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"study_notes_generator/layout"
)

// Font selects a face on the canvas. Family and Style follow the PDF core
// font conventions ("Helvetica", "" or "B").
type Font struct {
	Family string
	Style  string
	Size   float64
}

var (
	TitleFont = Font{Family: "Helvetica", Style: "B", Size: 16}
	BodyFont  = Font{Family: "Helvetica", Size: 12}
)

// Meta is written into the document information dictionary.
type Meta struct {
	Title   string
	Creator string
}

// Canvas is a paginated drawing surface. Coordinates are points from the
// bottom-left corner of the page.
type Canvas interface {
	SetFont(f Font)
	DrawString(x, y float64, s string)
	ShowPage()
	// Save writes the whole document. Nothing is visible at the target path
	// until Save succeeds.
	Save() error
}

// OpenCanvas starts a new document that Save will write to path.
type OpenCanvas func(path string, size layout.Size, meta Meta) (Canvas, error)

type pdfCanvas struct {
	pdf    *fpdf.Fpdf
	path   string
	height float64
	pages  int
	tr     func(string) string
}

// OpenPDF is the fpdf-backed OpenCanvas.
func OpenPDF(path string, size layout.Size, meta Meta) (Canvas, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(meta.Title, true)
	pdf.SetCreator(meta.Creator, true)
	pdf.AddPage()
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &pdfCanvas{
		pdf:    pdf,
		path:   path,
		height: size.Height,
		pages:  1,
		// core fonts are cp1252
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}, nil
}

func (c *pdfCanvas) SetFont(f Font) {
	c.pdf.SetFont(f.Family, f.Style, f.Size)
}

func (c *pdfCanvas) DrawString(x, y float64, s string) {
	// fpdf measures y from the top edge
	c.pdf.Text(x, c.height-y, c.tr(s))
}

func (c *pdfCanvas) ShowPage() {
	c.pdf.AddPage()
	c.pages++
}

func (c *pdfCanvas) Save() error {
	if err := c.pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".render-*.pdf")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := c.pdf.Output(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write pdf: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	// verified before it becomes visible under the final name
	info, err := Inspect(tmpName)
	if err != nil {
		return fmt.Errorf("verify pdf: %w", err)
	}
	if info.Pages != c.pages {
		return fmt.Errorf("verify pdf: %d pages written, %d read back", c.pages, info.Pages)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, c.path)
}

// Unencodable returns the runes of s that the core fonts cannot show. fpdf
// draws each of them as '.'.
func Unencodable(s string) []rune {
	var out []rune
	seen := make(map[rune]bool)
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || seen[r] {
			continue
		}
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}
