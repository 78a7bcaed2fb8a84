package layout

// Coordinates are in PDF points with the origin at the bottom-left corner.

// Size is a page size in points.
type Size struct {
	Width  float64
	Height float64
}

// Letter is US letter, 8.5x11in.
var Letter = Size{Width: 612, Height: 792}

// Options controls where lines land on a page.
type Options struct {
	Page       Size
	Left       float64 // x of every line
	Top        float64 // baseline of the title, and of the first line on pages after the first
	Bottom     float64 // no baseline goes below this
	LineHeight float64
}

// DefaultOptions matches the notes PDF: 100pt left margin, title at 750,
// 20pt leading, 50pt bottom margin on US letter.
func DefaultOptions() Options {
	return Options{
		Page:       Letter,
		Left:       100,
		Top:        750,
		Bottom:     50,
		LineHeight: 20,
	}
}

// LinesPerPage is the body capacity of a single page.
func (o Options) LinesPerPage() int {
	if o.LineHeight <= 0 {
		return 0
	}
	return int((o.Top - o.Bottom) / o.LineHeight)
}

// Line is one positioned line of body text.
type Line struct {
	X, Y float64
	Text string
}

// Page holds the body lines drawn on a single page.
type Page struct {
	Number int
	Lines  []Line
}

// Paginate assigns positions to lines. The first page starts one line below
// the title; later pages start at the top margin. At least one page is
// always returned so the title has somewhere to go.
func Paginate(lines []string, opts Options) []Page {
	per := opts.LinesPerPage()
	if per < 1 {
		per = 1
	}

	pages := []Page{{Number: 1}}
	y := opts.Top - opts.LineHeight
	for _, text := range lines {
		cur := &pages[len(pages)-1]
		if len(cur.Lines) == per {
			pages = append(pages, Page{Number: len(pages) + 1})
			cur = &pages[len(pages)-1]
			y = opts.Top
		}
		cur.Lines = append(cur.Lines, Line{X: opts.Left, Y: y, Text: text})
		y -= opts.LineHeight
	}
	return pages
}
