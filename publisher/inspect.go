package publisher

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

// Info describes a PDF read back from disk.
type Info struct {
	Pages int
}

// Inspect parses and validates the PDF at path.
func Inspect(path string) (Info, error) {
	ctx, err := readPDF(path)
	if err != nil {
		return Info{}, err
	}
	return Info{Pages: ctx.PageCount}, nil
}

// ExtractText returns the text shown on each page, one string per page with
// one line per text-showing operation.
func ExtractText(path string) ([]string, error) {
	ctx, err := readPDF(path)
	if err != nil {
		return nil, err
	}
	pages := make([]string, 0, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNr, err)
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNr, err)
		}
		pages = append(pages, showText(data))
	}
	return pages, nil
}

func readPDF(path string) (*model.Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return ctx, nil
}

// showRe matches a string literal followed by the Tj operator.
var showRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)\s*Tj`)

// showText collects the shown strings of a content stream. The canvas writes
// core-font text in cp1252, so each string is decoded back to UTF-8.
func showText(stream []byte) string {
	dec := charmap.Windows1252.NewDecoder()
	var lines []string
	for _, m := range showRe.FindAllSubmatch(stream, -1) {
		raw := unescapePDF(m[1])
		text, err := dec.String(raw)
		if err != nil {
			text = raw
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

// unescapePDF undoes literal string escapes, octal ones included.
func unescapePDF(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 == len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		default:
			if c >= '0' && c <= '7' {
				val := int(c - '0')
				for k := 0; k < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; k++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
				continue
			}
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
