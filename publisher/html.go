package publisher

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var notesPolicy = bluemonday.UGCPolicy()

// RenderHTML converts markdown notes to HTML safe to embed in a page. Model
// output is untrusted, so the result always goes through the sanitizer.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return notesPolicy.Sanitize(buf.String()), nil
}
