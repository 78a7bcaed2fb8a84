package generator

import (
	"strings"
	"unicode/utf8"
)

const digestLimit = 120

// PostProcess checks the raw reply and fills in the Notes fields. The
// markdown is kept exactly as the model wrote it.
func PostProcess(raw string) (Notes, error) {
	if strings.TrimSpace(raw) == "" {
		return Notes{}, ErrNoContent
	}
	digest := extractDigest(raw)
	if digest == "" {
		digest = defaultDigest(raw, digestLimit)
	}
	return Notes{
		Markdown: raw,
		Digest:   truncate(digest, digestLimit),
	}, nil
}

// first prose line, skipping headings and list markers
func extractDigest(md string) string {
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			continue
		}
		return line
	}
	return ""
}

func defaultDigest(md string, limit int) string {
	return truncate(strings.Join(strings.Fields(md), " "), limit)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
