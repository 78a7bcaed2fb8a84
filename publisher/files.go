package publisher

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

const maxNameRunes = 100

// FileName derives the PDF file name for a topic. Spaces become underscores
// and only letters, digits, '_' and '-' are kept. When anything had to be
// dropped or cut, a short hash of the topic is appended so that topics
// differing only in those characters do not share a file.
func FileName(topic string) string {
	topic = strings.TrimSpace(topic)

	var sb strings.Builder
	altered := false
	n := 0
	for _, r := range topic {
		if r == ' ' {
			r = '_'
		}
		if !nameRune(r) {
			altered = true
			continue
		}
		if n == maxNameRunes {
			altered = true
			break
		}
		sb.WriteRune(r)
		n++
	}

	name := sb.String()
	if altered || name == "" {
		sum := sha256.Sum256([]byte(topic))
		suffix := hex.EncodeToString(sum[:4])
		if name == "" {
			name = suffix
		} else {
			name += "-" + suffix
		}
	}
	return name + ".pdf"
}

// validName reports whether name could have come out of FileName. Anything
// else is refused before it gets near the filesystem.
func validName(name string) bool {
	base, ok := strings.CutSuffix(name, ".pdf")
	if !ok || base == "" {
		return false
	}
	for _, r := range base {
		if !nameRune(r) {
			return false
		}
	}
	return true
}

func nameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}
