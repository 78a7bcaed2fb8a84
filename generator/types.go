package generator

import "strings"

// Verdict is the model's judgment on whether a topic is worth generating notes for.
type Verdict int

const (
	// VerdictUnknown means the model returned nothing to classify.
	VerdictUnknown Verdict = iota
	VerdictValid
	VerdictInvalid
)

func (v Verdict) String() string {
	switch v {
	case VerdictValid:
		return "VALID"
	case VerdictInvalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

// Accepted reports whether generation may proceed.
func (v Verdict) Accepted() bool { return v == VerdictValid }

// ParseVerdict classifies a reply. Anything mentioning INVALID, in any case,
// is a rejection; every other reply counts as valid.
func ParseVerdict(reply string) Verdict {
	if strings.Contains(strings.ToUpper(reply), "INVALID") {
		return VerdictInvalid
	}
	return VerdictValid
}

// Notes is the generated study guide.
type Notes struct {
	Markdown string
	// Digest is the opening paragraph, shortened.
	Digest string
}
