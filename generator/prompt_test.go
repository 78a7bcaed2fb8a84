package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildClassifyPrompt(t *testing.T) {
	p := BuildClassifyPrompt("Organic Chemistry")
	assert.Equal(t, KindClassify, p.Kind)
	assert.Contains(t, p.User, "'Organic Chemistry'")
	assert.Contains(t, p.User, "VALID or INVALID")
}

func TestBuildStudyPromptSections(t *testing.T) {
	p := BuildStudyPrompt("Thermodynamics")
	assert.Equal(t, KindStudy, p.Kind)

	want := []string{
		"## 1. Introduction to Thermodynamics",
		"## 2. Core Concepts and Principles",
		"## 3. Key Topics and Sub-fields",
		"## 4. Practical Applications",
		"## 5. Advanced Topics and Current Research",
		"## 6. Study Questions and Practice Problems",
		"## 7. Further Resources",
	}
	last := -1
	for _, h := range want {
		idx := strings.Index(p.User, h)
		assert.Greater(t, idx, last, "section %q out of order or missing", h)
		last = idx
	}
}

func TestPostProcessDigest(t *testing.T) {
	long := strings.Repeat("a", 200)
	notes, err := PostProcess("# Title\n\n- bullet\n" + long)
	assert.NoError(t, err)
	assert.Len(t, notes.Digest, digestLimit)

	notes, err = PostProcess("## only headings\n## here")
	assert.NoError(t, err)
	assert.Equal(t, "## only headings ## here", notes.Digest)
}
