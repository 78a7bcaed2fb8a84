package generator

import (
	"fmt"
	"strings"
)

// PromptKind tells which step of the flow a prompt belongs to.
type PromptKind int

const (
	KindClassify PromptKind = iota + 1
	KindStudy
)

func (k PromptKind) String() string {
	switch k {
	case KindClassify:
		return "classify"
	case KindStudy:
		return "study"
	default:
		return "unknown"
	}
}

// Prompt is the message set sent to the LLM.
type Prompt struct {
	Kind   PromptKind
	System string
	User   string
}

// studySections are the headings every study guide is asked to follow.
var studySections = []struct {
	Title   string
	Bullets []string
}{
	{"Introduction to %s", []string{
		"Define the subject and why it matters in its field",
		"Give historical context where it helps",
		"Place the topic within the broader discipline",
	}},
	{"Core Concepts and Principles", []string{
		"Explain the fundamental theories and ideas",
		"Break complex ideas into understandable parts",
		"Include relevant formulas, diagrams or frameworks",
	}},
	{"Key Topics and Sub-fields", []string{
		"Survey the main areas of study within the topic",
		"Point out how the concepts relate to each other",
	}},
	{"Practical Applications", []string{
		"Describe real-world uses",
		"Give examples of the knowledge being applied",
	}},
	{"Advanced Topics and Current Research", []string{
		"Introduce the more demanding aspects of the subject",
		"Mention current trends and developments",
	}},
	{"Study Questions and Practice Problems", []string{
		"Ask questions that test understanding",
		"Add example problems with brief solutions where it makes sense",
	}},
	{"Further Resources", []string{
		"Suggest kinds of material for further study",
	}},
}

// BuildClassifyPrompt asks for a one-word VALID/INVALID verdict on topic.
func BuildClassifyPrompt(topic string) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You validate educational content. Decide whether '%s' is a topic from any field of study: ", topic))
	sb.WriteString("school subjects, college courses, technical subjects, professional education, vocational training or any other legitimate area of learning.\n\n")
	sb.WriteString("Examples of valid topics:\n")
	sb.WriteString("- School subjects (math, science, history, languages)\n")
	sb.WriteString("- Engineering branches (CSE, ECE, mechanical, civil)\n")
	sb.WriteString("- Programming languages (Java, Python, JavaScript)\n")
	sb.WriteString("- Medical subjects (anatomy, cardiology, nursing)\n")
	sb.WriteString("- Intermediate/high school streams (MPC, BiPC)\n")
	sb.WriteString("- Professional fields (accounting, management, law)\n")
	sb.WriteString("- Technical skills (cybersecurity, cloud computing)\n\n")
	sb.WriteString("Answer with exactly one word, VALID or INVALID. When the topic has any educational merit, answer VALID.")
	return Prompt{Kind: KindClassify, User: sb.String()}
}

// BuildStudyPrompt asks for a sectioned study guide on topic.
func BuildStudyPrompt(topic string) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are an expert educator in '%s'. Write a thorough, detailed and academically rigorous ", topic))
	sb.WriteString("study guide for a student of this subject.\n\n")
	sb.WriteString("Organize it into these sections:\n\n")
	for i, sec := range studySections {
		title := sec.Title
		if strings.Contains(title, "%s") {
			title = fmt.Sprintf(title, topic)
		}
		sb.WriteString(fmt.Sprintf("## %d. %s\n", i+1, title))
		for _, b := range sec.Bullets {
			sb.WriteString(fmt.Sprintf("- %s\n", b))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Keep it rigorous but approachable for a motivated student.")
	return Prompt{Kind: KindStudy, User: sb.String()}
}
