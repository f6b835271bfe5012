package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	dot := "digraph flowchart {\n  rankdir=\"TB\";\n  A;\n}"

	cases := []string{
		dot,
		"```dot\n" + dot + "\n```",
		"```\n" + dot + "\n```",
		"  \n" + dot + "\n  ",
	}
	for _, in := range cases {
		assert.Equal(t, dot, stripFences(in))
	}
}

func TestStripFencesEmpty(t *testing.T) {
	assert.Equal(t, "", stripFences(""))
	assert.Equal(t, "", stripFences("```dot\n```"))
}

func TestInitialPromptIncludesInstruction(t *testing.T) {
	p := initialPrompt(`Start with step "A"`)
	assert.Contains(t, p, "Start with step")
	assert.Contains(t, p, "digraph flowchart {")
}

func TestModificationPromptIncludesCurrentGraph(t *testing.T) {
	p := modificationPrompt("digraph flowchart { A; }", "Add step B after A")
	assert.Contains(t, p, "digraph flowchart { A; }")
	assert.Contains(t, p, "Add step B after A")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 50))
	long := strings.Repeat("x", 60)
	assert.Equal(t, strings.Repeat("x", 50)+"...", truncate(long, 50))
}
