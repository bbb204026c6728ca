package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/flytaly/mdsite/testutils"
	"github.com/stretchr/testify/assert"
)

func TestMarkdownToBlocks(t *testing.T) {
	t.Run("paragraphs and list", func(t *testing.T) {
		md := `
This is **bolded** paragraph

This is another paragraph with _italic_ text and ` + "`code`" + ` here
This is the same paragraph on a new line

- This is a list
- with items
`
		testutils.Compare(t, MarkdownToBlocks(md), []string{
			"This is **bolded** paragraph",
			"This is another paragraph with _italic_ text and `code` here\nThis is the same paragraph on a new line",
			"- This is a list\n- with items",
		})
	})

	t.Run("several blank lines", func(t *testing.T) {
		testutils.Compare(t, MarkdownToBlocks("first\n\n\n\nsecond"), []string{"first", "second"})
	})

	t.Run("whitespace only lines stay inside a block", func(t *testing.T) {
		testutils.Compare(t, MarkdownToBlocks("first\n  \t\nsecond\n\nthird"), []string{"first\n  \t\nsecond", "third"})

		code := "```\nfunc a() {\n    \n\treturn **x**\n}\n```"
		blocks := MarkdownToBlocks(code)
		testutils.Compare(t, blocks, []string{code})
		assert.Equal(t, CodeBlock, BlockToBlockType(blocks[0]).Type)
	})

	t.Run("inner indentation is kept", func(t *testing.T) {
		testutils.Compare(t, MarkdownToBlocks("   ```\n    indented\n```   "), []string{"```\n    indented\n```"})
	})

	t.Run("windows line endings", func(t *testing.T) {
		testutils.Compare(t, MarkdownToBlocks("a\r\nb\r\n\r\nc\r"), []string{"a\nb", "c"})
	})

	t.Run("empty document", func(t *testing.T) {
		assert.Empty(t, MarkdownToBlocks("\n \n\n"))
	})
}

func TestBlockToBlockType(t *testing.T) {
	var tenItems []string
	for i := 1; i <= 10; i++ {
		tenItems = append(tenItems, fmt.Sprintf("%d. item", i))
	}

	tests := []struct {
		block string
		typ   BlockType
		level int
	}{
		{"# heading", Heading, 1},
		{"## heading", Heading, 2},
		{"### heading", Heading, 3},
		{"#### heading", Heading, 4},
		{"##### heading", Heading, 5},
		{"###### heading", Heading, 6},
		{"####### heading", Paragraph, 0},
		{"#heading", Paragraph, 0},
		{"```\ncode\n```", CodeBlock, 0},
		{"``````", Paragraph, 0},
		{"```\ncode", Paragraph, 0},
		{"> quote\n> more", Quote, 0},
		{"> quote\n>\n> more", Quote, 0},
		{"> quote\nnot quote", Paragraph, 0},
		{">quote", Paragraph, 0},
		{"- a\n- b", UnorderedList, 0},
		{"* a\n* b", UnorderedList, 0},
		{"- a\n* b", Paragraph, 0},
		{"-a", Paragraph, 0},
		{"1. a\n2. b\n3. c", OrderedList, 0},
		{"1. a\n3. b", Paragraph, 0},
		{"2. a", Paragraph, 0},
		{"1.a", Paragraph, 0},
		{strings.Join(tenItems, "\n"), OrderedList, 0},
		{"just text", Paragraph, 0},
	}
	for _, tt := range tests {
		t.Run(tt.block, func(t *testing.T) {
			got := BlockToBlockType(tt.block)
			assert.Equal(t, tt.typ, got.Type)
			assert.Equal(t, tt.level, got.Level)
			assert.Equal(t, tt.block, got.Content)
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb\nc\n", NormalizeNewlines("a\r\nb\rc\n"))
	assert.Equal(t, "unchanged", NormalizeNewlines("unchanged"))
}
