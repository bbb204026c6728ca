package parser

import (
	"strconv"
	"strings"
)

// MarkdownToBlocks splits a document into blocks separated by one or more
// empty lines. A line holding only spaces or tabs belongs to its block, so
// code fences keep their indented empty lines. Surrounding whitespace of
// every block is trimmed and empty blocks are dropped, indentation inside a
// block is kept.
func MarkdownToBlocks(doc string) []string {
	doc = NormalizeNewlines(doc)
	var blocks []string
	var current []string
	flush := func() {
		if block := strings.TrimSpace(strings.Join(current, "\n")); block != "" {
			blocks = append(blocks, block)
		}
		current = current[:0]
	}
	for _, line := range strings.Split(doc, "\n") {
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

// BlockToBlockType classifies a trimmed block by its first character.
// A multi-line rule that fails on any line turns the whole block into a
// paragraph.
func BlockToBlockType(block string) Block {
	b := Block{Type: Paragraph, Content: block}
	if block == "" {
		return b
	}
	switch block[0] {
	case '#':
		for level := 6; level >= 1; level-- {
			if strings.HasPrefix(block, strings.Repeat("#", level)+" ") {
				b.Type, b.Level = Heading, level
				break
			}
		}
	case '`':
		if len(block) > 6 && strings.HasPrefix(block, "```") && strings.HasSuffix(block, "```") {
			b.Type = CodeBlock
		}
	case '>':
		if everyLine(block, isQuoteLine) {
			b.Type = Quote
		}
	case '-', '*':
		marker := block[:1] + " "
		if everyLine(block, func(_ int, line string) bool { return strings.HasPrefix(line, marker) }) {
			b.Type = UnorderedList
		}
	case '1':
		if everyLine(block, isOrderedItem) {
			b.Type = OrderedList
		}
	}
	return b
}

// Blocks splits and classifies a document
func Blocks(doc string) []Block {
	raw := MarkdownToBlocks(doc)
	blocks := make([]Block, 0, len(raw))
	for _, b := range raw {
		blocks = append(blocks, BlockToBlockType(b))
	}
	return blocks
}

func everyLine(block string, fn func(i int, line string) bool) bool {
	for i, line := range strings.Split(block, "\n") {
		if !fn(i, line) {
			return false
		}
	}
	return true
}

func isQuoteLine(_ int, line string) bool {
	return line == ">" || strings.HasPrefix(line, "> ")
}

// items are numbered strictly from 1
func isOrderedItem(i int, line string) bool {
	return strings.HasPrefix(line, strconv.Itoa(i+1)+". ")
}

// NormalizeNewlines replaces CR (mac) and CRLF (windows) line endings with LF
func NormalizeNewlines(s string) string {
	if strings.IndexByte(s, '\r') < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	n := len(s)
	for i := 0; i < n; i++ {
		c := s[i]
		if c != '\r' {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('\n')
		if i < n-1 && s[i+1] == '\n' {
			// this was CRLF, so skip the LF
			i++
		}
	}
	return sb.String()
}
