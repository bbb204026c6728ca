/*
Package parser converts a small dialect of markdown into an HTML tree.

A document is split into blank-line separated blocks, every block is
classified (paragraph, heading, code, quote, lists) and its inline content is
tokenized into plain, bold, italic, code, link and image spans. Nested
emphasis, escapes and reference links are not supported: malformed markup is
kept as literal text.
*/
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flytaly/mdsite/pkg/htmlnode"
)

// MarkdownToHTMLNode builds the tree of a whole document under a root div
func MarkdownToHTMLNode(doc string) (htmlnode.Node, error) {
	blocks := Blocks(doc)
	children := make([]htmlnode.Node, 0, len(blocks))
	for i, block := range blocks {
		node, err := BlockToHTMLNode(block)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, block.Type, err)
		}
		children = append(children, node)
	}
	return newParent("div", children)
}

// RenderDocument converts markdown to an HTML string
func RenderDocument(doc string) (string, error) {
	node, err := MarkdownToHTMLNode(doc)
	if err != nil {
		return "", err
	}
	return node.Render()
}

// BlockToHTMLNode converts one classified block
func BlockToHTMLNode(block Block) (htmlnode.Node, error) {
	content := block.Content
	switch block.Type {
	case Heading:
		text := strings.TrimSpace(content[block.Level+1:])
		return inlineParent("h"+strconv.Itoa(block.Level), text)
	case CodeBlock:
		code := strings.TrimSpace(content[3:len(content)-3]) + "\n"
		return newParent("pre", []htmlnode.Node{htmlnode.NewLeaf("code", code)})
	case Quote:
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			if len(line) >= 2 {
				lines[i] = line[2:]
			} else {
				lines[i] = ""
			}
		}
		return inlineParent("blockquote", strings.Join(lines, "\n"))
	case UnorderedList:
		return listParent("ul", content)
	case OrderedList:
		return listParent("ol", content)
	default:
		return inlineParent("p", content)
	}
}

// inlineParent tokenizes text and wraps its spans under tag
func inlineParent(tag, text string) (htmlnode.Node, error) {
	spans := TextToTextNodes(text)
	children := make([]htmlnode.Node, 0, len(spans))
	for _, span := range spans {
		children = append(children, TextNodeToHTMLNode(span))
	}
	return newParent(tag, children)
}

// listParent makes an li for every line, the marker up to the first space
// is dropped
func listParent(tag, content string) (htmlnode.Node, error) {
	lines := strings.Split(content, "\n")
	items := make([]htmlnode.Node, 0, len(lines))
	for _, line := range lines {
		_, item, _ := strings.Cut(line, " ")
		li, err := inlineParent("li", strings.TrimSpace(item))
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return newParent(tag, items)
}

func newParent(tag string, children []htmlnode.Node) (htmlnode.Node, error) {
	p, err := htmlnode.NewParent(tag, children)
	if err != nil {
		return nil, err
	}
	return p, nil
}
