package parser

import (
	"regexp"
	"strings"

	"github.com/flytaly/mdsite/pkg/htmlnode"
)

// Parsing of inline elements

var (
	imageRe = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^\(\)]*)\)`)
	// RE2 has no lookbehind: the optional "!" is captured and such matches are
	// skipped, they are images.
	linkRe = regexp.MustCompile(`(!?)\[([^\[\]]*)\]\(([^\(\)]*)\)`)
)

// TextToTextNodes splits text into typed spans. Passes run in a fixed order:
// bold, italic, code, images, links. Each pass only looks at plain spans left
// by the previous one.
func TextToTextNodes(text string) []TextNode {
	if text == "" {
		return nil
	}
	nodes := []TextNode{newTextNode(text)}
	nodes = SplitNodesDelimiter(nodes, "**", Bold)
	nodes = SplitNodesDelimiter(nodes, "_", Italic)
	nodes = SplitNodesDelimiter(nodes, "`", Code)
	nodes = SplitNodesImage(nodes)
	nodes = SplitNodesLink(nodes)
	return nodes
}

// SplitNodesDelimiter extracts spans enclosed by pairs of delim from plain
// nodes. Only count/2 pairs are taken, an unmatched delimiter stays in the
// plain text. Empty pairs are dropped.
func SplitNodesDelimiter(nodes []TextNode, delim string, typ TextType) []TextNode {
	if delim == "" {
		panic("parser: empty delimiter")
	}
	size := len(delim)
	result := make([]TextNode, 0, len(nodes))
	for _, node := range nodes {
		pairs := strings.Count(node.Text, delim) / 2
		if node.Type != Text || pairs == 0 {
			result = append(result, node)
			continue
		}
		text := node.Text
		for ; pairs > 0; pairs-- {
			open := strings.Index(text, delim)
			if open < 0 {
				break
			}
			end := strings.Index(text[open+size:], delim)
			if end < 0 {
				break
			}
			end += open + size
			if open > 0 {
				result = append(result, newTextNode(text[:open]))
			}
			if inner := text[open+size : end]; inner != "" {
				result = append(result, TextNode{Text: inner, Type: typ})
			}
			text = text[end+size:]
		}
		if text != "" {
			result = append(result, newTextNode(text))
		}
	}
	return result
}

// ExtractMarkdownImages returns alt text and source of every ![alt](src)
func ExtractMarkdownImages(text string) []LinkMatch {
	var matches []LinkMatch
	for _, m := range imageRe.FindAllStringSubmatch(text, -1) {
		matches = append(matches, LinkMatch{Text: m[1], URL: m[2]})
	}
	return matches
}

// ExtractMarkdownLinks returns label and destination of every [label](url)
// that is not an image
func ExtractMarkdownLinks(text string) []LinkMatch {
	var matches []LinkMatch
	for _, m := range linkRe.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			continue
		}
		matches = append(matches, LinkMatch{Text: m[2], URL: m[3]})
	}
	return matches
}

func SplitNodesImage(nodes []TextNode) []TextNode {
	return splitNodesPattern(nodes, imageRe, Image, 1)
}

func SplitNodesLink(nodes []TextNode) []TextNode {
	return splitNodesPattern(nodes, linkRe, Link, 2)
}

// splitNodesPattern cuts every match of re out of plain nodes. group is the
// index of the label submatch, the destination follows it. For the link
// pattern group 1 is the "!" marker and matches carrying it are left as text.
func splitNodesPattern(nodes []TextNode, re *regexp.Regexp, typ TextType, group int) []TextNode {
	result := make([]TextNode, 0, len(nodes))
	for _, node := range nodes {
		if node.Type != Text {
			result = append(result, node)
			continue
		}
		text := node.Text
		pos := 0
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			if group > 1 && m[3] > m[2] {
				continue
			}
			if m[0] > pos {
				result = append(result, newTextNode(text[pos:m[0]]))
			}
			label := text[m[2*group]:m[2*group+1]]
			url := text[m[2*group+2]:m[2*group+3]]
			result = append(result, TextNode{Text: label, Type: typ, URL: url})
			pos = m[1]
		}
		if pos < len(text) {
			result = append(result, newTextNode(text[pos:]))
		}
	}
	return result
}

// TextNodeToHTMLNode maps a span to its leaf element
func TextNodeToHTMLNode(node TextNode) *htmlnode.Leaf {
	switch node.Type {
	case Bold:
		return htmlnode.NewLeaf("b", node.Text)
	case Italic:
		return htmlnode.NewLeaf("i", node.Text)
	case Code:
		return htmlnode.NewLeaf("code", node.Text)
	case Link:
		return htmlnode.NewLeaf("a", node.Text, htmlnode.Attr("href", node.URL))
	case Image:
		return htmlnode.NewLeaf("img", "", htmlnode.Attr("src", node.URL), htmlnode.Attr("alt", node.Text))
	default:
		return htmlnode.NewLeaf("", node.Text)
	}
}
