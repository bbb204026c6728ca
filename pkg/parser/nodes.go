package parser

import "fmt"

// TextType is the kind of an inline span
type TextType int

const (
	Text TextType = iota // plain text
	Bold
	Italic
	Code
	Link
	Image
)

func (t TextType) String() string {
	switch t {
	case Text:
		return "text"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case Link:
		return "link"
	case Image:
		return "image"
	}
	return "?"
}

// TextNode is a typed run of inline text.
// URL is set only for links and images, Text holds the label or alt text for them.
type TextNode struct {
	Text string
	Type TextType
	URL  string
}

func (n TextNode) String() string {
	if n.URL != "" {
		return fmt.Sprintf("TextNode(%q, %s, %q)", n.Text, n.Type, n.URL)
	}
	return fmt.Sprintf("TextNode(%q, %s)", n.Text, n.Type)
}

func newTextNode(text string) TextNode {
	return TextNode{Text: text, Type: Text}
}

// LinkMatch is a label/destination pair found by the link and image extractors
type LinkMatch struct {
	Text string
	URL  string
}

// BlockType is the structural type of a block
type BlockType int

const (
	Paragraph BlockType = iota
	Heading
	CodeBlock
	Quote
	UnorderedList
	OrderedList
)

func (t BlockType) String() string {
	switch t {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case CodeBlock:
		return "code"
	case Quote:
		return "quote"
	case UnorderedList:
		return "unordered list"
	case OrderedList:
		return "ordered list"
	}
	return "?"
}

// Block is a blank-line separated chunk of a document with its classified type
type Block struct {
	Type    BlockType
	Level   int // heading level (1-6), zero for other types
	Content string
}
