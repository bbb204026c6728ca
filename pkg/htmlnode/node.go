/*
Package htmlnode implements a minimal HTML tree: leaf elements that carry text
and parent elements that carry other nodes. Values are written verbatim, no
escaping is done.
*/
package htmlnode

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
)

var (
	ErrEmptyNode  = errors.New("node needs a value or children")
	ErrNoTag      = errors.New("parent node needs a tag")
	ErrEmptyTag   = errors.New("tag cannot be empty")
	ErrNoChildren = errors.New("parent node must have at least one child")
)

// Node is either a *Leaf or a *Parent.
type Node interface {
	Render() (string, error)
	render(sb *strings.Builder) error
}

// Attr is a shorthand for an attribute without namespace.
func Attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// RenderAttributes returns attributes as ` key="val"` pairs in the given order,
// or an empty string if there are none.
func RenderAttributes(attrs []html.Attribute) string {
	if len(attrs) == 0 {
		return ""
	}
	var sb strings.Builder
	writeAttributes(&sb, attrs)
	return sb.String()
}

func writeAttributes(sb *strings.Builder, attrs []html.Attribute) {
	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(a.Val)
		sb.WriteByte('"')
	}
}

// Leaf is an element without children. Empty Tag means raw text.
type Leaf struct {
	Tag   string
	Value string
	Attrs []html.Attribute
}

func NewLeaf(tag, value string, attrs ...html.Attribute) *Leaf {
	return &Leaf{Tag: tag, Value: value, Attrs: attrs}
}

func (l *Leaf) Render() (string, error) {
	var sb strings.Builder
	if err := l.render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (l *Leaf) render(sb *strings.Builder) error {
	if l.Tag == "" {
		sb.WriteString(l.Value)
		return nil
	}
	sb.WriteByte('<')
	sb.WriteString(l.Tag)
	writeAttributes(sb, l.Attrs)
	sb.WriteByte('>')
	// an empty value renders as a void element, e.g. <img ...>
	if l.Value == "" {
		return nil
	}
	sb.WriteString(l.Value)
	writeClosingTag(sb, l.Tag)
	return nil
}

// Parent is an element whose content is made of child nodes only.
type Parent struct {
	Tag      string
	Children []Node
	Attrs    []html.Attribute
}

// NewParent validates what can be checked at construction time.
// A nil children slice is an empty node (ErrEmptyNode), an empty but non-nil
// one is reported later by Render (ErrNoChildren). A string tag has no absent
// state, so "" is rejected here with ErrNoTag; ErrEmptyTag is returned by
// Render for a Parent literal built without a tag.
func NewParent(tag string, children []Node, attrs ...html.Attribute) (*Parent, error) {
	if children == nil {
		return nil, ErrEmptyNode
	}
	if tag == "" {
		return nil, ErrNoTag
	}
	return &Parent{Tag: tag, Children: children, Attrs: attrs}, nil
}

func (p *Parent) Render() (string, error) {
	var sb strings.Builder
	if err := p.render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (p *Parent) render(sb *strings.Builder) error {
	if p.Tag == "" {
		return ErrEmptyTag
	}
	if len(p.Children) == 0 {
		return ErrNoChildren
	}
	sb.WriteByte('<')
	sb.WriteString(p.Tag)
	writeAttributes(sb, p.Attrs)
	sb.WriteByte('>')
	for _, child := range p.Children {
		if err := child.render(sb); err != nil {
			return err
		}
	}
	writeClosingTag(sb, p.Tag)
	return nil
}

func writeClosingTag(sb *strings.Builder, tag string) {
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
}
