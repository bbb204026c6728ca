package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyTemplate(t *testing.T) {
	tmpl := `<html><head><title>{{ Title }}</title><link href="/index.css" rel="stylesheet"></head><body>{{ Content }}</body></html>`

	tests := []struct {
		name     string
		content  string
		basePath string
		want     string
	}{
		{
			"root base path",
			`<div><img src="/images/a.png" alt="a"></div>`, "/",
			`<html><head><title>Hi</title><link href="/index.css" rel="stylesheet"></head><body><div><img src="/images/a.png" alt="a"></div></body></html>`,
		},
		{
			"sub path",
			`<div><a href="/blog/x">x</a><a href="https://example.com">e</a></div>`, "/site/",
			`<html><head><title>Hi</title><link href="/site/index.css" rel="stylesheet"></head><body><div><a href="/site/blog/x">x</a><a href="https://example.com">e</a></div></body></html>`,
		},
		{
			"protocol relative urls are kept",
			`<div><img src="//cdn.x/a.png" alt="a"><a href="/">home</a></div>`, "/blog/",
			`<html><head><title>Hi</title><link href="/blog/index.css" rel="stylesheet"></head><body><div><img src="//cdn.x/a.png" alt="a"><a href="/blog/">home</a></div></body></html>`,
		},
		{
			"placeholders in content are kept",
			`<div><p>{{ Title }}</p></div>`, "",
			`<html><head><title>Hi</title><link href="/index.css" rel="stylesheet"></head><body><div><p>{{ Title }}</p></div></body></html>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyTemplate(tmpl, "Hi", tt.content, tt.basePath))
		})
	}
}
