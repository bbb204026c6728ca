package site

import (
	"regexp"
	"strings"
)

const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// matches root relative and protocol relative (second group) URLs
var rootURL = regexp.MustCompile(`(href|src)="/(/?)`)

// ApplyTemplate fills the title and content placeholders in one pass, so
// placeholders inside the page itself are left alone. Root relative href and
// src attributes are then prefixed with basePath, protocol relative ones
// ("//host/...") are kept.
func ApplyTemplate(tmpl, title, content, basePath string) string {
	page := strings.NewReplacer(TitlePlaceholder, title, ContentPlaceholder, content).Replace(tmpl)
	if basePath == "" || basePath == "/" {
		return page
	}
	return rootURL.ReplaceAllStringFunc(page, func(m string) string {
		if strings.HasSuffix(m, "//") {
			return m
		}
		return strings.TrimSuffix(m, "/") + basePath
	})
}
