package catalog

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md = goldmark.New(goldmark.WithExtensions(extension.GFM))

	aboutPolicy = func() *bluemonday.Policy {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").OnElements("p", "span")
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		return policy
	}()
)

// RenderMarkdown converts markdown to sanitised HTML.
func RenderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(aboutPolicy.SanitizeBytes(buf.Bytes())), nil
}

// AboutHTML renders the profile's about text.
func (p Profile) AboutHTML() (template.HTML, error) {
	return RenderMarkdown(p.About)
}
