package render

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser        goldmark.Markdown
	policy          *bluemonday.Policy
	stripTagsPolicy *bluemonday.Policy
)

func init() {
	mdParser = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			// 原始 HTML 交由 bluemonday 清理
			html.WithUnsafe(),
		),
	)

	policy = bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	stripTagsPolicy = bluemonday.StripTagsPolicy()
}

// MarkdownToHTML 将 Markdown 正文转换为安全的 HTML
func MarkdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}

// Excerpt 纯文本摘要, 超过 limit 个字符时截断并追加省略号
func Excerpt(md string, limit int) string {
	text := md
	if out, err := MarkdownToHTML(md); err == nil {
		text = stripTagsPolicy.Sanitize(out)
	}
	text = strings.Join(strings.Fields(text), " ")

	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
