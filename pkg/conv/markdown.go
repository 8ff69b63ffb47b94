package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags
	termPolicy = bluemonday.NewPolicy()
)

func init() {
	termPolicy.AllowElements(
		"p", "br", "b", "strong", "i", "em", "u", "s", "del",
		"code", "pre", "blockquote", "ul", "ol", "li",
		"h1", "h2", "h3", "h4", "h5", "h6", "table", "thead", "tbody", "tr", "th", "td",
	)
	termPolicy.AllowAttrs("href").OnElements("a")
}

// MarkdownToTerminal renders an assistant answer for a plain terminal:
// markdown to HTML, sanitize, then flatten to text.
func MarkdownToTerminal(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	sanitized := termPolicy.SanitizeBytes(unsafeHTML)

	text, err := html2text.FromString(string(sanitized), html2text.Options{PrettyTables: true})
	if err != nil {
		// Better a raw answer than a lost one.
		return strings.TrimSpace(string(md))
	}
	return strings.TrimSpace(text)
}
