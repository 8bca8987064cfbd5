// Package render turns the post collection into the fragments shown by the
// blog pages: the listing, the category breakdown, recent posts and the
// Markdown body of a single post.
package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/folio/internal/cache"
	"github.com/debemdeboas/folio/internal/util"
)

var renderLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

// Markdown renders a post body. Raw HTML in the source is dropped, so the
// result is safe to embed. Results are cached per content and syntax theme.
func Markdown(content, syntaxTheme string) template.HTML {
	hash := util.ContentHashString(content)
	return cache.RenderMarkdownOnce(hash, syntaxTheme, func() template.HTML {
		renderLogger.Debug().Str("contentHash", hash).Str("syntaxTheme", syntaxTheme).Msg("Cache miss for rendered markdown")
		return template.HTML(renderMarkdown([]byte(content), syntaxTheme))
	})
}

func renderMarkdown(md []byte, syntaxTheme string) []byte {
	opts := md_html.RendererOptions{
		Flags: md_html.CommonFlags | md_html.SkipHTML | md_html.HrefTargetBlank | md_html.NofollowLinks | md_html.Safelink,
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			if code, ok := node.(*ast.CodeBlock); ok && entering {
				var lang string
				if info := code.Info; info != nil {
					lang = string(info)
				}
				fmt.Fprintf(w, "<div class=\"highlight\">%s</div>", HighlightCode(string(code.Literal), lang, syntaxTheme))
				return ast.GoToNext, true
			}
			return ast.GoToNext, false
		},
	}

	doc := parser.NewWithExtensions(
		parser.CommonExtensions | parser.HardLineBreak | parser.NoEmptyLineBeforeBlock,
	).Parse(markdown.NormalizeNewlines(md))
	return markdown.Render(doc, md_html.NewRenderer(opts))
}
