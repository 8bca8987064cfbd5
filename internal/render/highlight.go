package render

import (
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/debemdeboas/folio/internal/theme"
)

// HighlightCode renders code as chroma markup using CSS classes. Unknown
// languages are guessed from the code, then fall back to plain text.
// The result is always escaped.
func HighlightCode(code, language, syntaxTheme string) string {
	lexer := lexers.Get(language)
	if lexer == nil && language == "" {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "<pre>" + html.EscapeString(code) + "</pre>"
	}

	var buf strings.Builder
	if err := theme.GetFormatter().Format(&buf, styles.Get(syntaxTheme), iterator); err != nil {
		renderLogger.Warn().Err(err).Str("language", language).Msg("Error highlighting code")
		return "<pre>" + html.EscapeString(code) + "</pre>"
	}
	return buf.String()
}
