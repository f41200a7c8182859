package tui

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const defaultChromaStyleName = "catppuccin-mocha"

// highlightCode applies syntax highlighting to a preview and returns
// ANSI-colored text. The language comes from the file name, falling back to
// content analysis (shebangs, modelines). Unknown languages and highlighting
// errors return the source unchanged.
func highlightCode(source, filename string) string {
	lexer := detectLexer(filename, source)
	if lexer == nil {
		return source
	}
	lexer = chroma.Coalesce(lexer)

	styleName := activeTheme.ChromaStyleName
	if styleName == "" {
		styleName = defaultChromaStyleName
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}

	result := buf.String()
	if !strings.HasSuffix(source, "\n") {
		result = strings.TrimRight(result, "\n")
	}
	return result
}

// detectLexer matches by base name first, then asks chroma to analyse the
// content.
func detectLexer(filename, source string) chroma.Lexer {
	name := filepath.Base(filename)
	if filename != "" && name != "." {
		if lexer := lexers.Match(name); lexer != nil {
			return lexer
		}
	}
	if source == "" {
		return nil
	}
	return lexers.Analyse(source)
}
