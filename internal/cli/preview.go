// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// RenderUnitFile renders a systemd unit with syntax highlighting for the
// confirmation screens. Returns the raw text when colors are off or
// highlighting fails.
func RenderUnitFile(content string) string {
	if !ColorsEnabled() {
		return content
	}

	lexer := lexers.Get("systemd")
	if lexer == nil {
		lexer = lexers.Get("ini")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return content
	}
	return buf.String()
}
