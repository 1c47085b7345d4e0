// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package install

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Languages are the locale codes offered for Translation installs, in
// menu order. The selection is made once and reused on later runs.
var Languages = []string{"en", "es", "fr", "de", "it", "pt"}

// IsSupportedLanguage reports whether code is one of the offered locales.
func IsSupportedLanguage(code string) bool {
	for _, l := range Languages {
		if l == code {
			return true
		}
	}
	return false
}

// LanguageLabel renders a locale code for menus, e.g. "French (français)".
func LanguageLabel(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}

	english := display.English.Tags().Name(tag)
	if english == "" {
		return code
	}
	self := display.Self.Name(tag)
	if self != "" && !strings.EqualFold(self, english) {
		return fmt.Sprintf("%s (%s)", english, self)
	}
	return english
}
