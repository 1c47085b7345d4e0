// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/peterh/liner"
)

// PromptLanguage asks for one of the offered locale codes, with tab
// completion over the codes and a labeled menu above the prompt. An
// empty answer takes deflt when one is given. Ctrl-C returns
// liner.ErrPromptAborted for the caller to map onto its cancel path.
func PromptLanguage(codes []string, label func(code string) string, deflt string) (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var out []string
		for _, code := range codes {
			if strings.HasPrefix(code, strings.ToLower(prefix)) {
				out = append(out, code)
			}
		}
		return out
	})

	fmt.Println()
	fmt.Println(SectionStyle.Render("Translation language"))
	fmt.Println()
	for _, code := range codes {
		marker := "  "
		if code == deflt {
			marker = HighlightStyle.Render("* ")
		}
		fmt.Printf("  %s%s  %s\n", marker, ValueStyle.Render(code), DimStyle.Render(label(code)))
	}
	fmt.Println()

	prompt := "Language"
	if deflt != "" {
		prompt += " [" + deflt + "]"
	}

	for {
		input, err := line.Prompt(prompt + ": ")
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(strings.TrimSpace(input))
		if choice == "" && deflt != "" {
			return deflt, nil
		}
		for _, code := range codes {
			if code == choice {
				return code, nil
			}
		}
		fmt.Println(WarningStyle.Render("Not an offered language: " + choice))
	}
}
