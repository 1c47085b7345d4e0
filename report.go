// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/proxmenux-installer/internal/config"
	"github.com/jeranaias/proxmenux-installer/internal/detect"
	"github.com/jeranaias/proxmenux-installer/internal/install"
)

// renderMarkdown renders a report for the alt-screen. Markdown in, styled
// terminal text out; the raw markdown is still readable if styling fails.
func renderMarkdown(md string) string {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return out
}

// renderInstallReport builds the closing screen of a successful install.
func renderInstallReport(mode detect.InstallType, language string, store *config.Store) string {
	var b strings.Builder

	b.WriteString("# ProxMenux installed\n\n")
	fmt.Fprintf(&b, "**Mode:** %s install\n\n", mode)
	if mode == detect.TypeTranslation {
		fmt.Fprintf(&b, "**Language:** %s\n\n", install.LanguageLabel(language))
	}

	statuses := store.Statuses()
	if len(statuses) > 0 {
		components := make([]string, 0, len(statuses))
		for name := range statuses {
			components = append(components, name)
		}
		sort.Strings(components)

		b.WriteString("## Components\n\n")
		for _, name := range components {
			fmt.Fprintf(&b, "- %s: %s\n", name, statuses[name].Status)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Next steps\n\n")
	b.WriteString("- Run `menu` to open ProxMenux\n")
	fmt.Fprintf(&b, "- The monitor answers on http://localhost:%d\n", config.MonitorPort)
	b.WriteString("- Re-run this installer any time to repair or extend the installation\n")

	return renderMarkdown(b.String())
}

// renderFailureReport builds the closing screen of a failed install.
func renderFailureReport(err error) string {
	var b strings.Builder

	b.WriteString("# Install failed\n\n")
	fmt.Fprintf(&b, "```\n%v\n```\n\n", err)
	b.WriteString("Re-run the installer after fixing the cause; completed steps are skipped. ")
	b.WriteString("A partial installation can also be removed and started over.\n")

	return renderMarkdown(b.String())
}

// renderUninstallReport builds the closing screen of a removal.
func renderUninstallReport(warnings []string) string {
	var b strings.Builder

	b.WriteString("# ProxMenux removed\n\n")
	if len(warnings) == 0 {
		b.WriteString("Everything the installer had placed on this node is gone. ")
		b.WriteString("OS packages installed as dependencies stay in place.\n")
	} else {
		b.WriteString("Removal finished with warnings; whatever could be removed was removed.\n")
	}

	return renderMarkdown(b.String())
}
