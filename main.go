// proxmenux-installer - guided install and removal for ProxMenux.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/proxmenux-installer/internal/cli"
	"github.com/jeranaias/proxmenux-installer/internal/config"
	"github.com/jeranaias/proxmenux-installer/internal/install"
	"github.com/jeranaias/proxmenux-installer/internal/journal"
	"github.com/jeranaias/proxmenux-installer/internal/run"
)

const version = "1.2.0"

func main() {
	textMode := false
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--text", "-t", "--simple":
			textMode = true
		case "--help", "-h":
			printHelp()
			return
		case "--version", "-v":
			fmt.Printf("proxmenux-installer v%s\n", version)
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n\n", arg)
			printHelp()
			os.Exit(1)
		}
	}

	if os.Geteuid() != 0 {
		fmt.Fprintln(os.Stderr, cli.ErrorStyle.Render(install.ErrNotRoot.Error()))
		fmt.Fprintln(os.Stderr, "Try: sudo proxmenux-installer")
		os.Exit(1)
	}

	paths := config.DefaultPaths()
	settings, err := config.LoadSettings(paths.SettingsFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.WarningStyle.Render("settings unreadable, using defaults: "+err.Error()))
	}
	if settings.NoColor {
		cli.DisableColors()
	}
	store := config.NewStore(paths.ConfigFile())
	runner := run.NewExecRunner()

	jnl, err := journal.Open(paths.JournalFile())
	if err != nil {
		// The install proceeds without receipts rather than not at all.
		fmt.Fprintln(os.Stderr, cli.WarningStyle.Render("install journal unavailable: "+err.Error()))
		jnl = nil
	} else {
		defer jnl.Close()
	}

	orch := install.New(paths, store, runner, jnl)
	orch.Version = version
	orch.KeepJournalRuns = settings.KeepJournalRuns

	// Piped or redirected output gets the plain flow automatically.
	if textMode || settings.TextMode || !cli.IsTTY() || !cli.IsStdoutTTY() {
		os.Exit(runText(orch, paths, store, runner))
	}

	p := tea.NewProgram(newWizard(orch, paths, store, runner), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running installer: %v\n", err)
		os.Exit(1)
	}
	if w, ok := final.(*wizard); ok && w.failed() {
		if errors.Is(w.runErr, install.ErrCancelled) {
			cli.ShowCancellationMessage()
		}
		os.Exit(1)
	}
}

// printHelp shows usage information
func printHelp() {
	fmt.Println(`proxmenux-installer v` + version + `

Usage: proxmenux-installer [OPTIONS]

Options:
  --text, -t     Run in text mode (copy/paste friendly)
  --help, -h     Show this help
  --version, -v  Show version

The default mode is an interactive installer. It detects any existing
ProxMenux installation, walks through host checks, and installs or
removes the toolkit. Use --text on serial consoles or when capturing
output; non-terminal output selects text mode automatically.`)
}
