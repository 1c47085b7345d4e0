// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/proxmenux-installer/internal/cli"
	"github.com/jeranaias/proxmenux-installer/internal/config"
	"github.com/jeranaias/proxmenux-installer/internal/detect"
	"github.com/jeranaias/proxmenux-installer/internal/install"
	"github.com/jeranaias/proxmenux-installer/internal/preflight"
	"github.com/jeranaias/proxmenux-installer/internal/run"
	"github.com/jeranaias/proxmenux-installer/internal/util"
)

// =============================================================================
// TEXT MODE INSTALLER (Copy/Paste Friendly)
// =============================================================================

const lineWidth = 80

func banner(title string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", lineWidth))
	fmt.Println(centerLine(title))
	fmt.Println(strings.Repeat("=", lineWidth))
	fmt.Println()
}

func section(title string) {
	fmt.Println()
	fmt.Println(strings.Repeat("-", lineWidth))
	fmt.Println(centerLine(title))
	fmt.Println(strings.Repeat("-", lineWidth))
	fmt.Println()
}

func centerLine(s string) string {
	pad := (lineWidth - util.DisplayWidth(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

// textReporter prints step starts as numbered lines.
type textReporter struct{}

func (textReporter) Step(index, total int, title string) {
	fmt.Printf("\n[%d/%d] %s\n", index, total, title)
}

// runText drives the whole install or removal as a plain prompt-and-print
// flow. Returns the process exit code.
func runText(orch *install.Orchestrator, paths config.Paths, store *config.Store, runner run.Runner) int {
	if !cli.IsTTY() {
		fmt.Println("The ProxMenux installer needs an interactive terminal.")
		fmt.Println("Re-run from an interactive shell; --text keeps the flow copy/paste friendly.")
		return 1
	}

	reader := bufio.NewReader(os.Stdin)

	banner("PROXMENUX INSTALLER")
	fmt.Println(centerLine(tagline))
	fmt.Println()

	fmt.Println("This installer will:")
	fmt.Println("  [1] Check this host (Proxmox VE, apt, disk, memory)")
	fmt.Println("  [2] Install the required packages")
	fmt.Println("  [3] Fetch the ProxMenux scripts")
	fmt.Printf("  [4] Register the monitor service on port %d\n", config.MonitorPort)
	fmt.Println()
	fmt.Print("Press Enter to continue (or 'q' to quit): ")
	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(input) == "q" {
		fmt.Println("Installation cancelled.")
		return 0
	}

	section("HOST CHECKS")

	checks := preflight.New(runner, paths).All()
	for _, check := range checks {
		fmt.Printf("  %s %s: %s\n", cli.RenderStatus(check.Status), check.Name, check.Message)
		if check.Fix != "" {
			fmt.Println("       -> " + check.Fix)
		}
	}
	fmt.Println()
	if preflight.Fatal(checks) {
		fmt.Println(cli.ErrorStyle.Render("This host cannot run ProxMenux. Fix the failed checks and re-run."))
		return 1
	}

	current, err := detect.New(paths, store).Detect()
	if err != nil {
		current = detect.TypeUnknown
	}

	switch current {
	case detect.TypeNone:
		fmt.Println("No existing installation detected.")
	case detect.TypeTranslation:
		fmt.Printf("Detected: Translation installation (language %s)\n", store.ReadLanguage())
	default:
		fmt.Printf("Detected: %s installation\n", current)
	}

	options := []string{
		"Install ProxMenux",
		"Install ProxMenux with translation support",
	}
	if current.Installed() {
		options = append(options, "Remove ProxMenux from this node")
	}
	options = append(options, "Quit")

	choice := cli.PromptChoice("What would you like to do?", options)
	switch {
	case choice < 0 || choice == len(options)-1:
		cli.ShowCancellationMessage()
		return 0
	case current.Installed() && choice == 2:
		return textUninstall(paths, store, runner, current)
	}

	requested := detect.TypeNormal
	if choice == 1 {
		requested = detect.TypeTranslation
	}

	language := ""
	if requested == detect.TypeTranslation {
		deflt := store.ReadLanguage()
		if deflt == "" {
			deflt = "en"
		}
		language, err = cli.PromptLanguage(install.Languages, install.LanguageLabel, deflt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				cli.ShowCancellationMessage()
				return 1
			}
			fmt.Println(cli.ErrorStyle.Render("Language selection failed: " + err.Error()))
			return 1
		}
	}

	switch install.Reconcile(current, requested) {
	case install.ConfirmThenProceed:
		if !cli.PromptYesNo("An installation already exists. Add translation support over it?") {
			cli.ShowCancellationMessage()
			return 1
		}

	case install.ConfirmThenTeardown:
		ok, err := cli.ConfirmDangerousAction(
			"replace the Translation installation (its virtual environment and language cache are removed)",
			"replace")
		if err != nil {
			fmt.Println(cli.ErrorStyle.Render(err.Error()))
			return 1
		}
		if !ok {
			cli.ShowCancellationMessage()
			return 1
		}

		section("REMOVING PREVIOUS INSTALLATION")
		u := install.NewUninstaller(paths, store, runner)
		u.OnStep = func(title string) { fmt.Println("  -> " + title) }
		u.OnWarning = func(msg string) {
			fmt.Println("  " + cli.RenderStatus("warn") + " " + msg)
		}
		u.Run(current, true)
	}

	section("READY TO INSTALL")

	fmt.Println(cli.RenderLabel("Mode") + fmt.Sprintf("%s install", requested))
	if requested == detect.TypeTranslation {
		fmt.Println(cli.RenderLabel("Language") + install.LanguageLabel(language))
	}
	fmt.Println(cli.RenderLabel("Location") + paths.BaseDir)
	fmt.Println(cli.RenderLabel("Launcher") + paths.Launcher())
	fmt.Println()
	fmt.Printf("Monitor service (%s):\n", config.MonitorService)
	for _, line := range strings.Split(strings.TrimRight(cli.RenderUnitFile(orch.UnitPreview()), "\n"), "\n") {
		fmt.Println("    " + line)
	}
	fmt.Println()

	if !cli.PromptYesNo("Proceed with the installation?") {
		cli.ShowCancellationMessage()
		return 1
	}

	section("INSTALLING")

	orch.OnComponent = func(component string, status config.Status) {
		fmt.Printf("      %s %s\n", cli.RenderStatus(string(status)), component)
	}

	plan, err := orch.NewPlan(requested, language)
	if err != nil {
		fmt.Println(cli.ErrorStyle.Render("Cannot install: " + err.Error()))
		return 1
	}
	if err := plan.Execute(textReporter{}); err != nil {
		fmt.Println()
		fmt.Println(cli.RenderStatus("fail") + " Install failed: " + err.Error())
		fmt.Println("Re-run the installer after fixing the cause; completed steps are skipped.")
		return 1
	}

	textInstallSummary(requested, language, paths, store)
	return 0
}

// textUninstall removes the installation after a typed confirmation, with
// per-package offers for the translation extras.
func textUninstall(paths config.Paths, store *config.Store, runner run.Runner, current detect.InstallType) int {
	fmt.Println()
	fmt.Println("This will remove:")
	fmt.Println("  * " + paths.Launcher())
	fmt.Println("  * " + paths.BaseDir)
	if current == detect.TypeTranslation {
		fmt.Printf("  * %s (translation environment)\n", paths.VenvDir)
	}
	fmt.Printf("  * The %s service and its files\n", config.MonitorService)
	fmt.Println()
	fmt.Println("Shell profile and MOTD annotations are restored.")

	ok, err := cli.ConfirmDangerousAction("remove ProxMenux from this node", "remove proxmenux")
	if err != nil {
		fmt.Println(cli.ErrorStyle.Render(err.Error()))
		return 1
	}
	if !ok {
		cli.ShowCancellationMessage()
		return 1
	}

	section("REMOVING PROXMENUX")

	warnings := 0
	u := install.NewUninstaller(paths, store, runner)
	u.OnStep = func(title string) { fmt.Println("  -> " + title) }
	u.OnWarning = func(msg string) {
		warnings++
		fmt.Println("  " + cli.RenderStatus("warn") + " " + msg)
	}
	u.ConfirmRemovePackage = func(pkg string) bool {
		return cli.PromptYesNo("Also remove the OS package " + pkg + "?")
	}
	u.Run(current, false)

	fmt.Println()
	if warnings > 0 {
		fmt.Printf("%s ProxMenux removed with %d warning(s); see above.\n",
			cli.RenderStatus("warn"), warnings)
	} else {
		fmt.Println(cli.RenderStatus("ok") + " ProxMenux removed.")
	}
	fmt.Println("OS packages installed as dependencies stay unless removed above.")
	return 0
}

// textInstallSummary prints the closing report of a successful install.
func textInstallSummary(mode detect.InstallType, language string, paths config.Paths, store *config.Store) {
	section("INSTALL COMPLETE")

	fmt.Println(cli.RenderStatus("ok") + " ProxMenux installed.")
	fmt.Println()
	fmt.Println(cli.RenderLabel("Mode") + fmt.Sprintf("%s install", mode))
	if mode == detect.TypeTranslation {
		fmt.Println(cli.RenderLabel("Language") + install.LanguageLabel(language))
	}

	statuses := store.Statuses()
	if len(statuses) > 0 {
		components := make([]string, 0, len(statuses))
		for name := range statuses {
			components = append(components, name)
		}
		sort.Strings(components)

		fmt.Println()
		fmt.Println("Components:")
		for _, name := range components {
			fmt.Printf("  %s %s\n", cli.RenderStatus(string(statuses[name].Status)), name)
		}
	}

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  * Run 'menu' to open ProxMenux")
	fmt.Printf("  * The monitor answers on http://localhost:%d\n", config.MonitorPort)
	fmt.Println("  * Re-run this installer any time to repair or extend the installation")
	fmt.Println()
}
