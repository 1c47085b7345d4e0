// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/proxmenux-installer/internal/cli"
	"github.com/jeranaias/proxmenux-installer/internal/config"
	"github.com/jeranaias/proxmenux-installer/internal/detect"
	"github.com/jeranaias/proxmenux-installer/internal/fetch"
	"github.com/jeranaias/proxmenux-installer/internal/install"
	"github.com/jeranaias/proxmenux-installer/internal/preflight"
	"github.com/jeranaias/proxmenux-installer/internal/run"
	"github.com/jeranaias/proxmenux-installer/internal/util"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)

	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	unselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))
)

// =============================================================================
// ASCII ART
// =============================================================================

const logo = `
    ██████╗ ██████╗  ██████╗ ██╗  ██╗
    ██╔══██╗██╔══██╗██╔═══██╗╚██╗██╔╝
    ██████╔╝██████╔╝██║   ██║ ╚███╔╝
    ██╔═══╝ ██╔══██╗██║   ██║ ██╔██╗
    ██║     ██║  ██║╚██████╔╝██╔╝ ██╗
    ╚═╝     ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝
    ███╗   ███╗███████╗███╗   ██╗██╗   ██╗██╗  ██╗
    ████╗ ████║██╔════╝████╗  ██║██║   ██║╚██╗██╔╝
    ██╔████╔██║█████╗  ██╔██╗ ██║██║   ██║ ╚███╔╝
    ██║╚██╔╝██║██╔══╝  ██║╚██╗██║██║   ██║ ██╔██╗
    ██║ ╚═╝ ██║███████╗██║ ╚████║╚██████╔╝██╔╝ ██╗
    ╚═╝     ╚═╝╚══════╝╚═╝  ╚═══╝ ╚═════╝ ╚═╝  ╚═╝
`

const tagline = "Menu-driven administration for Proxmox VE"

// =============================================================================
// WIZARD MODEL
// =============================================================================

// phase represents the current wizard screen
type phase int

const (
	phaseWelcome phase = iota
	phasePreflight
	phaseAction
	phaseLanguage
	phaseConfirm
	phaseRun
	phaseDone
)

// action is one entry on the main menu
type action int

const (
	actionInstallNormal action = iota
	actionInstallTranslation
	actionUninstall
	actionQuit
)

// wizard is the interactive installer model
type wizard struct {
	orch   *install.Orchestrator
	paths  config.Paths
	store  *config.Store
	runner run.Runner

	phase  phase
	width  int
	height int

	spinner  spinner.Model
	progress progress.Model

	// Animation state
	typingText   string
	typingTarget string

	// Preflight
	checker      *preflight.Checker
	checkNames   []string
	checks       []preflight.Result
	currentCheck int

	// Detection and action menu
	detected detect.InstallType
	actions  []action
	selected int

	// Language menu
	langIndex int

	// Confirmation
	request   detect.InstallType
	language  string
	decision  install.Decision
	uninstall bool

	// Run state
	plan      *install.Plan
	stepIndex int
	stepsDone []string
	activity  string
	events    chan string
	runErr    error
	warnings  []string

	report string
}

// newWizard creates the interactive installer over the shared wiring.
func newWizard(orch *install.Orchestrator, paths config.Paths, store *config.Store, runner run.Runner) *wizard {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	p := progress.New(progress.WithDefaultGradient())

	checker := preflight.New(runner, paths)

	return &wizard{
		orch:       orch,
		paths:      paths,
		store:      store,
		runner:     runner,
		phase:      phaseWelcome,
		spinner:    s,
		progress:   p,
		checker:    checker,
		checkNames: checker.Names(),
	}
}

// failed reports whether the run ended in an error, for the exit status.
func (w *wizard) failed() bool {
	return w.runErr != nil
}

// Init starts the spinner and the logo animation.
func (w *wizard) Init() tea.Cmd {
	return tea.Batch(w.spinner.Tick, w.typeWriter(logo, 3*time.Millisecond))
}

// =============================================================================
// MESSAGES
// =============================================================================

// typeWriterMsg updates the typing animation
type typeWriterMsg struct {
	target string
	index  int
}

// checkDoneMsg signals one preflight check finished
type checkDoneMsg struct {
	result preflight.Result
}

// stepDoneMsg signals one install step finished
type stepDoneMsg struct {
	index int
	err   error
}

// forcedTeardownDoneMsg signals the reconciler's removal finished
type forcedTeardownDoneMsg struct {
	warnings []string
}

// teardownDoneMsg signals a requested uninstall finished
type teardownDoneMsg struct {
	warnings []string
}

// activityMsg carries a live progress line from the orchestrator hooks
type activityMsg string

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages
func (w *wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return w.handleKey(msg)

	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		progressWidth := msg.Width - 24
		if progressWidth < 20 {
			progressWidth = 20
		}
		if progressWidth > 60 {
			progressWidth = 60
		}
		w.progress.Width = progressWidth
		return w, w.spinner.Tick

	case spinner.TickMsg:
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd

	case progress.FrameMsg:
		progressModel, cmd := w.progress.Update(msg)
		w.progress = progressModel.(progress.Model)
		return w, cmd

	case typeWriterMsg:
		if msg.target == w.typingTarget && msg.index <= len(msg.target) {
			w.typingText = msg.target[:msg.index]
			if msg.index < len(msg.target) {
				return w, w.typeWriterTick(msg.target, msg.index+8, 3*time.Millisecond)
			}
		}
		return w, nil

	case checkDoneMsg:
		w.checks = append(w.checks, msg.result)
		w.currentCheck++
		if w.currentCheck < len(w.checkNames) {
			return w, w.runCheck(w.currentCheck)
		}
		return w, nil

	case activityMsg:
		w.activity = string(msg)
		return w, w.waitActivity()

	case stepDoneMsg:
		return w.handleStepDone(msg)

	case forcedTeardownDoneMsg:
		w.stepsDone = append(w.stepsDone,
			cli.RenderStatus("ok")+" Removed previous installation")
		w.warnings = append(w.warnings, msg.warnings...)
		return w.startPlan()

	case teardownDoneMsg:
		w.warnings = msg.warnings
		w.phase = phaseDone
		w.report = renderUninstallReport(msg.warnings)
		return w, nil
	}

	return w, nil
}

// handleKey processes key presses per phase
func (w *wizard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		if w.phase == phaseRun && w.plan != nil {
			w.plan.Finish(install.ErrCancelled)
			w.runErr = install.ErrCancelled
		}
		return w, tea.Quit
	}

	switch w.phase {
	case phaseWelcome:
		switch key {
		case "q":
			return w, tea.Quit
		case "enter", " ":
			w.phase = phasePreflight
			return w, w.runCheck(0)
		}

	case phasePreflight:
		if key == "q" {
			return w, tea.Quit
		}
		if (key == "enter" || key == " ") && w.currentCheck >= len(w.checkNames) {
			if preflight.Fatal(w.checks) {
				w.runErr = errors.New("host checks failed")
				return w, tea.Quit
			}
			w.enterActionMenu()
		}

	case phaseAction:
		switch key {
		case "q":
			return w, tea.Quit
		case "up", "k":
			if w.selected > 0 {
				w.selected--
			}
		case "down", "j":
			if w.selected < len(w.actions)-1 {
				w.selected++
			}
		case "enter", " ":
			return w.chooseAction()
		}

	case phaseLanguage:
		switch key {
		case "q":
			return w, tea.Quit
		case "esc":
			w.phase = phaseAction
		case "up", "k":
			if w.langIndex > 0 {
				w.langIndex--
			}
		case "down", "j":
			if w.langIndex < len(install.Languages)-1 {
				w.langIndex++
			}
		case "enter", " ":
			w.language = install.Languages[w.langIndex]
			w.enterConfirm(detect.TypeTranslation)
		}

	case phaseConfirm:
		switch key {
		case "esc":
			w.phase = phaseAction
		case "q", "n":
			w.runErr = install.ErrCancelled
			return w, tea.Quit
		case "enter", "y":
			return w.beginRun()
		}

	case phaseDone:
		switch key {
		case "q", "esc", "enter":
			return w, tea.Quit
		}
	}

	return w, nil
}

// enterActionMenu classifies the host and builds the menu for it.
func (w *wizard) enterActionMenu() {
	current, err := detect.New(w.paths, w.store).Detect()
	if err != nil {
		current = detect.TypeUnknown
	}
	w.detected = current

	w.actions = []action{actionInstallNormal, actionInstallTranslation}
	if current.Installed() {
		w.actions = append(w.actions, actionUninstall)
	}
	w.actions = append(w.actions, actionQuit)
	w.selected = 0
	w.phase = phaseAction
}

// chooseAction dispatches the selected menu entry.
func (w *wizard) chooseAction() (tea.Model, tea.Cmd) {
	switch w.actions[w.selected] {
	case actionInstallNormal:
		w.enterConfirm(detect.TypeNormal)

	case actionInstallTranslation:
		// Preselect the previously recorded language when one exists.
		if lang := w.store.ReadLanguage(); lang != "" {
			for i, code := range install.Languages {
				if code == lang {
					w.langIndex = i
				}
			}
		}
		w.phase = phaseLanguage

	case actionUninstall:
		w.uninstall = true
		w.phase = phaseConfirm

	case actionQuit:
		return w, tea.Quit
	}
	return w, nil
}

// enterConfirm stages an install request behind the confirmation screen.
func (w *wizard) enterConfirm(requested detect.InstallType) {
	w.uninstall = false
	w.request = requested
	w.decision = install.Reconcile(w.detected, requested)
	w.phase = phaseConfirm
}

// beginRun leaves the confirmation screen and starts the work.
func (w *wizard) beginRun() (tea.Model, tea.Cmd) {
	w.phase = phaseRun
	w.stepsDone = nil
	w.activity = ""
	w.events = make(chan string, 8)
	w.wireActivity()

	if w.uninstall {
		return w, tea.Batch(w.runTeardown(), w.waitActivity())
	}
	if w.decision == install.ConfirmThenTeardown {
		return w, tea.Batch(w.runForcedTeardown(), w.waitActivity())
	}
	return w.startPlan()
}

// startPlan builds the plan for the staged request and runs its first step.
func (w *wizard) startPlan() (tea.Model, tea.Cmd) {
	plan, err := w.orch.NewPlan(w.request, w.language)
	if err != nil {
		w.runErr = err
		w.phase = phaseDone
		w.report = renderFailureReport(err)
		return w, nil
	}
	w.plan = plan
	w.stepIndex = 0
	return w, tea.Batch(w.runStep(0), w.waitActivity(), w.progress.SetPercent(0))
}

// handleStepDone advances past a finished step or fails the run.
func (w *wizard) handleStepDone(msg stepDoneMsg) (tea.Model, tea.Cmd) {
	step := w.plan.Steps[msg.index]

	if msg.err != nil {
		w.stepsDone = append(w.stepsDone, cli.RenderStatus("fail")+" "+step.Title)
		w.runErr = msg.err
		w.plan.Finish(msg.err)
		w.phase = phaseDone
		w.report = renderFailureReport(msg.err)
		return w, nil
	}

	w.stepsDone = append(w.stepsDone, cli.RenderStatus("ok")+" "+step.Title)
	w.activity = ""

	next := msg.index + 1
	percent := float64(next) / float64(len(w.plan.Steps))
	if next < len(w.plan.Steps) {
		w.stepIndex = next
		return w, tea.Batch(w.runStep(next), w.progress.SetPercent(percent))
	}

	w.plan.Finish(nil)
	w.phase = phaseDone
	w.report = renderInstallReport(w.request, w.language, w.store)
	return w, w.progress.SetPercent(1.0)
}

// =============================================================================
// COMMANDS
// =============================================================================

// typeWriter starts a typing animation
func (w *wizard) typeWriter(text string, delay time.Duration) tea.Cmd {
	w.typingTarget = text
	w.typingText = ""
	return w.typeWriterTick(text, 1, delay)
}

// typeWriterTick sends the next typewriter tick
func (w *wizard) typeWriterTick(target string, index int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		if index > len(target) {
			index = len(target)
		}
		return typeWriterMsg{target: target, index: index}
	})
}

// runCheck runs one preflight check off the UI goroutine.
func (w *wizard) runCheck(index int) tea.Cmd {
	return func() tea.Msg {
		result := w.checker.RunCheck(index)
		time.Sleep(150 * time.Millisecond)
		return checkDoneMsg{result: result}
	}
}

// runStep executes one plan step.
func (w *wizard) runStep(index int) tea.Cmd {
	step := w.plan.Steps[index]
	return func() tea.Msg {
		err := step.Run()
		return stepDoneMsg{index: index, err: err}
	}
}

// runForcedTeardown removes the existing installation before a plan that
// replaces it. No package-removal offers on this path.
func (w *wizard) runForcedTeardown() tea.Cmd {
	current := w.detected
	u := install.NewUninstaller(w.paths, w.store, w.runner)
	return func() tea.Msg {
		var warnings []string
		u.OnWarning = func(msg string) { warnings = append(warnings, msg) }
		u.Run(current, true)
		return forcedTeardownDoneMsg{warnings: warnings}
	}
}

// runTeardown removes the installation the operator asked to remove.
func (w *wizard) runTeardown() tea.Cmd {
	current := w.detected
	u := install.NewUninstaller(w.paths, w.store, w.runner)
	events := w.events
	return func() tea.Msg {
		var warnings []string
		u.OnWarning = func(msg string) { warnings = append(warnings, msg) }
		u.OnStep = func(title string) {
			select {
			case events <- title:
			default:
			}
		}
		u.Run(current, false)
		return teardownDoneMsg{warnings: warnings}
	}
}

// wireActivity points the orchestrator hooks at the event channel. Posts
// never block; a dropped update only skips one repaint.
func (w *wizard) wireActivity() {
	events := w.events
	post := func(line string) {
		select {
		case events <- line:
		default:
		}
	}
	w.orch.OnCloneFiles = func(n int) {
		post(fmt.Sprintf("Fetching source tree: %d files", n))
	}
	w.orch.OnDownload = func(p fetch.Progress) {
		post("Downloading jq: " + p.String())
	}
	w.orch.OnComponent = func(component string, status config.Status) {
		post(component + ": " + string(status))
	}
}

// waitActivity delivers the next live progress line.
func (w *wizard) waitActivity() tea.Cmd {
	events := w.events
	return func() tea.Msg {
		line, ok := <-events
		if !ok {
			return nil
		}
		return activityMsg(line)
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the wizard
func (w *wizard) View() string {
	switch w.phase {
	case phaseWelcome:
		return w.viewWelcome()
	case phasePreflight:
		return w.viewPreflight()
	case phaseAction:
		return w.viewAction()
	case phaseLanguage:
		return w.viewLanguage()
	case phaseConfirm:
		return w.viewConfirm()
	case phaseRun:
		return w.viewRun()
	case phaseDone:
		return w.viewDone()
	}
	return ""
}

func (w *wizard) viewWelcome() string {
	var s strings.Builder

	if w.typingTarget == logo && w.typingText != logo {
		s.WriteString(logoStyle.Render(w.typingText))
	} else {
		s.WriteString(logoStyle.Render(logo))
	}
	s.WriteString("\n")
	s.WriteString(cli.DimStyle.Render("    " + tagline))
	s.WriteString("\n\n")
	s.WriteString(cli.DimStyle.Render(fmt.Sprintf("    Installer v%s", version)))
	s.WriteString("\n\n")

	welcomeText := `Welcome to the ProxMenux installer!

This installer will:

  * Check this host (Proxmox VE, apt, disk, memory)
  * Install the required packages
  * Fetch the ProxMenux scripts
  * Register the monitor service on port 8008

An existing installation is detected automatically and can be
updated, extended with translations, or removed.`
	s.WriteString(boxStyle.Render(welcomeText))
	s.WriteString("\n\n")

	s.WriteString(cli.HighlightStyle.Render("  Press ENTER to begin"))
	s.WriteString(cli.DimStyle.Render("  |  Press Q to quit"))

	return w.center(s.String())
}

func (w *wizard) viewPreflight() string {
	var s strings.Builder

	s.WriteString(cli.TitleStyle.Render("  Host Checks"))
	s.WriteString("\n\n")

	for idx, name := range w.checkNames {
		if idx < len(w.checks) {
			check := w.checks[idx]
			s.WriteString(fmt.Sprintf("  %s %s", cli.RenderStatus(check.Status), name))
			s.WriteString(cli.DimStyle.Render(" - " + check.Message))
			s.WriteString("\n")
			if check.Fix != "" {
				s.WriteString(cli.DimStyle.Render("      -> " + check.Fix))
				s.WriteString("\n")
			}
			continue
		}
		if idx == w.currentCheck {
			s.WriteString(fmt.Sprintf("  %s %s", w.spinner.View(), name))
			s.WriteString(cli.DimStyle.Render(" - Checking..."))
		} else {
			s.WriteString(cli.DimStyle.Render(fmt.Sprintf("  [ ] %s", name)))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")

	if w.currentCheck >= len(w.checkNames) {
		if preflight.Fatal(w.checks) {
			s.WriteString(cli.ErrorStyle.Render("  This host cannot run ProxMenux."))
			s.WriteString("\n\n")
			s.WriteString(cli.HighlightStyle.Render("  Press ENTER to exit"))
		} else {
			s.WriteString(cli.SuccessStyle.Render("  Host looks good!"))
			s.WriteString("\n\n")
			s.WriteString(cli.HighlightStyle.Render("  Press ENTER to continue"))
		}
	}

	return w.center(s.String())
}

func (w *wizard) viewAction() string {
	var s strings.Builder

	s.WriteString(cli.TitleStyle.Render("  What would you like to do?"))
	s.WriteString("\n\n")

	switch w.detected {
	case detect.TypeNone:
		s.WriteString(cli.DimStyle.Render("  No existing installation detected."))
	case detect.TypeTranslation:
		line := fmt.Sprintf("  Detected: Translation installation (language %s)", w.store.ReadLanguage())
		s.WriteString(cli.InfoStyle.Render(line))
	default:
		s.WriteString(cli.InfoStyle.Render(fmt.Sprintf("  Detected: %s installation", w.detected)))
	}
	s.WriteString("\n\n")

	for idx, a := range w.actions {
		cursor := "  "
		style := unselectedStyle
		if idx == w.selected {
			cursor = "> "
			style = selectedStyle
		}
		s.WriteString(style.Render("  " + cursor + w.actionLabel(a)))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(cli.DimStyle.Render("  Up/Down to select  |  ENTER to confirm  |  Q to quit"))

	return w.center(s.String())
}

// actionLabel names a menu entry for the current host state.
func (w *wizard) actionLabel(a action) string {
	switch a {
	case actionInstallNormal:
		switch w.detected {
		case detect.TypeNormal, detect.TypeUnknown:
			return "Reinstall ProxMenux (repair)"
		case detect.TypeTranslation:
			return "Switch to ProxMenux without translations"
		default:
			return "Install ProxMenux"
		}
	case actionInstallTranslation:
		if w.detected == detect.TypeTranslation {
			return "Reinstall ProxMenux with translation support (repair)"
		}
		return "Install ProxMenux with translation support"
	case actionUninstall:
		return "Remove ProxMenux from this node"
	case actionQuit:
		return "Quit"
	}
	return ""
}

func (w *wizard) viewLanguage() string {
	var s strings.Builder

	s.WriteString(cli.TitleStyle.Render("  Translation Language"))
	s.WriteString("\n\n")
	s.WriteString(cli.DimStyle.Render("  The menu interface will be translated into this language:"))
	s.WriteString("\n\n")

	for idx, code := range install.Languages {
		cursor := "  "
		style := unselectedStyle
		if idx == w.langIndex {
			cursor = "> "
			style = selectedStyle
		}
		s.WriteString(style.Render(fmt.Sprintf("  %s%-4s %s", cursor, code, install.LanguageLabel(code))))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(cli.DimStyle.Render("  Up/Down to select  |  ENTER to confirm  |  ESC to go back"))

	return w.center(s.String())
}

func (w *wizard) viewConfirm() string {
	if w.uninstall {
		return w.viewConfirmUninstall()
	}

	var s strings.Builder
	s.WriteString(cli.TitleStyle.Render("  Ready to Install"))
	s.WriteString("\n\n")

	var b strings.Builder
	fmt.Fprintf(&b, "Mode:      %s install\n", w.request)
	if w.request == detect.TypeTranslation {
		fmt.Fprintf(&b, "Language:  %s\n", install.LanguageLabel(w.language))
	}
	fmt.Fprintf(&b, "Location:  %s\n", w.paths.BaseDir)
	fmt.Fprintf(&b, "Launcher:  %s\n", w.paths.Launcher())
	s.WriteString(boxStyle.Render(strings.TrimRight(b.String(), "\n")))
	s.WriteString("\n\n")

	switch w.decision {
	case install.ConfirmThenTeardown:
		s.WriteString(cli.ErrorStyle.Render("  The existing Translation installation will be removed first."))
		s.WriteString("\n")
		s.WriteString(cli.DimStyle.Render("  Its virtual environment and language cache do not carry over."))
		s.WriteString("\n\n")
	case install.ConfirmThenProceed:
		s.WriteString(cli.WarningStyle.Render("  Translation support will be added over the existing installation."))
		s.WriteString("\n\n")
	}

	s.WriteString(cli.SectionStyle.Render("  Monitor service"))
	s.WriteString("\n")
	unit := cli.RenderUnitFile(w.orch.UnitPreview())
	for _, line := range strings.Split(strings.TrimRight(unit, "\n"), "\n") {
		s.WriteString("    " + line)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(cli.HighlightStyle.Render("  Press ENTER to install"))
	s.WriteString(cli.DimStyle.Render("  |  N to cancel  |  ESC to go back"))

	return w.center(s.String())
}

func (w *wizard) viewConfirmUninstall() string {
	var s strings.Builder

	s.WriteString(cli.TitleStyle.Render("  Remove ProxMenux"))
	s.WriteString("\n\n")

	var b strings.Builder
	b.WriteString("This will remove:\n\n")
	fmt.Fprintf(&b, "  * %s\n", w.paths.Launcher())
	fmt.Fprintf(&b, "  * %s\n", w.paths.BaseDir)
	if w.detected == detect.TypeTranslation {
		fmt.Fprintf(&b, "  * %s (translation environment)\n", w.paths.VenvDir)
	}
	fmt.Fprintf(&b, "  * The %s service and its files\n", config.MonitorService)
	b.WriteString("\nShell profile and MOTD annotations are restored.\n")
	b.WriteString("OS packages installed as dependencies stay in place.")
	s.WriteString(boxStyle.Render(b.String()))
	s.WriteString("\n\n")

	s.WriteString(cli.ErrorStyle.Render("  This cannot be undone."))
	s.WriteString("\n\n")
	s.WriteString(cli.HighlightStyle.Render("  Press ENTER to remove"))
	s.WriteString(cli.DimStyle.Render("  |  N to cancel  |  ESC to go back"))

	return w.center(s.String())
}

func (w *wizard) viewRun() string {
	var s strings.Builder

	if w.uninstall {
		s.WriteString(cli.TitleStyle.Render("  Removing ProxMenux"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("  %s %s\n", w.spinner.View(), w.activity))
		return w.center(s.String())
	}

	s.WriteString(cli.TitleStyle.Render("  Installing ProxMenux"))
	s.WriteString("\n\n")

	total := 0
	if w.plan != nil {
		total = len(w.plan.Steps)
	}

	s.WriteString("  " + w.progress.View())
	s.WriteString("\n\n")

	for _, line := range w.stepsDone {
		s.WriteString("  " + line)
		s.WriteString("\n")
	}

	if w.plan != nil && w.stepIndex < total && len(w.stepsDone) == w.stepIndex {
		s.WriteString(fmt.Sprintf("  %s %s", w.spinner.View(),
			fmt.Sprintf("[%d/%d] %s", w.stepIndex+1, total, w.plan.Steps[w.stepIndex].Title)))
		s.WriteString("\n")
	}

	if w.activity != "" {
		line := w.activity
		if w.width > 10 {
			line = util.TruncateWidth(line, w.width-10)
		}
		s.WriteString(cli.DimStyle.Render("      " + line))
		s.WriteString("\n")
	}

	return w.center(s.String())
}

func (w *wizard) viewDone() string {
	var s strings.Builder

	s.WriteString(w.report)
	s.WriteString("\n")

	if len(w.warnings) > 0 {
		s.WriteString(cli.WarningStyle.Render(fmt.Sprintf("  %d step(s) reported warnings:", len(w.warnings))))
		s.WriteString("\n")
		for _, warning := range w.warnings {
			s.WriteString(cli.DimStyle.Render("    - " + warning))
			s.WriteString("\n")
		}
		s.WriteString("\n")
	}

	s.WriteString(cli.HighlightStyle.Render("  Press ENTER to close"))

	return w.center(s.String())
}

// center pads content vertically toward the upper third of the screen.
func (w *wizard) center(content string) string {
	if w.width == 0 || w.height == 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	topPadding := (w.height - len(lines)) / 3
	if topPadding < 0 {
		topPadding = 0
	}

	var s strings.Builder
	for i := 0; i < topPadding; i++ {
		s.WriteString("\n")
	}
	s.WriteString(content)

	return s.String()
}
