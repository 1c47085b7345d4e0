// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package install

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/jeranaias/proxmenux-installer/internal/config"
	"github.com/jeranaias/proxmenux-installer/internal/deps"
	"github.com/jeranaias/proxmenux-installer/internal/detect"
	"github.com/jeranaias/proxmenux-installer/internal/fetch"
	"github.com/jeranaias/proxmenux-installer/internal/journal"
	"github.com/jeranaias/proxmenux-installer/internal/profile"
	"github.com/jeranaias/proxmenux-installer/internal/run"
	"github.com/jeranaias/proxmenux-installer/internal/service"
	"github.com/jeranaias/proxmenux-installer/internal/util"
)

// Orchestrator assembles install plans over the collaborating parts.
type Orchestrator struct {
	paths   config.Paths
	store   *config.Store
	runner  run.Runner
	journal *journal.Journal

	deps    *deps.Installer
	cloner  *fetch.Cloner
	service *service.Manager
	profile *profile.Injector

	// executable locates the running installer for the self-copy step.
	executable func() (string, error)

	// Version stamps the install when the source tree carries no
	// version marker of its own.
	Version string

	// KeepJournalRuns bounds the receipts kept after each run.
	KeepJournalRuns int

	// OnComponent observes recorded component outcomes. May be nil.
	OnComponent func(component string, status config.Status)
	// OnCloneFiles observes the cosmetic clone file counter. May be nil.
	OnCloneFiles func(files int)
	// OnDownload observes jq fallback transfer progress. May be nil.
	OnDownload func(p fetch.Progress)
}

// New wires an orchestrator over the given layout, record, runner, and
// receipts journal. The journal may be nil.
func New(paths config.Paths, store *config.Store, runner run.Runner, jnl *journal.Journal) *Orchestrator {
	o := &Orchestrator{
		paths:           paths,
		store:           store,
		runner:          runner,
		journal:         jnl,
		executable:      os.Executable,
		KeepJournalRuns: config.DefaultSettings().KeepJournalRuns,
	}

	o.deps = deps.NewInstaller(runner, store, paths)
	o.deps.JqFallback = o.fetchJq
	o.deps.OnOutcome = o.noteComponent
	o.cloner = fetch.NewCloner(runner)
	o.service = service.NewManager(runner, paths)
	o.profile = profile.New(paths)

	return o
}

// NewPlan assembles the fixed step sequence for the requested mode. For
// Translation the language must be one of the offered locale codes; pass
// the recorded selection or the operator's fresh choice.
func (o *Orchestrator) NewPlan(mode detect.InstallType, language string) (*Plan, error) {
	p := &Plan{
		Mode:    mode,
		journal: o.journal,
		keep:    o.KeepJournalRuns,
	}

	switch mode {
	case detect.TypeNormal:
		o.journal.BeginRun(mode.String())
		p.Steps = []Step{
			o.step("Install base dependencies", func() error {
				return o.deps.Ensure(deps.BasePackages)
			}),
			o.step("Fetch ProxMenux source", func() error {
				return o.fetchSource(p)
			}),
			o.step("Prepare install directories", o.prepareLayout),
			o.step("Copy program files", func() error {
				return o.copyFiles(p, false)
			}),
			o.step("Update shell profile and MOTD", o.profile.Install),
			o.step("Register monitor service", o.installMonitor),
		}

	case detect.TypeTranslation:
		if language == "" {
			return nil, ErrNoLanguage
		}
		if !IsSupportedLanguage(language) {
			return nil, fmt.Errorf("%w: %q is not offered", ErrNoLanguage, language)
		}
		o.journal.BeginRun(mode.String())
		p.Steps = []Step{
			o.step("Record language selection", func() error {
				return o.store.RecordLanguage(language)
			}),
			o.step("Install dependencies", func() error {
				packages := append([]string{}, deps.BasePackages...)
				packages = append(packages, deps.TranslationPackages...)
				return o.deps.Ensure(packages)
			}),
			o.step("Set up translation environment", o.deps.EnsureTranslationStack),
			o.step("Fetch ProxMenux source", func() error {
				return o.fetchSource(p)
			}),
			o.step("Prepare install directories", o.prepareLayout),
			o.step("Copy program files", func() error {
				return o.copyFiles(p, true)
			}),
			o.step("Update shell profile and MOTD", o.profile.Install),
			o.step("Register monitor service", o.installMonitor),
		}

	default:
		return nil, fmt.Errorf("no install plan for %s", mode)
	}

	return p, nil
}

// UnitPreview renders the service definition the install will register.
func (o *Orchestrator) UnitPreview() string {
	return o.service.UnitContent()
}

// step wraps a step body with receipt journaling.
func (o *Orchestrator) step(title string, body func() error) Step {
	return Step{
		Title: title,
		Run: func() error {
			if err := body(); err != nil {
				o.journal.Event(title, err.Error(), false)
				return err
			}
			o.journal.Event(title, "", true)
			return nil
		},
	}
}

// noteComponent journals one recorded component outcome and forwards it
// to the display.
func (o *Orchestrator) noteComponent(component string, status config.Status) {
	ok := status != config.StatusFailed && status != config.StatusUpgradeFailed
	o.journal.Event("component "+component, string(status), ok)
	if o.OnComponent != nil {
		o.OnComponent(component, status)
	}
}

// fetchJq is the apt fallback: a prebuilt binary from the jq release
// page, placed on the PATH.
func (o *Orchestrator) fetchJq() error {
	dl := &fetch.Downloader{OnProgress: o.OnDownload}
	digest, size, err := dl.FetchJq(o.paths.JqBinary())
	if err != nil {
		o.journal.Event("download jq", err.Error(), false)
		return err
	}
	o.journal.Event("download jq", fmt.Sprintf("sha256=%s size=%s", digest, humanize.IBytes(uint64(size))), true)
	return nil
}

// fetchSource shallow-clones the source into scratch space. While git
// runs, a watcher counts arriving files for the progress line; it is
// closed as soon as the clone returns and never affects the outcome.
func (o *Orchestrator) fetchSource(p *Plan) error {
	var counter *fetch.FileCounter
	if o.OnCloneFiles != nil {
		o.cloner.OnScratch = func(dir string) {
			c, err := fetch.NewFileCounter(dir)
			if err != nil {
				return
			}
			c.OnCount = o.OnCloneFiles
			if err := c.Watch(); err != nil {
				c.Close()
				return
			}
			counter = c
		}
		defer func() {
			o.cloner.OnScratch = nil
			if counter != nil {
				counter.Close()
			}
		}()
	}

	dir, cleanup, err := o.cloner.CloneTemp()
	if err != nil {
		return err
	}
	p.cloneDir = dir
	p.addCleanup(cleanup)
	return nil
}

// prepareLayout creates the target tree and an empty install record if
// this is the first run.
func (o *Orchestrator) prepareLayout() error {
	dirs := []string{
		o.paths.BaseDir,
		o.paths.ScriptsDir(),
		o.paths.InstallCopyDir(),
		o.paths.BinDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return o.store.Init()
}

// copyFiles lays the fetched tree out into the fixed target paths.
func (o *Orchestrator) copyFiles(p *Plan, translation bool) error {
	src := p.cloneDir
	if src == "" {
		return errors.New("source tree was not fetched")
	}

	if err := util.CopyTree(filepath.Join(src, "scripts"), o.paths.ScriptsDir()); err != nil {
		return fmt.Errorf("failed to copy scripts: %w", err)
	}
	if err := util.CopyFile(filepath.Join(src, "scripts", "utils.sh"), o.paths.UtilsFile(), 0644); err != nil {
		return fmt.Errorf("failed to copy utility script: %w", err)
	}
	if err := util.CopyFile(filepath.Join(src, "menu.sh"), o.paths.Launcher(), 0755); err != nil {
		return fmt.Errorf("failed to install launcher: %w", err)
	}
	if err := o.writeVersionMarker(src); err != nil {
		return err
	}
	if err := o.copySelf(); err != nil {
		return err
	}

	if translation {
		cache := filepath.Join(src, "json", "cache.json")
		if err := util.CopyFile(cache, o.paths.CacheFile(), 0644); err != nil {
			return fmt.Errorf("failed to copy translation cache: %w", err)
		}
	}

	return nil
}

// writeVersionMarker prefers the marker shipped in the source tree and
// falls back to this build's version.
func (o *Orchestrator) writeVersionMarker(src string) error {
	marker := filepath.Join(src, "version.txt")
	if util.FileExists(marker) {
		if err := util.CopyFile(marker, o.paths.VersionFile(), 0644); err != nil {
			return fmt.Errorf("failed to copy version marker: %w", err)
		}
		return nil
	}
	if err := util.AtomicWriteFile(o.paths.VersionFile(), []byte(o.Version+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write version marker: %w", err)
	}
	return nil
}

// copySelf keeps a copy of the running installer inside the base
// directory so the menu can re-run it for upgrades.
func (o *Orchestrator) copySelf() error {
	exe, err := o.executable()
	if err != nil {
		return fmt.Errorf("failed to locate the running installer: %w", err)
	}
	dst := filepath.Join(o.paths.InstallCopyDir(), "proxmenux-installer")
	if err := util.CopyFile(exe, dst, 0755); err != nil {
		return fmt.Errorf("failed to keep installer copy: %w", err)
	}
	return nil
}

// installMonitor registers the companion service and records its outcome.
func (o *Orchestrator) installMonitor() error {
	if err := os.MkdirAll(o.paths.MonitorDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", o.paths.MonitorDir, err)
	}

	status, err := o.service.Install()
	if recErr := o.store.RecordStatus(config.CompMonitor, status); recErr != nil && err == nil {
		err = recErr
	}
	o.noteComponent(config.CompMonitor, status)
	if err != nil {
		return fmt.Errorf("failed to register monitor service: %w", err)
	}
	return nil
}
