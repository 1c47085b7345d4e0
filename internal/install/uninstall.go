// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package install

import (
	"fmt"
	"os"

	"github.com/jeranaias/proxmenux-installer/internal/config"
	"github.com/jeranaias/proxmenux-installer/internal/deps"
	"github.com/jeranaias/proxmenux-installer/internal/detect"
	"github.com/jeranaias/proxmenux-installer/internal/profile"
	"github.com/jeranaias/proxmenux-installer/internal/run"
	"github.com/jeranaias/proxmenux-installer/internal/service"
	"github.com/jeranaias/proxmenux-installer/internal/util"
)

// translationPackagesOffered are the OS packages whose removal the
// uninstaller may offer. python3 itself is never offered; too much else
// on a Proxmox node depends on it.
var translationPackagesOffered = []string{config.CompPythonVenv, config.CompPythonPip}

// Uninstaller removes an installation. Every step is best-effort:
// failures become warnings and teardown continues, maximizing cleanup.
// Safe to run over a partial or already-removed installation.
type Uninstaller struct {
	paths   config.Paths
	runner  run.Runner
	deps    *deps.Installer
	service *service.Manager
	profile *profile.Injector

	// ConfirmRemovePackage asks whether one translation OS package
	// should come off with the install. Nil skips the offers entirely.
	ConfirmRemovePackage func(pkg string) bool

	// OnStep observes teardown step titles. May be nil.
	OnStep func(title string)
	// OnWarning observes failed teardown steps. May be nil.
	OnWarning func(msg string)
}

// NewUninstaller wires a teardown over the given layout and runner.
func NewUninstaller(paths config.Paths, store *config.Store, runner run.Runner) *Uninstaller {
	return &Uninstaller{
		paths:   paths,
		runner:  runner,
		deps:    deps.NewInstaller(runner, store, paths),
		service: service.NewManager(runner, paths),
		profile: profile.New(paths),
	}
}

// Run tears down the installation detected as current and returns the
// number of steps that failed. force skips the optional package-removal
// offers; the reconciler's forced teardown uses it so no prompt ever
// interrupts that path.
func (u *Uninstaller) Run(current detect.InstallType, force bool) int {
	warnings := 0
	warn := func(msg string) {
		warnings++
		if u.OnWarning != nil {
			u.OnWarning(msg)
		}
	}
	step := func(title string) {
		if u.OnStep != nil {
			u.OnStep(title)
		}
	}

	step("Remove monitor service")
	for _, msg := range u.service.Remove() {
		warn(msg)
	}

	step("Remove translation environment")
	u.removeVenv(warn)

	if current == detect.TypeTranslation && !force && u.ConfirmRemovePackage != nil {
		step("Remove translation packages")
		for _, pkg := range translationPackagesOffered {
			if !u.ConfirmRemovePackage(pkg) {
				continue
			}
			if err := u.deps.Remove(pkg); err != nil {
				warn(err.Error())
			}
		}
	}

	step("Remove launcher")
	if err := removeFile(u.paths.Launcher()); err != nil {
		warn(err.Error())
	}

	step("Remove program files")
	if err := removeTree(u.paths.BaseDir); err != nil {
		warn(err.Error())
	}

	step("Restore shell profile and MOTD")
	for _, err := range u.profile.Restore() {
		warn(err.Error())
	}

	return warnings
}

// removeVenv uninstalls the translation library inside the environment,
// then deletes the environment. A broken venv without pip still gets
// deleted.
func (u *Uninstaller) removeVenv(warn func(string)) {
	if !util.DirExists(u.paths.VenvDir) {
		return
	}

	if util.FileExists(u.paths.VenvPip()) {
		res, err := u.runner.Run(run.Cmd{
			Name: u.paths.VenvPip(),
			Args: []string{"uninstall", "-y", "googletrans"},
		})
		if err != nil {
			warn(fmt.Sprintf("failed to uninstall googletrans: %v", err))
		} else if !res.Ok() {
			warn(fmt.Sprintf("failed to uninstall googletrans: %s", res.Output()))
		}
	}

	if err := os.RemoveAll(u.paths.VenvDir); err != nil {
		warn(fmt.Sprintf("failed to remove %s: %v", u.paths.VenvDir, err))
	}
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

func removeTree(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
