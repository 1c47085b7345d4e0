// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package deps ensures the OS packages and the translation Python stack
// are present, recording every outcome in the install record.
//
// Package installs are fail-fast: the first package that cannot be
// installed (after the jq fallback, where applicable) aborts the phase.
// Checks go through dpkg's database so a second run over a satisfied
// system records already_installed without ever invoking apt.
package deps

import (
	"fmt"
	"strings"

	"github.com/jeranaias/proxmenux-installer/internal/config"
	"github.com/jeranaias/proxmenux-installer/internal/run"
	"github.com/jeranaias/proxmenux-installer/internal/util"
)

// BasePackages are required for every install mode.
var BasePackages = []string{
	config.CompJq,
	config.CompDialog,
	config.CompCurl,
	config.CompGit,
}

// TranslationPackages are additionally required for Translation mode.
var TranslationPackages = []string{
	config.CompPython,
	config.CompPythonVenv,
	config.CompPythonPip,
}

// aptEnv keeps apt from opening its own dialogs mid-install.
var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// Installer drives package and virtual-environment setup.
type Installer struct {
	runner run.Runner
	store  *config.Store
	paths  config.Paths

	// JqFallback downloads a prebuilt jq binary when apt cannot install
	// the package. Leave nil to disable the fallback path.
	JqFallback func() error

	// OnOutcome observes each recorded component outcome, for progress
	// display. May be nil.
	OnOutcome func(component string, status config.Status)
}

// NewInstaller returns a dependency installer over the given seams.
func NewInstaller(runner run.Runner, store *config.Store, paths config.Paths) *Installer {
	return &Installer{runner: runner, store: store, paths: paths}
}

// record stores one outcome and notifies the observer.
func (inst *Installer) record(component string, status config.Status) error {
	if err := inst.store.RecordStatus(component, status); err != nil {
		return err
	}
	if inst.OnOutcome != nil {
		inst.OnOutcome(component, status)
	}
	return nil
}

// Ensure checks and, where needed, installs every package in order.
// The first unrecoverable failure aborts the phase; earlier successes
// keep their records (no rollback).
func (inst *Installer) Ensure(packages []string) error {
	for _, pkg := range packages {
		if inst.packageInstalled(pkg) {
			if err := inst.record(pkg, config.StatusAlreadyInstalled); err != nil {
				return err
			}
			continue
		}

		res, err := inst.runner.Run(run.Cmd{
			Name: "apt-get",
			Args: []string{"install", "-y", pkg},
			Env:  aptEnv,
		})
		if err == nil && res.Ok() {
			if err := inst.record(pkg, config.StatusInstalled); err != nil {
				return err
			}
			continue
		}

		// jq alone has a second chance: a prebuilt binary from the
		// project's release page.
		if pkg == config.CompJq && inst.JqFallback != nil {
			if fbErr := inst.JqFallback(); fbErr == nil {
				if err := inst.record(pkg, config.StatusInstalledFromGithub); err != nil {
					return err
				}
				continue
			}
		}

		inst.record(pkg, config.StatusFailed)
		detail := ""
		if err != nil {
			detail = err.Error()
		} else {
			detail = res.Output()
		}
		return fmt.Errorf("failed to install %s: %s", pkg, detail)
	}
	return nil
}

// packageInstalled consults dpkg's database.
func (inst *Installer) packageInstalled(pkg string) bool {
	res, err := inst.runner.Run(run.Cmd{
		Name: "dpkg-query",
		Args: []string{"-W", "-f=${Status}", pkg},
	})
	return err == nil && res.Ok() && strings.Contains(res.Stdout, "install ok installed")
}

// Remove uninstalls one OS package, best-effort (used only during the
// optional teardown of translation dependencies).
func (inst *Installer) Remove(pkg string) error {
	res, err := inst.runner.Run(run.Cmd{
		Name: "apt-get",
		Args: []string{"remove", "-y", pkg},
		Env:  aptEnv,
	})
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", pkg, err)
	}
	if !res.Ok() {
		return fmt.Errorf("failed to remove %s: %s", pkg, res.Output())
	}
	return nil
}

// =============================================================================
// TRANSLATION STACK
// =============================================================================

// EnsureTranslationStack creates the virtual environment, upgrades pip
// inside it, and installs the pinned translation library. Every sub-step
// failure is fatal and recorded before propagating.
func (inst *Installer) EnsureTranslationStack() error {
	if err := inst.EnsureVirtualEnv(); err != nil {
		return err
	}
	if err := inst.UpgradePip(); err != nil {
		return err
	}
	return inst.InstallGoogletrans()
}

// EnsureVirtualEnv creates the venv unless a working one already exists.
// A directory without its activation entrypoint is not working; venv
// creation over it repairs it in place.
func (inst *Installer) EnsureVirtualEnv() error {
	if util.DirExists(inst.paths.VenvDir) && util.FileExists(inst.paths.VenvActivate()) {
		return inst.record(config.CompVirtualEnv, config.StatusAlreadyExists)
	}

	res, err := inst.runner.Run(run.Cmd{
		Name: "python3",
		Args: []string{"-m", "venv", inst.paths.VenvDir},
	})
	if err == nil && res.Ok() {
		return inst.record(config.CompVirtualEnv, config.StatusCreated)
	}

	inst.record(config.CompVirtualEnv, config.StatusFailed)
	if err != nil {
		return fmt.Errorf("failed to create virtual environment: %w", err)
	}
	return fmt.Errorf("failed to create virtual environment: %s", res.Output())
}

// UpgradePip upgrades the package installer inside the venv.
func (inst *Installer) UpgradePip() error {
	res, err := inst.runner.Run(run.Cmd{
		Name: inst.paths.VenvPython(),
		Args: []string{"-m", "pip", "install", "--upgrade", "pip"},
	})
	if err == nil && res.Ok() {
		return inst.record(config.CompPip, config.StatusUpgraded)
	}

	inst.record(config.CompPip, config.StatusUpgradeFailed)
	if err != nil {
		return fmt.Errorf("failed to upgrade pip: %w", err)
	}
	return fmt.Errorf("failed to upgrade pip: %s", res.Output())
}

// InstallGoogletrans installs the pinned translation library.
func (inst *Installer) InstallGoogletrans() error {
	spec := "googletrans==" + config.GoogletransVersion
	res, err := inst.runner.Run(run.Cmd{
		Name: inst.paths.VenvPip(),
		Args: []string{"install", spec},
	})
	if err == nil && res.Ok() {
		return inst.record(config.CompGoogletrans, config.StatusInstalled)
	}

	inst.record(config.CompGoogletrans, config.StatusFailed)
	if err != nil {
		return fmt.Errorf("failed to install %s: %w", spec, err)
	}
	return fmt.Errorf("failed to install %s: %s", spec, res.Output())
}
