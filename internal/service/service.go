// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package service registers the companion monitor with systemd and
// drives its lifecycle by name. Only the unit definition and the
// start/stop/enable/disable calls live here; the monitor program itself
// arrives with the fetched source tree.
package service

import (
	"fmt"
	"os"

	"github.com/jeranaias/proxmenux-installer/internal/config"
	"github.com/jeranaias/proxmenux-installer/internal/run"
	"github.com/jeranaias/proxmenux-installer/internal/util"
)

// unitTemplate is the fixed service definition. The dashboard port is
// baked into the ExecStart line; nothing else reads it.
const unitTemplate = `[Unit]
Description=ProxMenux Monitor
After=network.target

[Service]
Type=simple
ExecStart=%s --port %d
WorkingDirectory=%s
Restart=on-failure
User=root

[Install]
WantedBy=multi-user.target
`

// Manager writes, removes, and drives the monitor's systemd unit.
type Manager struct {
	runner run.Runner
	paths  config.Paths
}

// NewManager returns a unit manager over the given runner and layout.
func NewManager(runner run.Runner, paths config.Paths) *Manager {
	return &Manager{runner: runner, paths: paths}
}

// UnitContent renders the service definition exactly as written to disk.
func (m *Manager) UnitContent() string {
	return fmt.Sprintf(unitTemplate, m.paths.MonitorProgram(), config.MonitorPort, m.paths.MonitorDir)
}

// Install writes the unit, reloads systemd, enables the service, and
// starts it. When the unit already existed this is an upgrade: the
// service is restarted instead so it picks up the new monitor build.
// The returned status is what the install record should say about the
// monitor afterwards.
func (m *Manager) Install() (config.Status, error) {
	existed := util.FileExists(m.paths.ServiceUnit())

	if err := util.AtomicWriteFile(m.paths.ServiceUnit(), []byte(m.UnitContent()), 0644); err != nil {
		return failStatus(existed), fmt.Errorf("failed to write service unit: %w", err)
	}
	if err := m.ctl("daemon-reload"); err != nil {
		return failStatus(existed), err
	}
	if err := m.ctl("enable", config.MonitorService); err != nil {
		return failStatus(existed), err
	}

	verb := "start"
	if existed {
		verb = "restart"
	}
	if err := m.ctl(verb, config.MonitorService); err != nil {
		return failStatus(existed), err
	}

	if existed {
		return config.StatusUpgraded, nil
	}
	return config.StatusInstalled, nil
}

func failStatus(existed bool) config.Status {
	if existed {
		return config.StatusUpgradeFailed
	}
	return config.StatusFailed
}

// Remove tears the monitor down: stop if active, disable if enabled,
// delete the unit, reload systemd, delete the install directory.
// Best-effort throughout; the returned warnings describe steps that
// failed. An absent unit produces no systemctl calls beyond the two
// state probes, so removal is safe to repeat.
func (m *Manager) Remove() []string {
	var warnings []string

	if m.IsActive() {
		if err := m.ctl("stop", config.MonitorService); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	if m.IsEnabled() {
		if err := m.ctl("disable", config.MonitorService); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	unit := m.paths.ServiceUnit()
	if util.FileExists(unit) {
		if err := os.Remove(unit); err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to remove %s: %v", unit, err))
		}
		if err := m.ctl("daemon-reload"); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	if util.DirExists(m.paths.MonitorDir) {
		if err := os.RemoveAll(m.paths.MonitorDir); err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to remove %s: %v", m.paths.MonitorDir, err))
		}
	}

	return warnings
}

// IsActive reports whether systemd considers the monitor running.
func (m *Manager) IsActive() bool {
	res, err := m.runner.Run(run.Cmd{
		Name: "systemctl",
		Args: []string{"is-active", "--quiet", config.MonitorService},
	})
	return err == nil && res.Ok()
}

// IsEnabled reports whether the monitor starts at boot.
func (m *Manager) IsEnabled() bool {
	res, err := m.runner.Run(run.Cmd{
		Name: "systemctl",
		Args: []string{"is-enabled", "--quiet", config.MonitorService},
	})
	return err == nil && res.Ok()
}

func (m *Manager) ctl(args ...string) error {
	res, err := m.runner.Run(run.Cmd{Name: "systemctl", Args: args})
	if err != nil {
		return fmt.Errorf("systemctl %s failed: %w", args[0], err)
	}
	if !res.Ok() {
		return fmt.Errorf("systemctl %s failed: %s", args[0], res.Output())
	}
	return nil
}
