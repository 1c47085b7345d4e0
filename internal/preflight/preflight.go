// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preflight runs host sanity checks before the installer mutates
// anything: privileges, package manager, Proxmox presence, disk, memory.
package preflight

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/jeranaias/proxmenux-installer/internal/config"
	"github.com/jeranaias/proxmenux-installer/internal/run"
)

// Check statuses. Fail blocks the run; warn is advisory only.
const (
	StatusPass = "pass"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// Result is one completed host check.
type Result struct {
	Name    string
	Status  string
	Message string
	Fix     string
}

// minDiskBytes is the advisory free-space floor for the target filesystem.
// The install itself is tiny; below this the host has bigger problems.
const minDiskBytes = 1 << 30 // 1 GiB

// minMemoryBytes is the advisory total-memory floor.
const minMemoryBytes = 512 << 20 // 512 MiB

// Checker runs the preflight sequence.
type Checker struct {
	runner run.Runner
	paths  config.Paths

	// euid is a seam so tests can pretend to be root (or not).
	euid func() int
}

// New returns a checker over the given layout.
func New(runner run.Runner, paths config.Paths) *Checker {
	return &Checker{
		runner: runner,
		paths:  paths,
		euid:   os.Geteuid,
	}
}

// Names returns the check names in execution order, for rendering a
// checklist before any check has run.
func (c *Checker) Names() []string {
	return []string{
		"Superuser privileges",
		"Operating system",
		"Package manager",
		"Proxmox VE",
		"Disk space",
		"Memory",
	}
}

// RunCheck executes the check at index. The index order matches Names.
func (c *Checker) RunCheck(index int) Result {
	switch index {
	case 0:
		return c.checkRoot()
	case 1:
		return c.checkOS()
	case 2:
		return c.checkAPT()
	case 3:
		return c.checkProxmox()
	case 4:
		return c.checkDisk()
	case 5:
		return c.checkMemory()
	default:
		return Result{Name: "unknown", Status: StatusFail, Message: "no such check"}
	}
}

// All runs every check in order.
func (c *Checker) All() []Result {
	results := make([]Result, 0, len(c.Names()))
	for i := range c.Names() {
		results = append(results, c.RunCheck(i))
	}
	return results
}

// Fatal reports whether any result blocks the run.
func Fatal(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

func (c *Checker) checkRoot() Result {
	if c.euid() != 0 {
		return Result{
			Name:    "Superuser privileges",
			Status:  StatusFail,
			Message: "not running as root",
			Fix:     "Re-run with sudo or as root",
		}
	}
	return Result{
		Name:    "Superuser privileges",
		Status:  StatusPass,
		Message: "running as root",
	}
}

func (c *Checker) checkOS() Result {
	info, err := host.Info()
	if err != nil {
		return Result{
			Name:    "Operating system",
			Status:  StatusWarn,
			Message: "could not identify host platform",
		}
	}
	return Result{
		Name:    "Operating system",
		Status:  StatusPass,
		Message: fmt.Sprintf("%s %s (kernel %s)", info.Platform, info.PlatformVersion, info.KernelVersion),
	}
}

func (c *Checker) checkAPT() Result {
	// Probing with --version doubles as a start check: a missing binary
	// surfaces as a run error, not an exit status.
	if _, err := c.runner.Run(run.Cmd{Name: "apt-get", Args: []string{"--version"}}); err != nil {
		return Result{
			Name:    "Package manager",
			Status:  StatusFail,
			Message: "apt-get not found",
			Fix:     "This installer supports Debian-family systems only",
		}
	}
	return Result{
		Name:    "Package manager",
		Status:  StatusPass,
		Message: "apt-get available",
	}
}

func (c *Checker) checkProxmox() Result {
	res, err := c.runner.Run(run.Cmd{Name: "pveversion"})
	if err != nil || !res.Ok() {
		return Result{
			Name:    "Proxmox VE",
			Status:  StatusWarn,
			Message: "Proxmox VE not detected",
			Fix:     "ProxMenux targets Proxmox VE hosts; continuing anyway",
		}
	}
	version := strings.TrimSpace(strings.SplitN(res.Stdout, "\n", 2)[0])
	return Result{
		Name:    "Proxmox VE",
		Status:  StatusPass,
		Message: version,
	}
}

func (c *Checker) checkDisk() Result {
	free, err := freeDiskSpace(c.paths.BinDir)
	if err != nil {
		return Result{
			Name:    "Disk space",
			Status:  StatusWarn,
			Message: "could not determine free space",
		}
	}
	if free < minDiskBytes {
		return Result{
			Name:    "Disk space",
			Status:  StatusWarn,
			Message: fmt.Sprintf("only %s free on target filesystem", humanize.IBytes(free)),
		}
	}
	return Result{
		Name:    "Disk space",
		Status:  StatusPass,
		Message: fmt.Sprintf("%s free", humanize.IBytes(free)),
	}
}

func (c *Checker) checkMemory() Result {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Result{
			Name:    "Memory",
			Status:  StatusWarn,
			Message: "could not determine memory",
		}
	}
	if vm.Total < minMemoryBytes {
		return Result{
			Name:    "Memory",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s total", humanize.IBytes(vm.Total)),
		}
	}
	return Result{
		Name:    "Memory",
		Status:  StatusPass,
		Message: fmt.Sprintf("%s total, %s available", humanize.IBytes(vm.Total), humanize.IBytes(vm.Available)),
	}
}
