// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fetch retrieves the project payload: a shallow clone of the
// upstream repository and, when apt cannot provide it, a prebuilt jq
// binary from the project's release page.
package fetch

import (
	"fmt"
	"os"

	"github.com/jeranaias/proxmenux-installer/internal/config"
	"github.com/jeranaias/proxmenux-installer/internal/run"
)

// Cloner shallow-clones the upstream repository into a scratch directory.
type Cloner struct {
	runner run.Runner
	url    string

	// OnScratch observes the scratch directory as soon as it exists,
	// before git starts filling it; the cosmetic file counter hooks in
	// here. May be nil.
	OnScratch func(dir string)
}

// NewCloner returns a cloner for the upstream repository.
func NewCloner(runner run.Runner) *Cloner {
	return &Cloner{runner: runner, url: config.RepoURL}
}

// CloneTemp clones into a fresh temporary directory and returns its path
// with a cleanup that removes it. Call cleanup on every exit path; the
// scratch tree must never outlive the run. Clone failure is fatal to the
// caller and leaves nothing behind.
func (c *Cloner) CloneTemp() (string, func(), error) {
	dir, err := os.MkdirTemp("", "proxmenux-clone-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	if c.OnScratch != nil {
		c.OnScratch(dir)
	}

	res, err := c.runner.Run(run.Cmd{
		Name: "git",
		Args: []string{"clone", "--depth=1", c.url, dir},
	})
	if err != nil {
		os.RemoveAll(dir)
		return "", nil, fmt.Errorf("failed to clone %s: %w", c.url, err)
	}
	if !res.Ok() {
		os.RemoveAll(dir)
		return "", nil, fmt.Errorf("failed to clone %s: %s", c.url, res.Output())
	}

	cleanup := func() { os.RemoveAll(dir) }
	return dir, cleanup, nil
}
