// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package run executes external commands behind a small interface so the
// install and uninstall flows can be exercised in tests without touching
// apt, git, or systemctl.
package run

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Cmd describes a single external command invocation.
type Cmd struct {
	Name string
	Args []string
	Env  []string // appended to the parent environment
	Dir  string
}

// String renders the invocation for journals and error messages.
func (c Cmd) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result captures the outcome of one invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Ok reports whether the command exited zero.
func (r Result) Ok() bool {
	return r.ExitCode == 0
}

// Output returns stderr if present, stdout otherwise. Package managers put
// their useful failure text on stderr; fall back for tools that don't.
func (r Result) Output() string {
	if s := strings.TrimSpace(r.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(r.Stdout)
}

// Runner executes commands. The error return is reserved for failures to
// run at all (binary missing, fork failure); a non-zero exit status is
// reported through Result.ExitCode with a nil error.
type Runner interface {
	Run(cmd Cmd) (Result, error)
}

// ExecRunner runs commands with os/exec. All operations are synchronous
// and blocking; there is no timeout policy, matching the installer's
// foreground, fail-by-exit-status model.
type ExecRunner struct{}

// NewExecRunner returns the production runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes cmd, capturing stdout and stderr separately.
func (e *ExecRunner) Run(cmd Cmd) (Result, error) {
	c := exec.Command(cmd.Name, cmd.Args...)
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("failed to run %s: %w", cmd.Name, err)
	}
	return res, nil
}
