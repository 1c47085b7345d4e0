// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package install assembles and executes the fixed step sequences that
// put ProxMenux on a node, decides how an existing installation meets a
// new request, and tears installations down again.
package install

import (
	"errors"

	"github.com/jeranaias/proxmenux-installer/internal/detect"
	"github.com/jeranaias/proxmenux-installer/internal/journal"
)

// Sentinel outcomes the CLI maps to messages and exit status.
var (
	// ErrCancelled means the operator declined a confirmation gate.
	ErrCancelled = errors.New("cancelled")
	// ErrNotRoot means the process lacks the privilege to install.
	ErrNotRoot = errors.New("must be run as root")
	// ErrNoLanguage means a Translation install has no locale to work with.
	ErrNoLanguage = errors.New("no language selected")
)

// Step is one unit of installer work.
type Step struct {
	Title string
	Run   func() error
}

// Reporter observes step starts, 1-based.
type Reporter interface {
	Step(index, total int, title string)
}

// Plan is a ready-to-run fixed sequence of install steps. Drive it with
// Execute, or walk Steps directly and call Finish at the end; either way
// Finish must run on every exit so scratch state is released.
type Plan struct {
	Mode  detect.InstallType
	Steps []Step

	journal  *journal.Journal
	keep     int
	cloneDir string
	cleanups []func()
	finished bool
}

func (p *Plan) addCleanup(f func()) {
	p.cleanups = append(p.cleanups, f)
}

// Execute runs every step in order, reporting each start. The first
// failure stops the run; steps are not resumable, a failed run is
// re-invoked from the start and leans on the idempotent sub-steps.
func (p *Plan) Execute(rep Reporter) (err error) {
	defer func() { p.Finish(err) }()

	total := len(p.Steps)
	for i, step := range p.Steps {
		if rep != nil {
			rep.Step(i+1, total, step.Title)
		}
		if err = step.Run(); err != nil {
			return err
		}
	}
	return nil
}

// Finish releases scratch state and closes out the journal run. Safe to
// call more than once; only the first call does anything.
func (p *Plan) Finish(err error) {
	if p.finished {
		return
	}
	p.finished = true

	for i := len(p.cleanups) - 1; i >= 0; i-- {
		p.cleanups[i]()
	}
	p.cleanups = nil

	switch {
	case err == nil:
		p.journal.FinishRun(journal.OutcomeSuccess, nil)
	case errors.Is(err, ErrCancelled):
		p.journal.FinishRun(journal.OutcomeCancelled, err)
	default:
		p.journal.FinishRun(journal.OutcomeFailed, err)
	}
	p.journal.Prune(p.keep)
}
