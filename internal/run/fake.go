// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package run

import "sync"

// Fake is a scripted Runner for tests. Responses are keyed by the full
// command line (Cmd.String()); unmatched commands get Default. Every
// invocation is recorded in order.
type Fake struct {
	mu        sync.Mutex
	Responses map[string]Result
	Errors    map[string]error
	Default   Result
	Handler   func(Cmd) (Result, error) // takes precedence when set
	Calls     []Cmd
}

// NewFake returns a Fake whose unmatched commands succeed with exit 0.
func NewFake() *Fake {
	return &Fake{
		Responses: make(map[string]Result),
		Errors:    make(map[string]error),
	}
}

// Respond scripts the result for an exact command line.
func (f *Fake) Respond(cmdline string, res Result) {
	f.Responses[cmdline] = res
}

// Fail scripts a non-zero exit with the given stderr for an exact command line.
func (f *Fake) Fail(cmdline string, stderr string) {
	f.Responses[cmdline] = Result{ExitCode: 1, Stderr: stderr}
}

// Run records the call and returns the scripted response.
func (f *Fake) Run(cmd Cmd) (Result, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, cmd)
	f.mu.Unlock()

	if f.Handler != nil {
		return f.Handler(cmd)
	}

	key := cmd.String()
	if err, ok := f.Errors[key]; ok {
		return Result{}, err
	}
	if res, ok := f.Responses[key]; ok {
		return res, nil
	}
	return f.Default, nil
}

// CallLines returns the recorded invocations as command lines.
func (f *Fake) CallLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.String()
	}
	return lines
}

// Ran reports whether any recorded invocation matches the command line.
func (f *Fake) Ran(cmdline string) bool {
	for _, line := range f.CallLines() {
		if line == cmdline {
			return true
		}
	}
	return false
}
