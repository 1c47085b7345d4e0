// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package run

import (
	"errors"
	"testing"
)

func TestCmdString(t *testing.T) {
	testCases := []struct {
		name     string
		cmd      Cmd
		expected string
	}{
		{"no args", Cmd{Name: "systemctl"}, "systemctl"},
		{"with args", Cmd{Name: "apt-get", Args: []string{"install", "-y", "jq"}}, "apt-get install -y jq"},
		{"single arg", Cmd{Name: "pveversion", Args: []string{"--verbose"}}, "pveversion --verbose"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cmd.String(); got != tc.expected {
				t.Errorf("String() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestResultOk(t *testing.T) {
	if !(Result{ExitCode: 0}).Ok() {
		t.Error("exit 0 should be Ok")
	}
	if (Result{ExitCode: 1}).Ok() {
		t.Error("exit 1 should not be Ok")
	}
}

func TestResultOutput(t *testing.T) {
	r := Result{Stdout: "out\n", Stderr: "err\n"}
	if r.Output() != "err" {
		t.Errorf("Output() = %q, want stderr first", r.Output())
	}
	r = Result{Stdout: "only stdout\n"}
	if r.Output() != "only stdout" {
		t.Errorf("Output() = %q, want stdout fallback", r.Output())
	}
}

func TestFake_ScriptedResponses(t *testing.T) {
	fake := NewFake()
	fake.Respond("dpkg-query -W -f=${Status} jq", Result{Stdout: "install ok installed"})
	fake.Fail("apt-get install -y dialog", "E: Unable to locate package dialog")

	res, err := fake.Run(Cmd{Name: "dpkg-query", Args: []string{"-W", "-f=${Status}", "jq"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Stdout != "install ok installed" {
		t.Errorf("Stdout = %q", res.Stdout)
	}

	res, err = fake.Run(Cmd{Name: "apt-get", Args: []string{"install", "-y", "dialog"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Ok() {
		t.Error("scripted failure reported Ok")
	}
	if res.Stderr == "" {
		t.Error("scripted failure lost its stderr")
	}
}

func TestFake_DefaultAndRecording(t *testing.T) {
	fake := NewFake()

	res, err := fake.Run(Cmd{Name: "systemctl", Args: []string{"daemon-reload"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !res.Ok() {
		t.Error("default response should succeed")
	}

	if !fake.Ran("systemctl daemon-reload") {
		t.Error("call not recorded")
	}
	if fake.Ran("apt-get update") {
		t.Error("Ran matched a command that never executed")
	}
}

func TestFake_ScriptedError(t *testing.T) {
	fake := NewFake()
	wantErr := errors.New("exec: \"git\": executable file not found in $PATH")
	fake.Errors["git clone --depth=1 https://example.invalid/repo /tmp/x"] = wantErr

	_, err := fake.Run(Cmd{Name: "git", Args: []string{"clone", "--depth=1", "https://example.invalid/repo", "/tmp/x"}})
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want scripted error", err)
	}
}

func TestFake_Handler(t *testing.T) {
	fake := NewFake()
	fake.Handler = func(cmd Cmd) (Result, error) {
		if cmd.Name == "dpkg-query" {
			return Result{ExitCode: 1}, nil
		}
		return Result{}, nil
	}

	res, err := fake.Run(Cmd{Name: "dpkg-query", Args: []string{"-W", "curl"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Ok() {
		t.Error("handler response ignored")
	}
}

func TestExecRunner_CapturesExitCode(t *testing.T) {
	runner := NewExecRunner()

	res, err := runner.Run(Cmd{Name: "sh", Args: []string{"-c", "exit 3"}})
	if err != nil {
		t.Fatalf("Run returned error for non-zero exit: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	runner := NewExecRunner()

	res, err := runner.Run(Cmd{Name: "sh", Args: []string{"-c", "echo out; echo err >&2"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Stdout != "out\n" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
	if res.Stderr != "err\n" {
		t.Errorf("Stderr = %q", res.Stderr)
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	runner := NewExecRunner()

	_, err := runner.Run(Cmd{Name: "definitely-not-a-real-binary-zz"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestExecRunner_EnvInjection(t *testing.T) {
	runner := NewExecRunner()

	res, err := runner.Run(Cmd{
		Name: "sh",
		Args: []string{"-c", "printf %s \"$DEBIAN_FRONTEND\""},
		Env:  []string{"DEBIAN_FRONTEND=noninteractive"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Stdout != "noninteractive" {
		t.Errorf("env not injected, stdout = %q", res.Stdout)
	}
}
