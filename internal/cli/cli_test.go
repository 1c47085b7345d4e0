// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
)

// =============================================================================
// STATUS BADGE TESTS (styles.go)
// =============================================================================

func TestRenderStatus(t *testing.T) {
	ForceColorsEnabled(false)

	tests := []struct {
		status string
		want   string
	}{
		{"ok", "[OK]"},
		{"pass", "[OK]"},
		{"installed", "[OK]"},
		{"already_installed", "[OK]"},
		{"installed_from_github", "[OK]"},
		{"created", "[OK]"},
		{"already_exists", "[OK]"},
		{"upgraded", "[OK]"},
		{"fail", "[FAIL]"},
		{"failed", "[FAIL]"},
		{"upgrade_failed", "[FAIL]"},
		{"warn", "[WARN]"},
		{"pending", "[WARN]"},
		{"bogus", "[BOGUS]"},
	}

	for _, tt := range tests {
		got := RenderStatus(tt.status)
		if !strings.Contains(got, tt.want) {
			t.Errorf("RenderStatus(%q) = %q, want it to contain %q", tt.status, got, tt.want)
		}
	}
}

func TestRenderSeparator(t *testing.T) {
	sep := RenderSeparator(10)
	if !strings.Contains(sep, strings.Repeat("=", 10)) {
		t.Errorf("RenderSeparator(10) = %q, want 10 equals signs", sep)
	}

	// Default width.
	sep = RenderSeparator()
	if !strings.Contains(sep, strings.Repeat("=", 70)) {
		t.Errorf("RenderSeparator() should default to 70 columns, got %q", sep)
	}
}

// =============================================================================
// TEXT WRAPPING TESTS (terminal.go)
// =============================================================================

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		check    func(*testing.T, string)
	}{
		{
			name:     "short line unchanged",
			text:     "hello world",
			maxWidth: 40,
			check: func(t *testing.T, got string) {
				if got != "hello world" {
					t.Errorf("got %q, want unchanged text", got)
				}
			},
		},
		{
			name:     "long line wraps at word boundary",
			text:     "the quick brown fox jumps over the lazy dog",
			maxWidth: 20,
			check: func(t *testing.T, got string) {
				for _, line := range strings.Split(got, "\n") {
					if len(line) > 18 {
						t.Errorf("line %q exceeds wrapped width", line)
					}
				}
				joined := strings.ReplaceAll(got, "\n", " ")
				if joined != "the quick brown fox jumps over the lazy dog" {
					t.Errorf("wrapping lost words: %q", got)
				}
			},
		},
		{
			name:     "existing newlines preserved",
			text:     "line one\nline two",
			maxWidth: 40,
			check: func(t *testing.T, got string) {
				if got != "line one\nline two" {
					t.Errorf("got %q, want newlines preserved", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, WrapText(tt.text, tt.maxWidth))
		})
	}
}

// =============================================================================
// UNIT PREVIEW TESTS (preview.go)
// =============================================================================

func TestRenderUnitFile_PlainWhenColorsOff(t *testing.T) {
	ForceColorsEnabled(false)

	unit := "[Unit]\nDescription=ProxMenux Monitor\n"
	if got := RenderUnitFile(unit); got != unit {
		t.Errorf("with colors off the unit should pass through unchanged, got %q", got)
	}
}

func TestRenderUnitFile_HighlightsWithColors(t *testing.T) {
	ForceColorsEnabled(true)
	defer ForceColorsEnabled(false)

	unit := "[Unit]\nDescription=ProxMenux Monitor\n"
	got := RenderUnitFile(unit)
	if !strings.Contains(got, "Description") {
		t.Errorf("highlighted output lost content: %q", got)
	}
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes in highlighted output, got %q", got)
	}
}
