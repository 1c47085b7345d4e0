// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Settings are optional operator preferences. They only tune presentation
// and journal retention; install semantics and the fixed filesystem layout
// are not configurable.
type Settings struct {
	// TextMode forces the plain-text flow even on a TTY.
	TextMode bool `toml:"text_mode"`
	// NoColor disables styled output.
	NoColor bool `toml:"no_color"`
	// KeepJournalRuns bounds how many runs the receipts journal retains.
	KeepJournalRuns int `toml:"keep_journal_runs"`
}

// DefaultSettings returns the built-in preferences.
func DefaultSettings() Settings {
	return Settings{
		TextMode:        false,
		NoColor:         false,
		KeepJournalRuns: 20,
	}
}

// LoadSettings reads preferences from path, falling back to defaults.
// A missing file is the normal case. A malformed file degrades to
// defaults with a non-nil error the caller may surface as a warning;
// preferences are never worth failing an install over.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	var loadErr error

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &s); err != nil {
			s = DefaultSettings()
			loadErr = fmt.Errorf("ignoring malformed settings file %s: %w", path, err)
		}
	}

	s.applyEnvOverrides()
	s.clamp()
	return s, loadErr
}

// applyEnvOverrides lets the environment win over the file.
func (s *Settings) applyEnvOverrides() {
	if v := os.Getenv("PROXMENUX_INSTALLER_TEXT_MODE"); v != "" {
		s.TextMode = envBool(v)
	}
	if v := os.Getenv("PROXMENUX_INSTALLER_NO_COLOR"); v != "" {
		s.NoColor = envBool(v)
	}
	if v := os.Getenv("PROXMENUX_INSTALLER_KEEP_JOURNAL_RUNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.KeepJournalRuns = n
		}
	}
}

// clamp keeps numeric preferences inside sane bounds.
func (s *Settings) clamp() {
	if s.KeepJournalRuns < 0 {
		s.KeepJournalRuns = 0
	}
	if s.KeepJournalRuns > 1000 {
		s.KeepJournalRuns = 1000
	}
}

func envBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
