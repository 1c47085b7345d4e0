// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettings_MissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing settings file should not error: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("expected defaults, got %+v", s)
	}
}

func TestLoadSettings_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := "text_mode = true\nno_color = true\nkeep_journal_runs = 5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if !s.TextMode || !s.NoColor || s.KeepJournalRuns != 5 {
		t.Errorf("settings not loaded: %+v", s)
	}
}

func TestLoadSettings_MalformedDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("text_mode = = nonsense"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err == nil {
		t.Error("expected a warning error for malformed settings")
	}
	if s != DefaultSettings() {
		t.Errorf("malformed settings should fall back to defaults, got %+v", s)
	}
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	t.Setenv("PROXMENUX_INSTALLER_TEXT_MODE", "1")
	t.Setenv("PROXMENUX_INSTALLER_NO_COLOR", "true")
	t.Setenv("PROXMENUX_INSTALLER_KEEP_JOURNAL_RUNS", "3")

	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if !s.TextMode {
		t.Error("TEXT_MODE=1 not applied")
	}
	if !s.NoColor {
		t.Error("NO_COLOR=true not applied")
	}
	if s.KeepJournalRuns != 3 {
		t.Errorf("KeepJournalRuns = %d, want 3", s.KeepJournalRuns)
	}
}

func TestLoadSettings_ClampsRetention(t *testing.T) {
	t.Setenv("PROXMENUX_INSTALLER_KEEP_JOURNAL_RUNS", "-4")

	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.KeepJournalRuns != 0 {
		t.Errorf("negative retention should clamp to 0, got %d", s.KeepJournalRuns)
	}
}

func TestPaths_DerivedLocations(t *testing.T) {
	p := DefaultPaths()

	testCases := []struct {
		name     string
		got      string
		expected string
	}{
		{"config", p.ConfigFile(), "/usr/local/share/proxmenux/config.json"},
		{"cache", p.CacheFile(), "/usr/local/share/proxmenux/cache.json"},
		{"utils", p.UtilsFile(), "/usr/local/share/proxmenux/utils.sh"},
		{"version", p.VersionFile(), "/usr/local/share/proxmenux/version.txt"},
		{"scripts", p.ScriptsDir(), "/usr/local/share/proxmenux/scripts"},
		{"installer copy", p.InstallCopyDir(), "/usr/local/share/proxmenux/install"},
		{"journal", p.JournalFile(), "/usr/local/share/proxmenux/receipts.db"},
		{"launcher", p.Launcher(), "/usr/local/bin/menu"},
		{"venv activate", p.VenvActivate(), "/opt/googletrans-env/bin/activate"},
		{"venv pip", p.VenvPip(), "/opt/googletrans-env/bin/pip"},
		{"unit", p.ServiceUnit(), "/etc/systemd/system/proxmenux-monitor.service"},
		{"jq binary", p.JqBinary(), "/usr/local/bin/jq"},
		{"bashrc backup", p.BashrcBackup(), "/root/.bashrc.proxmenux.bak"},
		{"motd backup", p.MotdBackup(), "/etc/motd.proxmenux.bak"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("got %q, want %q", tc.got, tc.expected)
			}
		})
	}
}
