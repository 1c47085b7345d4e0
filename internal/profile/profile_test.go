// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/proxmenux-installer/internal/config"
	"github.com/jeranaias/proxmenux-installer/internal/util"
)

func testPaths(t *testing.T) config.Paths {
	t.Helper()
	root := t.TempDir()
	p := config.DefaultPaths()
	p.Bashrc = filepath.Join(root, "bashrc")
	p.Motd = filepath.Join(root, "motd")
	return p
}

func TestInstall_AnnotatesAndBacksUp(t *testing.T) {
	paths := testPaths(t)
	original := "export EDITOR=vim\n"
	if err := os.WriteFile(paths.Bashrc, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	inj := New(paths)
	if err := inj.Install(); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	annotated, err := os.ReadFile(paths.Bashrc)
	if err != nil {
		t.Fatal(err)
	}
	content := string(annotated)
	if !strings.Contains(content, "export EDITOR=vim") {
		t.Error("original content lost")
	}
	if !strings.Contains(content, BeginMarker) || !strings.Contains(content, EndMarker) {
		t.Error("marker block missing")
	}

	backup, err := os.ReadFile(paths.BashrcBackup())
	if err != nil {
		t.Fatalf("backup not created: %v", err)
	}
	if string(backup) != original {
		t.Errorf("backup = %q, want pristine original", string(backup))
	}
}

func TestInstall_Idempotent(t *testing.T) {
	paths := testPaths(t)
	if err := os.WriteFile(paths.Bashrc, []byte("alias ll='ls -l'\n"), 0644); err != nil {
		t.Fatal(err)
	}

	inj := New(paths)
	for i := 0; i < 3; i++ {
		if err := inj.Install(); err != nil {
			t.Fatalf("Install #%d failed: %v", i+1, err)
		}
	}

	content, err := os.ReadFile(paths.Bashrc)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(content), BeginMarker); n != 1 {
		t.Errorf("found %d marker blocks after 3 installs, want 1", n)
	}

	// The backup still holds the pre-first-install state.
	backup, err := os.ReadFile(paths.BashrcBackup())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(backup), BeginMarker) {
		t.Error("backup was overwritten with annotated content")
	}
}

func TestInstall_CreatesMissingMotd(t *testing.T) {
	paths := testPaths(t)
	inj := New(paths)

	if err := inj.Install(); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	if !util.FileExists(paths.Motd) {
		t.Fatal("motd not created")
	}
	// No original existed, so no backup may exist either.
	if util.FileExists(paths.MotdBackup()) {
		t.Error("backup created for a file that did not exist")
	}
}

func TestRestore_FromBackup(t *testing.T) {
	paths := testPaths(t)
	original := "Welcome to this node.\n"
	if err := os.WriteFile(paths.Motd, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	inj := New(paths)
	if err := inj.Install(); err != nil {
		t.Fatal(err)
	}

	if errs := inj.Restore(); len(errs) != 0 {
		t.Fatalf("Restore reported errors: %v", errs)
	}

	restored, err := os.ReadFile(paths.Motd)
	if err != nil {
		t.Fatal(err)
	}
	if string(restored) != original {
		t.Errorf("restored motd = %q, want %q", string(restored), original)
	}
	if util.FileExists(paths.MotdBackup()) {
		t.Error("backup should be removed after restore")
	}
}

func TestRestore_StripsWithoutBackup(t *testing.T) {
	paths := testPaths(t)
	content := "keep this line\n" + BeginMarker + "\ninjected\n" + EndMarker + "\n"
	if err := os.WriteFile(paths.Bashrc, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	inj := New(paths)
	if errs := inj.Restore(); len(errs) != 0 {
		t.Fatalf("Restore reported errors: %v", errs)
	}

	after, err := os.ReadFile(paths.Bashrc)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(after), BeginMarker) {
		t.Error("markers not stripped")
	}
	if !strings.Contains(string(after), "keep this line") {
		t.Error("unrelated content lost")
	}
}

func TestRestore_RemovesFileWeCreated(t *testing.T) {
	paths := testPaths(t)
	inj := New(paths)

	// Motd did not exist before install; restore should take it away again.
	if err := inj.Install(); err != nil {
		t.Fatal(err)
	}
	if errs := inj.Restore(); len(errs) != 0 {
		t.Fatalf("Restore reported errors: %v", errs)
	}

	if util.FileExists(paths.Motd) {
		t.Error("motd created by install should be removed by restore")
	}
}

func TestRestore_CleanSystemNoop(t *testing.T) {
	paths := testPaths(t)
	inj := New(paths)

	if errs := inj.Restore(); len(errs) != 0 {
		t.Errorf("Restore on clean system reported errors: %v", errs)
	}
}

func TestStripBlock(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		want      string
		wantFound bool
	}{
		{"no markers", "plain\n", "plain\n", false},
		{"only block", BeginMarker + "\nx\n" + EndMarker + "\n", "", true},
		{
			"block in middle",
			"a\n" + BeginMarker + "\nx\n" + EndMarker + "\nb\n",
			"a\nb\n",
			true,
		},
		{
			"unterminated block",
			"a\n" + BeginMarker + "\nx\ny\n",
			"a\n",
			true,
		},
		{
			"two blocks",
			BeginMarker + "\n1\n" + EndMarker + "\nmid\n" + BeginMarker + "\n2\n" + EndMarker + "\n",
			"mid\n",
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, found := StripBlock(tc.content)
			if got != tc.want {
				t.Errorf("StripBlock() content = %q, want %q", got, tc.want)
			}
			if found != tc.wantFound {
				t.Errorf("StripBlock() found = %v, want %v", found, tc.wantFound)
			}
		})
	}
}
