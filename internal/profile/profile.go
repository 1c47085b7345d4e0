// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package profile annotates system files (root shell profile, MOTD) with
// marker-delimited blocks and restores them on uninstall.
//
// Install side: back up the original once, strip any previous block,
// append a fresh one. Uninstall side: put the backup back if one exists,
// otherwise strip the markers. Both directions are idempotent.
package profile

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/proxmenux-installer/internal/config"
	"github.com/jeranaias/proxmenux-installer/internal/util"
)

// Marker lines delimiting installer-owned content inside system files.
const (
	BeginMarker = "# BEGIN PROXMENUX"
	EndMarker   = "# END PROXMENUX"
)

// bashrcBlock is the content injected into the root shell profile.
const bashrcBlock = `# ProxMenux: interactive administration menu for this node.
# Type "menu" to open it.
alias menu='/usr/local/bin/menu'`

// motdBlock is the content injected into the message of the day.
const motdBlock = `ProxMenux is installed on this node. Run "menu" to manage it.
Monitor dashboard: http://localhost:8008`

// Injector owns the profile and MOTD annotations.
type Injector struct {
	paths config.Paths
}

// New returns an injector over the given layout.
func New(paths config.Paths) *Injector {
	return &Injector{paths: paths}
}

// Install annotates both system files. The first install takes a sibling
// backup of each existing file; reruns keep that original backup so the
// true pre-install state survives any number of upgrades.
func (inj *Injector) Install() error {
	if err := inj.inject(inj.paths.Bashrc, inj.paths.BashrcBackup(), bashrcBlock); err != nil {
		return fmt.Errorf("failed to annotate shell profile: %w", err)
	}
	if err := inj.inject(inj.paths.Motd, inj.paths.MotdBackup(), motdBlock); err != nil {
		return fmt.Errorf("failed to annotate motd: %w", err)
	}
	return nil
}

// Restore reverses Install on both files, best-effort. Each failure is
// reported; teardown never stops early.
func (inj *Injector) Restore() []error {
	var errs []error
	if err := inj.restore(inj.paths.Bashrc, inj.paths.BashrcBackup()); err != nil {
		errs = append(errs, fmt.Errorf("failed to restore shell profile: %w", err))
	}
	if err := inj.restore(inj.paths.Motd, inj.paths.MotdBackup()); err != nil {
		errs = append(errs, fmt.Errorf("failed to restore motd: %w", err))
	}
	return errs
}

func (inj *Injector) inject(path, backup, block string) error {
	current := ""
	existed := false
	if data, err := os.ReadFile(path); err == nil {
		current = string(data)
		existed = true
	} else if !os.IsNotExist(err) {
		return err
	}

	// One backup, taken before the first annotation and never replaced.
	if existed && !util.FileExists(backup) {
		if err := util.CopyFile(path, backup, 0644); err != nil {
			return err
		}
	}

	stripped, _ := StripBlock(current)
	content := stripped
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += BeginMarker + "\n" + block + "\n" + EndMarker + "\n"

	return util.AtomicWriteFile(path, []byte(content), 0644)
}

func (inj *Injector) restore(path, backup string) error {
	if util.FileExists(backup) {
		if err := util.CopyFile(backup, path, 0644); err != nil {
			return err
		}
		return os.Remove(backup)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	stripped, found := StripBlock(string(data))
	if !found {
		return nil
	}
	// A file that only ever held our block goes away entirely.
	if strings.TrimSpace(stripped) == "" {
		return os.Remove(path)
	}
	return util.AtomicWriteFile(path, []byte(stripped), 0644)
}

// StripBlock removes every marker-delimited block from content and
// reports whether any was found. An unterminated block is stripped to the
// end of the file rather than left dangling.
func StripBlock(content string) (string, bool) {
	if !strings.Contains(content, BeginMarker) {
		return content, false
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	inBlock := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inBlock && trimmed == BeginMarker {
			inBlock = true
			continue
		}
		if inBlock {
			if trimmed == EndMarker {
				inBlock = false
			}
			continue
		}
		out = append(out, line)
	}

	result := strings.Join(out, "\n")
	// Collapse the blank line the block removal tends to leave behind.
	result = strings.TrimRight(result, "\n")
	if result != "" {
		result += "\n"
	}
	return result, true
}
