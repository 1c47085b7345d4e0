// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows

package preflight

import (
	"syscall"
)

// freeDiskSpace returns the free bytes on the filesystem holding path.
func freeDiskSpace(path string) (uint64, error) {
	var stat syscall.Statfs_t

	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}

	// Bavail (space available to unprivileged users) rather than Bfree:
	// the conservative number is the honest one to show an operator.
	return stat.Bavail * uint64(stat.Bsize), nil
}
