// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides filesystem and text helpers shared by the
// installer.
//
// File Operations:
//   - AtomicWriteFile: crash-safe file replacement with fsync
//   - CopyFile, CopyTree: install-time copying with permission handling
//   - FileExists, DirExists: presence probes used by install detection
//
// Terminal text:
//   - DisplayWidth, TruncateWidth: cell-width aware layout helpers
//
// # Usage
//
//	// Replace the install record without risking a truncated file
//	err := util.AtomicWriteFile(path, data, 0644)
//
//	// Copy the fetched scripts subtree into the base directory
//	err := util.CopyTree(src, dst)
package util
