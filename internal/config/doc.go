// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config holds everything the installer knows about where things
// live and what has been installed.
//
// # Key Types
//
//   - Paths: the fixed filesystem layout (base directory, launcher,
//     virtual environment, monitor service) plus upstream constants
//   - Store: the on-disk install record; tracked component statuses and
//     the selected translation language in one JSON document
//   - Settings: operator knobs from /etc/proxmenux-installer.toml with
//     PROXMENUX_INSTALLER_* environment overrides
//
// # The install record
//
// The record is a single JSON file under the base directory. Every write
// goes through an atomic replace, and a corrupt record heals to an empty
// document instead of failing the run; keys written by other tools are
// preserved untouched.
//
// # Usage
//
//	paths := config.DefaultPaths()
//	store := config.NewStore(paths.ConfigFile())
//	if err := store.RecordLanguage("es"); err != nil { ... }
package config
