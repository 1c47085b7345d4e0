// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package detect classifies the current ProxMenux installation state.
//
// # Key Types
//
//   - InstallType: enumeration of installation states (None, Normal,
//     Translation, Unknown)
//   - Signals: the raw filesystem/config inputs behind a classification
//   - Detector: evaluates the decision table against a layout
//
// # Decision Table
//
// Evaluated in precedence order:
//
//	virtual environment present AND language present -> Translation
//	launcher present AND virtual environment absent  -> Normal
//	launcher present (any other combination)         -> Unknown
//	otherwise                                        -> None
//
// Detection has one side effect: a syntactically invalid install record
// is replaced with an empty one before the table is evaluated, so a
// corrupt config file can never make a run fail.
//
// # Usage
//
//	d := detect.New(paths, store)
//	state, err := d.Detect()
//	if err != nil {
//		return err
//	}
//	if state.Installed() {
//		// offer uninstall / reconcile
//	}
package detect
