// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides shared terminal presentation for the installer.
//
// It covers the concerns every surface of the program answers the same
// way: lipgloss styles and status badges, TTY and color detection, text
// wrapping, yes/no and typed-phrase confirmations, the language picker,
// and the highlighted systemd unit preview.
//
// Color handling:
//   - Colors are automatically disabled for non-TTY output
//   - Respects NO_COLOR (https://no-color.org/)
//   - FORCE_COLOR overrides detection
package cli
