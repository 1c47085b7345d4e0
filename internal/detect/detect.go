// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"github.com/jeranaias/proxmenux-installer/internal/config"
	"github.com/jeranaias/proxmenux-installer/internal/util"
)

// =============================================================================
// INSTALL TYPE DEFINITIONS
// =============================================================================

// InstallType classifies an existing installation.
type InstallType int

const (
	// TypeNone indicates no installation was found.
	TypeNone InstallType = iota
	// TypeNormal indicates a base installation without translation support.
	TypeNormal
	// TypeTranslation indicates an installation with the translation
	// virtual environment and a selected language.
	TypeTranslation
	// TypeUnknown indicates the launcher exists but the remaining signals
	// do not match any complete installation shape.
	TypeUnknown
)

// String returns the display name of the install type.
func (t InstallType) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeNormal:
		return "Normal"
	case TypeTranslation:
		return "Translation"
	case TypeUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// Installed reports whether the type represents any existing installation.
func (t InstallType) Installed() bool {
	return t != TypeNone
}

// =============================================================================
// SIGNALS
// =============================================================================

// Signals are the raw inputs behind a classification, kept for display so
// the operator can see why a state was chosen.
type Signals struct {
	// Launcher is true when the menu executable exists at the fixed path.
	Launcher bool
	// VirtualEnv is true when the venv directory and its activation
	// entrypoint both exist.
	VirtualEnv bool
	// Language is the persisted selection, "" when absent or invalid.
	Language string
}

// =============================================================================
// DETECTOR
// =============================================================================

// Detector evaluates the install-state decision table.
type Detector struct {
	paths config.Paths
	store *config.Store
}

// New returns a detector over the given layout and install record.
func New(paths config.Paths, store *config.Store) *Detector {
	return &Detector{paths: paths, store: store}
}

// Signals gathers the raw detection inputs. A corrupt install record is
// healed to an empty one before reading, so a garbage config file can
// never poison detection or any later read.
func (d *Detector) Signals() (Signals, error) {
	if err := d.store.Heal(); err != nil {
		return Signals{}, err
	}

	return Signals{
		Launcher:   util.FileExists(d.paths.Launcher()),
		VirtualEnv: util.DirExists(d.paths.VenvDir) && util.FileExists(d.paths.VenvActivate()),
		Language:   d.store.ReadLanguage(),
	}, nil
}

// Detect classifies the current installation. Precedence is fixed:
//
//	venv + language        -> Translation
//	launcher, no venv      -> Normal
//	launcher, anything else -> Unknown
//	otherwise              -> None
func (d *Detector) Detect() (InstallType, error) {
	sig, err := d.Signals()
	if err != nil {
		return TypeNone, err
	}
	return Classify(sig), nil
}

// Classify applies the decision table to a set of signals.
func Classify(sig Signals) InstallType {
	hasLang := sig.Language != ""

	switch {
	case sig.VirtualEnv && hasLang:
		return TypeTranslation
	case sig.Launcher && !sig.VirtualEnv:
		return TypeNormal
	case sig.Launcher:
		return TypeUnknown
	default:
		return TypeNone
	}
}
