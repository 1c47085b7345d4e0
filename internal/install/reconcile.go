// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package install

import "github.com/jeranaias/proxmenux-installer/internal/detect"

// Decision is the reconciler's verdict on how an existing installation
// meets a newly requested one.
type Decision int

const (
	// Proceed runs the request with no gate.
	Proceed Decision = iota
	// ConfirmThenProceed asks once, then installs additively over what
	// is already present.
	ConfirmThenProceed
	// ConfirmThenTeardown asks once, then force-removes the existing
	// installation before the request runs.
	ConfirmThenTeardown
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case ConfirmThenProceed:
		return "confirm then proceed"
	case ConfirmThenTeardown:
		return "confirm then teardown"
	default:
		return "unknown"
	}
}

// Reconcile maps (current, requested) onto what must happen before the
// requested install may run. All prompting belongs to the caller; the
// reconciler never blocks on input. Re-running the current type always
// proceeds: the install steps are idempotent and a re-run doubles as a
// repair. The only teardown case is Translation giving way to Normal;
// the venv and translation packages have no place in a Normal install.
func Reconcile(current, requested detect.InstallType) Decision {
	switch current {
	case detect.TypeNone:
		return Proceed

	case detect.TypeTranslation:
		if requested == detect.TypeNormal {
			return ConfirmThenTeardown
		}
		return Proceed

	case detect.TypeUnknown:
		// Launcher present without a clean venv signal reads as Normal.
		if requested == detect.TypeTranslation {
			return ConfirmThenProceed
		}
		return Proceed

	default: // TypeNormal
		if requested == detect.TypeTranslation {
			return ConfirmThenProceed
		}
		return Proceed
	}
}
