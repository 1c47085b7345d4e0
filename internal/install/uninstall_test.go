// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package install

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/proxmenux-installer/internal/detect"
)

// installedEnv runs a full install so teardown tests start from a real
// produced layout rather than a hand-built one.
func installedEnv(t *testing.T, mode detect.InstallType, language string) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	plan, err := env.orch.NewPlan(mode, language)
	require.NoError(t, err)
	require.NoError(t, plan.Execute(nil))
	return env
}

func TestUninstall_NormalCycle(t *testing.T) {
	env := installedEnv(t, detect.TypeNormal, "")
	u := NewUninstaller(env.paths, env.store, env.fake)

	var steps []string
	u.OnStep = func(title string) { steps = append(steps, title) }

	require.Zero(t, u.Run(detect.TypeNormal, false))

	require.NoFileExists(t, env.paths.Launcher())
	require.NoDirExists(t, env.paths.BaseDir)
	require.NoFileExists(t, env.paths.ServiceUnit())
	require.NoDirExists(t, env.paths.MonitorDir)

	// Shell profile back to its pre-install content, backup consumed.
	data, err := os.ReadFile(env.paths.Bashrc)
	require.NoError(t, err)
	require.Equal(t, "# node profile\n", string(data))
	require.NoFileExists(t, env.paths.BashrcBackup())

	// The MOTD only ever held our block, so it goes away entirely.
	require.NoFileExists(t, env.paths.Motd)

	// Service teardown before file removal.
	require.Equal(t, []string{
		"Remove monitor service",
		"Remove translation environment",
		"Remove launcher",
		"Remove program files",
		"Restore shell profile and MOTD",
	}, steps)
	require.True(t, env.fake.Ran("systemctl stop proxmenux-monitor"))
	require.True(t, env.fake.Ran("systemctl disable proxmenux-monitor"))
	require.True(t, env.fake.Ran("systemctl daemon-reload"))

	// The system no longer detects as installed.
	current, err := detect.New(env.paths, env.store).Detect()
	require.NoError(t, err)
	require.Equal(t, detect.TypeNone, current)
}

func TestUninstall_RerunOverCleanSystem(t *testing.T) {
	env := installedEnv(t, detect.TypeNormal, "")
	u := NewUninstaller(env.paths, env.store, env.fake)

	require.Zero(t, u.Run(detect.TypeNormal, false))
	before := len(env.fake.Calls)

	// Second pass finds nothing and still reports no warnings.
	require.Zero(t, u.Run(detect.TypeNone, false))

	for _, line := range env.fake.CallLines()[before:] {
		require.False(t, strings.HasPrefix(line, "systemctl stop"),
			"stopped a unit that was already gone: %s", line)
	}
}

func TestUninstall_TranslationOffersPackages(t *testing.T) {
	env := installedEnv(t, detect.TypeTranslation, "es")
	u := NewUninstaller(env.paths, env.store, env.fake)

	var offered []string
	u.ConfirmRemovePackage = func(pkg string) bool {
		offered = append(offered, pkg)
		return pkg == "python3-venv"
	}

	require.Zero(t, u.Run(detect.TypeTranslation, false))

	// Only venv helpers are ever offered, never python3 itself, and only
	// the accepted one is removed.
	require.Equal(t, []string{"python3-venv", "python3-pip"}, offered)
	require.True(t, env.fake.Ran("apt-get remove -y python3-venv"))
	require.False(t, env.fake.Ran("apt-get remove -y python3-pip"))
	require.False(t, env.fake.Ran("apt-get remove -y python3"))

	// googletrans came off inside the venv before the venv was deleted.
	require.True(t, env.fake.Ran(env.paths.VenvPip()+" uninstall -y googletrans"))
	require.NoDirExists(t, env.paths.VenvDir)
}

func TestUninstall_ForcedSkipsOffers(t *testing.T) {
	env := installedEnv(t, detect.TypeTranslation, "es")
	u := NewUninstaller(env.paths, env.store, env.fake)
	u.ConfirmRemovePackage = func(pkg string) bool {
		t.Fatalf("offer for %s during forced teardown", pkg)
		return false
	}

	require.Zero(t, u.Run(detect.TypeTranslation, true))

	for _, line := range env.fake.CallLines() {
		require.False(t, strings.HasPrefix(line, "apt-get remove"),
			"forced teardown removed a package: %s", line)
	}
	require.NoDirExists(t, env.paths.VenvDir)
}

func TestUninstall_ContinuesPastFailures(t *testing.T) {
	env := installedEnv(t, detect.TypeNormal, "")
	u := NewUninstaller(env.paths, env.store, env.fake)

	var warnings []string
	u.OnWarning = func(msg string) { warnings = append(warnings, msg) }
	env.fake.Fail("systemctl stop proxmenux-monitor", "Job failed")

	require.Equal(t, 1, u.Run(detect.TypeNormal, false))
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0], "stop")

	// Everything after the failed stop still came off.
	require.NoFileExists(t, env.paths.Launcher())
	require.NoDirExists(t, env.paths.BaseDir)
	require.NoFileExists(t, env.paths.ServiceUnit())
}

func TestUninstall_BrokenVenvStillRemoved(t *testing.T) {
	env := installedEnv(t, detect.TypeTranslation, "es")

	// Strip pip out so the environment no longer supports uninstalling
	// the library. The directory must still be deleted.
	require.NoError(t, os.Remove(env.paths.VenvPip()))
	calls := len(env.fake.Calls)

	u := NewUninstaller(env.paths, env.store, env.fake)
	require.Zero(t, u.Run(detect.TypeTranslation, true))

	for _, line := range env.fake.CallLines()[calls:] {
		require.NotContains(t, line, "googletrans")
	}
	require.NoDirExists(t, env.paths.VenvDir)
}
