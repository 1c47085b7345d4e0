// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import "path/filepath"

// Fixed identifiers for the installation. These never vary at runtime;
// tests vary the Paths roots instead.
const (
	// RepoURL is the source repository fetched on every install.
	RepoURL = "https://github.com/MacRimi/ProxMenux"

	// JqFallbackURL is the prebuilt binary used when apt cannot install jq.
	JqFallbackURL = "https://github.com/jqlang/jq/releases/download/jq-1.7.1/jq-linux-amd64"

	// MonitorService is the companion service managed by install/uninstall.
	MonitorService = "proxmenux-monitor"

	// MonitorPort is the port the companion service listens on.
	MonitorPort = 8008

	// GoogletransVersion pins the translation library installed into the venv.
	GoogletransVersion = "4.0.0-rc1"
)

// Paths holds every filesystem location the installer touches. Production
// code uses DefaultPaths; tests point the roots into a temp directory so
// the full install/uninstall cycle runs without privileges.
type Paths struct {
	// BaseDir owns all installation-produced state.
	BaseDir string
	// BinDir receives the launcher executable.
	BinDir string
	// VenvDir is the translation virtual environment root.
	VenvDir string
	// MonitorDir is the companion service's install directory.
	MonitorDir string
	// SystemdDir receives the companion service unit file.
	SystemdDir string
	// Bashrc is the root shell profile the installer annotates.
	Bashrc string
	// Motd is the message-of-the-day file the installer annotates.
	Motd string
	// SettingsFile is the optional operator preferences file.
	SettingsFile string
}

// DefaultPaths returns the fixed production layout.
func DefaultPaths() Paths {
	return Paths{
		BaseDir:      "/usr/local/share/proxmenux",
		BinDir:       "/usr/local/bin",
		VenvDir:      "/opt/googletrans-env",
		MonitorDir:   "/usr/local/share/proxmenux-monitor",
		SystemdDir:   "/etc/systemd/system",
		Bashrc:       "/root/.bashrc",
		Motd:         "/etc/motd",
		SettingsFile: "/etc/proxmenux-installer.toml",
	}
}

// ConfigFile is the persisted install record.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.BaseDir, "config.json")
}

// CacheFile is the pre-populated translation cache (Translation mode only).
func (p Paths) CacheFile() string {
	return filepath.Join(p.BaseDir, "cache.json")
}

// UtilsFile is the shared utility script copied from the source tree.
func (p Paths) UtilsFile() string {
	return filepath.Join(p.BaseDir, "utils.sh")
}

// VersionFile is the installed version marker.
func (p Paths) VersionFile() string {
	return filepath.Join(p.BaseDir, "version.txt")
}

// ScriptsDir is the installed scripts subtree.
func (p Paths) ScriptsDir() string {
	return filepath.Join(p.BaseDir, "scripts")
}

// InstallCopyDir holds the copy of this installer kept for later reruns.
func (p Paths) InstallCopyDir() string {
	return filepath.Join(p.BaseDir, "install")
}

// JournalFile is the installation receipts database.
func (p Paths) JournalFile() string {
	return filepath.Join(p.BaseDir, "receipts.db")
}

// Launcher is the menu executable placed outside the base directory.
func (p Paths) Launcher() string {
	return filepath.Join(p.BinDir, "menu")
}

// VenvActivate is the activation entrypoint whose presence defines a
// working virtual environment.
func (p Paths) VenvActivate() string {
	return filepath.Join(p.VenvDir, "bin", "activate")
}

// VenvPython is the interpreter inside the virtual environment.
func (p Paths) VenvPython() string {
	return filepath.Join(p.VenvDir, "bin", "python3")
}

// VenvPip is the package installer inside the virtual environment.
func (p Paths) VenvPip() string {
	return filepath.Join(p.VenvDir, "bin", "pip")
}

// ServiceUnit is the companion service definition file.
func (p Paths) ServiceUnit() string {
	return filepath.Join(p.SystemdDir, MonitorService+".service")
}

// MonitorProgram is the companion executable the service unit launches.
func (p Paths) MonitorProgram() string {
	return filepath.Join(p.MonitorDir, "proxmenux_monitor")
}

// JqBinary is where the fallback jq download lands.
func (p Paths) JqBinary() string {
	return filepath.Join(p.BinDir, "jq")
}

// BashrcBackup is the sibling backup taken before annotating the profile.
// Backups sit next to their originals, not under BaseDir, because restore
// runs after the base directory is already gone.
func (p Paths) BashrcBackup() string {
	return p.Bashrc + ".proxmenux.bak"
}

// MotdBackup is the sibling backup taken before annotating the MOTD.
func (p Paths) MotdBackup() string {
	return p.Motd + ".proxmenux.bak"
}
