// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/proxmenux-installer/internal/util"
)

// =============================================================================
// COMPONENT AND STATUS ENUMS
// =============================================================================

// Status is the recorded outcome for one tracked component.
type Status string

const (
	StatusAlreadyInstalled    Status = "already_installed"
	StatusInstalled           Status = "installed"
	StatusInstalledFromGithub Status = "installed_from_github"
	StatusFailed              Status = "failed"
	StatusCreated             Status = "created"
	StatusAlreadyExists       Status = "already_exists"
	StatusUpgraded            Status = "upgraded"
	StatusUpgradeFailed       Status = "upgrade_failed"
)

// Tracked component names. The store refuses to record anything outside
// this set, so a stray package name can never grow the record schema.
const (
	CompJq          = "jq"
	CompDialog      = "dialog"
	CompCurl        = "curl"
	CompGit         = "git"
	CompPython      = "python3"
	CompPythonVenv  = "python3-venv"
	CompPythonPip   = "python3-pip"
	CompVirtualEnv  = "virtual_environment"
	CompPip         = "pip"
	CompGoogletrans = "googletrans"
	CompMonitor     = "proxmenux_monitor"
)

// languageKey is the one non-component field on the persisted record.
const languageKey = "language"

var trackedComponents = map[string]bool{
	CompJq:          true,
	CompDialog:      true,
	CompCurl:        true,
	CompGit:         true,
	CompPython:      true,
	CompPythonVenv:  true,
	CompPythonPip:   true,
	CompVirtualEnv:  true,
	CompPip:         true,
	CompGoogletrans: true,
	CompMonitor:     true,
}

// IsTracked reports whether name belongs to the fixed component set.
func IsTracked(name string) bool {
	return trackedComponents[name]
}

// ComponentStatus is one component's entry in the install record.
type ComponentStatus struct {
	Status    Status `json:"status"`
	Timestamp string `json:"timestamp"`
}

// =============================================================================
// INSTALL RECORD STORE
// =============================================================================

// Store persists the install record: per-component statuses plus the
// selected language, as a single JSON document.
//
// Every mutation is read-merge-replace: load the whole document, change
// one key, atomically rename a fresh file over the old one. The document
// is never edited in place, so an interrupted run leaves either the old
// record or the new one, never a truncated mix.
//
// A document that fails to parse is discarded wholesale and reset to {}.
// Corruption is self-healed, never fatal.
type Store struct {
	path string
}

// NewStore returns a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// load reads the current document, healing corruption to an empty record.
// Unknown keys written by older versions are preserved verbatim.
func (s *Store) load() map[string]json.RawMessage {
	doc := make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return make(map[string]json.RawMessage)
	}
	return doc
}

// save atomically replaces the document.
func (s *Store) save(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode install record: %w", err)
	}
	if err := util.AtomicWriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to persist install record: %w", err)
	}
	return nil
}

// Heal checks the backing file and wholesale-replaces it with an empty
// record when it exists but is not valid JSON. A missing file is left
// missing; the record is only created on first write.
func (s *Store) Heal() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var doc map[string]json.RawMessage
	if json.Unmarshal(data, &doc) == nil {
		return nil
	}
	if err := util.AtomicWriteFile(s.path, []byte("{}"), 0644); err != nil {
		return fmt.Errorf("failed to reset corrupt install record: %w", err)
	}
	return nil
}

// Init creates an empty record when none exists yet. An existing file,
// valid or not, is left for Heal to judge.
func (s *Store) Init() error {
	data, err := os.ReadFile(s.path)
	if err == nil && len(data) > 0 {
		return nil
	}
	if err := util.AtomicWriteFile(s.path, []byte("{}"), 0644); err != nil {
		return fmt.Errorf("failed to initialize install record: %w", err)
	}
	return nil
}

// RecordStatus merges one component outcome into the record with a fresh
// UTC timestamp. Components outside the tracked set are ignored.
func (s *Store) RecordStatus(component string, status Status) error {
	if !IsTracked(component) {
		return nil
	}

	entry := ComponentStatus{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode component status: %w", err)
	}

	doc := s.load()
	doc[component] = raw
	return s.save(doc)
}

// RecordLanguage merges the language selection into the record.
func (s *Store) RecordLanguage(lang string) error {
	raw, err := json.Marshal(lang)
	if err != nil {
		return fmt.Errorf("failed to encode language: %w", err)
	}

	doc := s.load()
	doc[languageKey] = raw
	return s.save(doc)
}

// ReadLanguage returns the stored language selection, or "" when the
// record is absent, corrupt, or has no selection. The "null" sentinel an
// earlier jq-based writer could leave behind reads as empty.
func (s *Store) ReadLanguage() string {
	doc := s.load()
	raw, ok := doc[languageKey]
	if !ok {
		return ""
	}
	var lang string
	if err := json.Unmarshal(raw, &lang); err != nil {
		return ""
	}
	if lang == "null" {
		return ""
	}
	return lang
}

// ReadStatus returns the recorded outcome for one component.
func (s *Store) ReadStatus(component string) (ComponentStatus, bool) {
	doc := s.load()
	raw, ok := doc[component]
	if !ok {
		return ComponentStatus{}, false
	}
	var entry ComponentStatus
	if err := json.Unmarshal(raw, &entry); err != nil {
		return ComponentStatus{}, false
	}
	return entry, true
}

// Statuses returns every tracked component present in the record.
func (s *Store) Statuses() map[string]ComponentStatus {
	doc := s.load()
	out := make(map[string]ComponentStatus)
	for name, raw := range doc {
		if !IsTracked(name) {
			continue
		}
		var entry ComponentStatus
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		out[name] = entry
	}
	return out
}
