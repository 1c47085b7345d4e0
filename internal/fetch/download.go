// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/jeranaias/proxmenux-installer/internal/config"
)

// Progress is a point-in-time download measurement.
type Progress struct {
	Received int64
	Total    int64 // negative when the server did not say
}

// String renders the measurement for status lines.
func (p Progress) String() string {
	if p.Total > 0 {
		return humanize.IBytes(uint64(p.Received)) + " / " + humanize.IBytes(uint64(p.Total))
	}
	return humanize.IBytes(uint64(p.Received))
}

// Downloader fetches single files over HTTP with progress reporting.
type Downloader struct {
	// OnProgress observes throttled measurements while the transfer
	// runs, plus one final measurement on completion. May be nil.
	OnProgress func(Progress)
}

// FetchJq downloads the pinned prebuilt jq build to the given path.
func (d *Downloader) FetchJq(dest string) (string, int64, error) {
	return d.Fetch(config.JqFallbackURL, dest, 0755)
}

// Fetch downloads url into dest and returns the payload's hex sha256
// digest and size. The file lands atomically with the given mode; a
// non-200 response is an error and failure leaves nothing behind.
func (d *Downloader) Fetch(url, dest string, mode os.FileMode) (string, int64, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", 0, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("failed to download %s: HTTP %d", url, resp.StatusCode)
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	hasher := sha256.New()
	meter := newProgressMeter(resp.ContentLength, d.OnProgress)

	written, err := io.Copy(io.MultiWriter(tmp, hasher, meter), resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("failed to save download: %w", err)
	}
	meter.finish()

	if err := tmp.Sync(); err != nil {
		return "", 0, fmt.Errorf("failed to sync download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to close download: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return "", 0, fmt.Errorf("failed to set download mode: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", 0, fmt.Errorf("failed to move download into place: %w", err)
	}
	committed = true

	return hex.EncodeToString(hasher.Sum(nil)), written, nil
}

// progressMeter counts bytes and throttles observer callbacks so a fast
// transfer does not flood the display.
type progressMeter struct {
	received int64
	total    int64
	emit     func(Progress)
	limiter  *rate.Limiter
}

func newProgressMeter(total int64, emit func(Progress)) *progressMeter {
	return &progressMeter{
		total:   total,
		emit:    emit,
		limiter: rate.NewLimiter(rate.Limit(10), 1),
	}
}

func (m *progressMeter) Write(p []byte) (int, error) {
	m.received += int64(len(p))
	if m.emit != nil && m.limiter.Allow() {
		m.emit(Progress{Received: m.received, Total: m.total})
	}
	return len(p), nil
}

// finish emits the final measurement unconditionally.
func (m *progressMeter) finish() {
	if m.emit != nil {
		m.emit(Progress{Received: m.received, Total: m.total})
	}
}
