// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package fetch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileCounter reports how many files a clone has materialized so far.
// It only animates progress while git populates the scratch directory;
// counts may lag or miss bursts and nothing depends on them.
type FileCounter struct {
	root    string
	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc

	mu    sync.Mutex
	count int

	// OnCount observes each new total. May be nil.
	OnCount func(n int)
}

// NewFileCounter creates a counter rooted at dir. Call Watch to start it.
func NewFileCounter(dir string) (*FileCounter, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &FileCounter{
		root:    dir,
		watcher: watcher,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Watch starts counting file creations under the root.
func (fc *FileCounter) Watch() error {
	if err := fc.addRecursive(fc.root); err != nil {
		return err
	}

	go fc.processEvents()

	return nil
}

// Count returns the files seen so far.
func (fc *FileCounter) Count() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.count
}

// Close stops watching and releases resources.
func (fc *FileCounter) Close() error {
	fc.cancel()
	if fc.watcher != nil {
		return fc.watcher.Close()
	}
	return nil
}

// addRecursive adds a directory and all its subdirectories to the watch list.
func (fc *FileCounter) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		if !info.IsDir() {
			return nil
		}

		if shouldIgnore(path) {
			return filepath.SkipDir
		}

		// Non-fatal, continue
		if err := fc.watcher.Add(path); err != nil {
			return nil
		}

		return nil
	})
}

// processEvents counts Create events until the counter is closed.
func (fc *FileCounter) processEvents() {
	// The counter is cosmetic; a panic here must not take the run down
	defer func() {
		if r := recover(); r != nil {
			_ = r
		}
	}()

	for {
		select {
		case <-fc.ctx.Done():
			return

		case event, ok := <-fc.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if shouldIgnore(event.Name) {
				continue
			}

			info, err := os.Stat(event.Name)
			if err != nil {
				continue // Gone already
			}

			if info.IsDir() {
				// Git creates nested directories as it unpacks; follow them
				if err := fc.addRecursive(event.Name); err != nil {
					time.Sleep(100 * time.Millisecond)
					fc.addRecursive(event.Name)
				}
				continue
			}

			if info.Mode().IsRegular() {
				fc.mu.Lock()
				fc.count++
				n := fc.count
				fc.mu.Unlock()

				if fc.OnCount != nil {
					fc.OnCount(n)
				}
			}

		case err, ok := <-fc.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal
			_ = err
		}
	}
}

// shouldIgnore filters git's own bookkeeping out of the count.
func shouldIgnore(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".git" {
			return true
		}
	}
	return false
}
