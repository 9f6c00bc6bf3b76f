// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package generate

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"grimm.is/docgen/internal/errors"
	"grimm.is/docgen/internal/xref"
)

// DefaultDebounce is how long Watch waits for a burst of events to settle.
const DefaultDebounce = 200 * time.Millisecond

// Watch builds once, then rebuilds whenever a definitions export, the CLI
// spec or a source document changes, until ctx is cancelled. Every build
// result is passed to onBuild. The cross-reference context is reused and
// cleared before each rebuild, so a Result's Xref is only valid until
// onBuild returns.
func (b *Builder) Watch(ctx context.Context, debounce time.Duration, onBuild func(*Result, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to create file watcher")
	}
	defer w.Close()

	dirs, err := b.watchDirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return errors.Wrapf(err, errors.KindInternal, "failed to watch %s", dir)
		}
	}
	b.logger.Info("watching for changes", "dirs", len(dirs))

	x := xref.NewContext(b.cfg.RootNamespace)
	rebuild := func() {
		x.Reset()
		onBuild(b.build(ctx, x))
	}
	rebuild()

	ignored := b.outputDirs()
	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if withinAny(ignored, ev.Name) {
				continue
			}
			b.logger.Debug("change detected", "op", ev.Op.String(), "file", ev.Name)
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			b.logger.Error("file watcher error", "error", err)
		case <-timer.C:
			rebuild()
		}
	}
}

// watchDirs lists the directories holding build inputs. fsnotify watches
// are not recursive, so every directory below the sources root is added.
func (b *Builder) watchDirs() ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, ns := range b.cfg.Namespaces {
		add(filepath.Dir(b.cfg.Resolve(ns.Definitions)))
	}
	if b.cfg.CLI != nil {
		add(filepath.Dir(b.cfg.Resolve(b.cfg.CLI.Spec)))
	}
	if src := b.cfg.Sources; src != nil {
		ignored := b.outputDirs()
		err := filepath.WalkDir(b.cfg.Resolve(src.Root), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if withinAny(ignored, path) {
				return fs.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.KindInternal, "failed to walk sources")
		}
	}
	return dirs, nil
}

// outputDirs are the directories a build writes to.
func (b *Builder) outputDirs() []string {
	dirs := []string{b.outputDir()}
	if b.cfg.Sources != nil {
		dirs = append(dirs, b.cfg.SourcesOutputDir())
	}
	return dirs
}

func withinAny(dirs []string, path string) bool {
	for _, dir := range dirs {
		if within(dir, path) {
			return true
		}
	}
	return false
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
