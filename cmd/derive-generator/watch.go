package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watch regenerates on every relevant change under the inputs until ctx is
// cancelled. Generation failures are logged and do not stop the loop.
func (a *app) watch(ctx context.Context, args []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	dirs, err := watchDirs(args)
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}

		a.logger.Debug("watching", zap.String("dir", dir))
	}

	a.regenerate(ctx, args)

	debounce := a.cfg.GetDebounce()

	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("watch stopped")
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !a.relevant(event) {
				continue
			}

			a.logger.Debug("change", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			pending = time.After(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			a.logger.Error("watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			a.regenerate(ctx, args)
		}
	}
}

func (a *app) regenerate(ctx context.Context, args []string) {
	start := time.Now()

	written, err := a.generate(ctx, args)
	if err != nil {
		a.logger.Error("generation failed", zap.Error(err))
		return
	}

	a.logger.Info("generated", zap.Int("files", len(written)), zap.Duration("took", time.Since(start)))
}

// relevant reports whether event may change the generated output.
func (a *app) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	if a.generatedFile(event.Name) {
		return false
	}

	return filepath.Ext(event.Name) == ".go" || isSchemaFile(event.Name)
}

// watchDirs returns the directories holding the inputs. Schema files are
// watched through their directory so editors that replace files on save
// keep being seen; "dir/..." patterns watch every package directory below
// dir.
func watchDirs(args []string) ([]string, error) {
	seen := make(map[string]bool)

	var dirs []string

	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, arg := range args {
		if isSchemaFile(arg) {
			add(filepath.Clean(filepath.Dir(arg)))
			continue
		}

		root, recursive := strings.CutSuffix(arg, "/...")
		if root == "" {
			root = "."
		}

		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("cannot watch %s: only directory patterns can be watched", arg)
		}

		if !recursive {
			add(filepath.Clean(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() {
				return nil
			}

			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
				name == "testdata" || name == "vendor") {
				return filepath.SkipDir
			}

			add(filepath.Clean(path))

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return dirs, nil
}
