// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dlwatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/black-desk/dlwatch/pkg/types"
)

// listStable returns the names of regular files in dir
// which are not in-progress downloads.
func (w *Watcher) listStable(dir string) (ret types.Snapshot, err error) {
	var entries []fs.DirEntry
	entries, err = w.readDir(dir)
	if errors.Is(err, fs.ErrPermission) {
		err = fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		return
	}
	if err != nil {
		return
	}

	ret = types.NewSnapshot()
	for i := range entries {
		name := entries[i].Name()
		if IsTemporary(name) {
			continue
		}

		if !w.isRegularFile(dir, entries[i]) {
			continue
		}

		ret[name] = struct{}{}
	}

	return
}

func (w *Watcher) isRegularFile(dir string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}

	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}

	path := filepath.Join(dir, entry.Name())
	info, err := os.Stat(path)
	if err != nil {
		w.log.Debugw("Skip broken symlink.",
			"path", path,
			"error", err,
		)
		return false
	}

	return info.Mode().IsRegular()
}

// selectLatest returns the path of the file in names
// with the newest creation time.
// Which file wins a tie is undefined.
func (w *Watcher) selectLatest(dir string, names []string) (ret string, ok bool) {
	var latest time.Time

	for i := range names {
		if IsTemporary(names[i]) {
			continue
		}

		path := filepath.Join(dir, names[i])

		t, err := w.birthTime(path)
		if err != nil {
			// NOTE: Browsers rename and delete files in the download
			// directory all the time, so this is expected to be transient.
			w.log.Warnw("Failed to get creation time, no file selected.",
				"path", path,
				"error", err,
			)
			return "", false
		}

		if ret == "" || t.After(latest) {
			ret = path
			latest = t
		}
	}

	ok = ret != ""
	return
}

func (w *Watcher) pollNewFile(dir, previous string) types.PollResult {
	path, found, err := w.LatestFile(dir)
	if err != nil {
		return types.Fatal(err)
	}

	if !found {
		return types.Empty(nil)
	}

	if previous != "" && path == previous {
		return types.Empty(nil)
	}

	return types.Found(path)
}

func (w *Watcher) pollDownload(
	ctx context.Context, dir string, before types.Snapshot, polls int,
) types.PollResult {
	current, err := w.listStable(dir)
	if err != nil {
		w.log.Warnw("Failed to list directory, retry later.",
			"directory", dir,
			"error", err,
		)
		return types.Empty(err)
	}

	added := current.Diff(before)

	if polls%w.cfg.ProgressEvery == 0 {
		w.logProgress(dir, added, polls)
	}

	if len(added) == 0 {
		return types.Empty(nil)
	}

	w.log.Debugw("New files visible, waiting for them to settle.",
		"directory", dir,
		"files", added,
		"settle delay", w.cfg.SettleDelay,
	)

	err = sleep(ctx, w.cfg.SettleDelay)
	if err != nil {
		return types.Fatal(err)
	}

	path, ok := w.selectLatest(dir, added)
	if !ok {
		return types.Empty(nil)
	}

	return types.Found(path)
}

func (w *Watcher) recheckDownload(dir string, before types.Snapshot) types.PollResult {
	current, err := w.listStable(dir)
	if err != nil {
		w.log.Warnw("Failed to list directory after timeout.",
			"directory", dir,
			"error", err,
		)
		return types.Empty(err)
	}

	path, ok := w.selectLatest(dir, current.Diff(before))
	if !ok {
		return types.Empty(nil)
	}

	return types.Found(path)
}

func (w *Watcher) logProgress(dir string, added []string, polls int) {
	if len(added) == 0 {
		w.log.Infow("Still waiting for download.",
			"directory", dir,
			"polls", polls,
		)
		return
	}

	w.log.Infow("New files visible.",
		"directory", dir,
		"files", added,
		"polls", polls,
	)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
