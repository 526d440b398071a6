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
	"syscall"
	"time"

	"github.com/black-desk/dlwatch/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
)

// Download is a file found by WaitForDownload.
type Download struct {
	Path string
	// Late is set when the file only showed up
	// in the final check after the timeout.
	Late bool
}

// ValidateDirectory checks that dir names an existing directory.
// It fails with ErrDirectoryNotFound, ErrNotADirectory
// or ErrPermissionDenied.
func ValidateDirectory(dir string) (err error) {
	defer Wrap(&err, "validate directory %s", dir)

	var info os.FileInfo
	info, err = os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		err = ErrDirectoryNotFound
		return
	}
	if errors.Is(err, fs.ErrPermission) {
		err = fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		return
	}
	if err != nil {
		return
	}

	if !info.IsDir() {
		err = ErrNotADirectory
		return
	}

	return
}

// LatestFile returns the stable file in dir with the newest creation time.
// found is false when dir holds no stable file,
// or when the creation time of some file cannot be read.
func (w *Watcher) LatestFile(dir string) (ret string, found bool, err error) {
	defer Wrap(&err, "get latest file in %s", dir)

	err = ValidateDirectory(dir)
	if err != nil {
		return
	}

	var names types.Snapshot
	names, err = w.listStable(dir)
	if errors.Is(err, ErrPermissionDenied) {
		return
	}
	if err != nil {
		w.log.Errorw("Unexpected error while listing directory.",
			"directory", dir,
			"error", err,
		)
		err = nil
		return
	}

	ret, found = w.selectLatest(dir, names.Names())
	return
}

// Snapshot returns the names of the stable files in dir.
// Take one before triggering a download and pass it to WaitForDownload.
func (w *Watcher) Snapshot(dir string) (ret types.Snapshot, err error) {
	defer Wrap(&err, "take snapshot of %s", dir)

	err = ValidateDirectory(dir)
	if err != nil {
		return
	}

	ret, err = w.listStable(dir)
	if err != nil {
		ret = nil
		return
	}

	w.log.Debugw("Snapshot taken.",
		"directory", dir,
		"files", len(ret),
	)

	return
}

// WaitForNewFile polls dir until a stable file shows up.
// With an empty previous, any stable file qualifies.
// Otherwise the latest stable file must differ from previous.
//
// A second download finishing within one poll interval
// cannot be told apart from the first one.
func (w *Watcher) WaitForNewFile(
	ctx context.Context, dir string, timeout time.Duration, previous string,
) (
	ret string, err error,
) {
	defer Wrap(&err, "wait for new file in %s", dir)

	err = ValidateDirectory(dir)
	if err != nil {
		return
	}

	if previous != "" {
		previous = filepath.Clean(previous)
	}

	start := time.Now()
	deadline := start.Add(timeout)

	w.log.Debugw("Waiting for new file.",
		"directory", dir,
		"previous", previous,
		"timeout", timeout,
	)

	for time.Now().Before(deadline) {
		result := w.pollNewFile(dir, previous)

		switch result.Outcome {
		case types.PollOutcomeFound:
			w.log.Infow("New file found.",
				"path", result.Path,
				"elapsed", time.Since(start),
			)
			ret = result.Path
			return
		case types.PollOutcomeFatal:
			err = result.Err
			return
		}

		err = sleep(ctx, w.cfg.PollInterval)
		if err != nil {
			return
		}
	}

	err = &ErrTimeout{Directory: dir, Elapsed: time.Since(start)}
	return
}

// WaitForDownload polls dir until a stable file not in before shows up,
// waits for the settle delay, then returns the newest of the new files.
// Listing errors while polling are logged and retried.
// After the timeout, dir is checked one last time;
// a file found then is returned with Late set.
func (w *Watcher) WaitForDownload(
	ctx context.Context, dir string, before types.Snapshot, timeout time.Duration,
) (
	ret Download, err error,
) {
	defer Wrap(&err, "wait for download in %s", dir)

	err = ValidateDirectory(dir)
	if err != nil {
		return
	}

	start := time.Now()
	deadline := start.Add(timeout)

	w.log.Debugw("Waiting for download.",
		"directory", dir,
		"known files", len(before),
		"timeout", timeout,
	)

	var result types.PollResult

	for polls := 1; time.Now().Before(deadline); polls++ {
		result = w.pollDownload(ctx, dir, before, polls)

		switch result.Outcome {
		case types.PollOutcomeFound:
			w.log.Infow("Download completed.",
				"path", result.Path,
				"elapsed", time.Since(start),
			)
			ret.Path = result.Path
			return
		case types.PollOutcomeFatal:
			err = result.Err
			return
		}

		err = sleep(ctx, w.cfg.PollInterval)
		if err != nil {
			return
		}
	}

	result = w.recheckDownload(dir, before)
	if result.Outcome == types.PollOutcomeFound {
		w.log.Warnw("Download found after timeout.",
			"path", result.Path,
			"elapsed", time.Since(start),
		)
		ret.Path = result.Path
		ret.Late = true
		return
	}

	err = &ErrTimeout{Directory: dir, Elapsed: time.Since(start)}
	return
}
