// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dlmon

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/black-desk/dlwatch/pkg/dlwatch"
	"github.com/black-desk/dlwatch/pkg/types"
)

// classify turns a raw notification into a download event.
// The path is inspected again instead of trusting the event kind,
// as a browser renames its temporary file right after creating it.
func (m *DownloadMonitor) classify(path string) (ret types.DownloadEvent, ok bool) {
	if dlwatch.IsTemporary(filepath.Base(path)) {
		return
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		ret = types.DownloadEvent{
			Path:      path,
			EventType: types.DownloadEventTypeRemoved,
		}
		ok = true
		return
	}
	if err != nil {
		m.log.Warnw("Failed to inspect file, event dropped.",
			"path", path,
			"error", err,
		)
		return
	}

	if !info.Mode().IsRegular() {
		return
	}

	ret = types.DownloadEvent{
		Path:      path,
		EventType: types.DownloadEventTypeCompleted,
	}
	ok = true
	return
}

func (m *DownloadMonitor) send(ctx context.Context, event *types.DownloadEvent) (err error) {
	m.log.Debugw("New download event.",
		"event", event,
	)

	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	case m.eventsOut <- *event:
		m.log.Debugw("Download event sent.",
			"path", event.Path,
		)
	}

	return
}
