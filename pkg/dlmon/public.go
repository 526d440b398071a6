// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dlmon

import (
	"context"

	"github.com/black-desk/dlwatch/pkg/dlwatch"
	"github.com/black-desk/dlwatch/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/rjeczalik/notify"
)

func (m *DownloadMonitor) Events() <-chan types.DownloadEvent {
	return m.eventsOut
}

// Run watches the directory until ctx is done.
// The channel returned by Events is closed when Run returns.
func (m *DownloadMonitor) Run(ctx context.Context) (err error) {
	defer Wrap(&err, "running download monitor")
	defer close(m.eventsOut)

	err = dlwatch.ValidateDirectory(m.dir)
	if err != nil {
		return
	}

	err = notify.Watch(m.dir, m.eventsIn, notify.Create, notify.Rename, notify.Remove)
	if err != nil {
		return
	}
	defer notify.Stop(m.eventsIn)

	m.log.Infow("Watching download directory.",
		"directory", m.dir,
	)

	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case event := <-m.eventsIn:
			m.log.Debugw("Filesystem event received.",
				"event", event.Event(),
				"path", event.Path(),
			)

			var (
				download types.DownloadEvent
				ok       bool
			)
			download, ok = m.classify(event.Path())
			if !ok {
				continue
			}

			err = m.send(ctx, &download)
			if err != nil {
				return
			}
		}
	}
}
