// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dlmon

import (
	"github.com/black-desk/dlwatch/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/rjeczalik/notify"
	"go.uber.org/zap"
)

// DownloadMonitor streams files that finish downloading into a directory.
type DownloadMonitor struct {
	eventsOut chan types.DownloadEvent
	eventsIn  chan notify.EventInfo
	dir       string
	log       *zap.SugaredLogger
}

//go:generate go run github.com/rjeczalik/interfaces/cmd/interfacer@v0.3.0 -for github.com/black-desk/dlwatch/pkg/dlmon.DownloadMonitor -as interfaces.DownloadMonitor -o ../interfaces/dlmon.go

func New(opts ...Opt) (ret *DownloadMonitor, err error) {
	defer Wrap(&err, "create download monitor")

	m := &DownloadMonitor{}

	m.eventsOut = make(chan types.DownloadEvent)

	// FIXME:
	// github.com/rjeczalik/notify drop events if receiver is too slow.
	// https://github.com/rjeczalik/notify/issues/85
	// https://github.com/rjeczalik/notify/issues/98
	m.eventsIn = make(chan notify.EventInfo, 20)

	for i := range opts {
		m, err = opts[i](m)
		if err != nil {
			return
		}
	}

	if m.log == nil {
		m.log = zap.NewNop().Sugar()
	}

	if m.dir == "" {
		err = ErrDirectoryMissing
		return
	}

	ret = m

	m.log.Debugw("Create a download monitor.",
		"directory", m.dir,
	)

	return
}

type Opt func(m *DownloadMonitor) (ret *DownloadMonitor, err error)

func WithDirectory(dir string) Opt {
	return func(m *DownloadMonitor) (ret *DownloadMonitor, err error) {
		if dir == "" {
			err = ErrDirectoryMissing
			return
		}

		m.dir = dir
		ret = m
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(m *DownloadMonitor) (ret *DownloadMonitor, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		m.log = log
		ret = m
		return
	}
}
