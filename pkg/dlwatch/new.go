// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dlwatch

import (
	"io/fs"
	"os"
	"time"

	"github.com/black-desk/dlwatch/pkg/dlwatch/config"
	. "github.com/black-desk/lib/go/errwrap"
	"go.uber.org/zap"
)

// Watcher observes download directories.
// It never writes to them and keeps no state between calls.
type Watcher struct {
	cfg *config.Config
	log *zap.SugaredLogger

	birthTime func(path string) (time.Time, error)
	readDir   func(dir string) ([]fs.DirEntry, error)
}

//go:generate go run github.com/rjeczalik/interfaces/cmd/interfacer@v0.3.0 -for github.com/black-desk/dlwatch/pkg/dlwatch.Watcher -as interfaces.Watcher -o ../interfaces/watcher.go

type Opt func(w *Watcher) (ret *Watcher, err error)

func New(opts ...Opt) (ret *Watcher, err error) {
	defer Wrap(&err, "create download watcher")

	w := &Watcher{
		birthTime: birthTime,
		readDir:   os.ReadDir,
	}

	for i := range opts {
		w, err = opts[i](w)
		if err != nil {
			return
		}
	}

	if w.log == nil {
		w.log = zap.NewNop().Sugar()
	}

	if w.cfg == nil {
		w.cfg, err = config.New(config.WithLogger(w.log))
		if err != nil {
			return
		}
	}

	err = w.cfg.Check()
	if err != nil {
		return
	}

	ret = w

	w.log.Debugw("Create a download watcher.",
		"configuration", w.cfg,
	)

	return
}

func WithConfig(cfg *config.Config) Opt {
	return func(w *Watcher) (ret *Watcher, err error) {
		w.cfg = cfg
		ret = w
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(w *Watcher) (ret *Watcher, err error) {
		w.log = log
		ret = w
		return
	}
}
