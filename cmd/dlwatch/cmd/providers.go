// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"github.com/black-desk/dlwatch/pkg/dlmon"
	"github.com/black-desk/dlwatch/pkg/dlwatch"
	"github.com/black-desk/dlwatch/pkg/dlwatch/config"
	"github.com/black-desk/dlwatch/pkg/interfaces"
	"github.com/google/wire"
	"go.uber.org/zap"
)

type downloadDirectory string

func provideWatcher(
	cfg *config.Config, logger *zap.SugaredLogger,
) (
	ret interfaces.Watcher, err error,
) {
	var w *dlwatch.Watcher
	w, err = dlwatch.New(
		dlwatch.WithConfig(cfg),
		dlwatch.WithLogger(logger),
	)
	if err != nil {
		return
	}

	ret = w
	return
}

func provideMonitor(
	dir downloadDirectory, logger *zap.SugaredLogger,
) (
	ret interfaces.DownloadMonitor, err error,
) {
	var m *dlmon.DownloadMonitor
	m, err = dlmon.New(
		dlmon.WithDirectory(string(dir)),
		dlmon.WithLogger(logger),
	)
	if err != nil {
		return
	}

	ret = m
	return
}

var set = wire.NewSet(
	provideMonitor,
	provideWatcher,
)
