// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"time"

	"go.uber.org/zap"
)

// Config holds the polling knobs of a download watcher.
// These values are heuristics tied to how browsers write downloads,
// tune them for integration tests rather than in production.
type Config struct {
	Version string `yaml:"version" validate:"required,eq=1"`

	// PollInterval is the sleep between two listings of a directory.
	PollInterval time.Duration `yaml:"poll-interval" validate:"required,min=1ms"`
	// SettleDelay is the extra wait after a new file is first seen,
	// so that a download still being renamed from its temporary name
	// has time to finish.
	SettleDelay time.Duration `yaml:"settle-delay" validate:"gte=0"`
	// ProgressEvery is how many polling iterations
	// are between two progress log lines.
	ProgressEvery int `yaml:"progress-every" validate:"required,min=1"`
	// Timeout is the default wait budget used by the command line tool.
	Timeout time.Duration `yaml:"timeout" validate:"required,min=1ms"`

	log *zap.SugaredLogger `yaml:"-"`
	raw []byte
}
