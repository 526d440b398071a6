// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Check validates c.
// Configurations built by hand rather than by New must pass it before use.
func (c *Config) Check() (err error) {
	defer Wrap(&err, "check configuration")

	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}

	var validator = validator.New()
	err = validator.Struct(c)
	if err != nil {
		err = fmt.Errorf("validator: %w", err)
		return
	}

	if c.SettleDelay >= c.Timeout {
		c.log.Warnw(
			"Settle delay is not shorter than timeout, downloads will mostly be reported late.",
			"settle delay", c.SettleDelay,
			"timeout", c.Timeout,
		)
	}

	if c.PollInterval > c.Timeout {
		c.log.Warnw(
			"Poll interval is longer than timeout, directory will be listed only once before the final check.",
			"poll interval", c.PollInterval,
			"timeout", c.Timeout,
		)
	}

	return
}
