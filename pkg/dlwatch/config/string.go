// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
)

func (c *Config) String() string {
	return fmt.Sprintf(
		"config [ poll every %s | settle %s | progress every %d polls | timeout %s ]",
		c.PollInterval, c.SettleDelay, c.ProgressEvery, c.Timeout,
	)
}
