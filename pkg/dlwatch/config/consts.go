// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

const (
	DefaultConfig = `
version: 1
poll-interval: 1s
settle-delay: 3s
progress-every: 5
timeout: 30s
`
)
