// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dlmon

import "errors"

var (
	ErrDirectoryMissing = errors.New("download directory is missing.")
	ErrLoggerMissing    = errors.New("logger is missing.")
)
