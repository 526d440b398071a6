// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !linux

package dlwatch

import (
	"os"
	"time"
)

func birthTime(path string) (ret time.Time, err error) {
	var info os.FileInfo
	info, err = os.Stat(path)
	if err != nil {
		return
	}

	ret = info.ModTime()
	return
}
