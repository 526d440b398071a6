// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build linux

package dlwatch

import (
	"errors"
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime returns the creation time of path.
// statx reports it on most filesystems,
// the inode change time is used when it does not.
func birthTime(path string) (ret time.Time, err error) {
	var stx unix.Statx_t
	err = unix.Statx(
		unix.AT_FDCWD, path, 0,
		unix.STATX_BTIME|unix.STATX_CTIME, &stx,
	)
	if errors.Is(err, unix.ENOSYS) {
		return changeTime(path)
	}
	if err != nil {
		err = &fs.PathError{Op: "statx", Path: path, Err: err}
		return
	}

	ts := stx.Ctime
	if stx.Mask&unix.STATX_BTIME != 0 {
		ts = stx.Btime
	}

	ret = time.Unix(ts.Sec, int64(ts.Nsec))
	return
}

func changeTime(path string) (ret time.Time, err error) {
	var st unix.Stat_t
	err = unix.Stat(path, &st)
	if err != nil {
		err = &fs.PathError{Op: "stat", Path: path, Err: err}
		return
	}

	ret = time.Unix(st.Ctim.Unix())
	return
}
