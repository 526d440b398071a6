// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dlwatch

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrDirectoryNotFound = errors.New("directory not found.")
	ErrNotADirectory     = errors.New("not a directory.")
	ErrPermissionDenied  = errors.New("permission denied.")
)

// ErrTimeout is returned when the wait budget is exhausted
// without a qualifying file showing up.
type ErrTimeout struct {
	Directory string
	Elapsed   time.Duration
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf(
		"No new file found in %s within %s.",
		e.Directory, e.Elapsed,
	)
}
