// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"os"
)

var (
	ErrNoFileFound       = errors.New("no file found.")
	ErrBeforeWithCommand = errors.New("--before cannot be used together with a command.")
	ErrUnexpectedArgs    = errors.New("unexpected arguments, separate the command with `--`.")
)

type ErrCancelBySignal struct {
	os.Signal
}

func (e *ErrCancelBySignal) Error() string {
	return fmt.Sprintf("Cancelled by signal (%v).", e.Signal)
}
