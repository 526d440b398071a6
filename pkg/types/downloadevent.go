// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package types

type DownloadEventType uint8

const (
	DownloadEventTypeCompleted DownloadEventType = iota // completed
	DownloadEventTypeRemoved                            // removed
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=DownloadEventType -linecomment

// DownloadEvent reports a stable file that appeared in
// or disappeared from a watched download directory.
type DownloadEvent struct {
	Path      string
	EventType DownloadEventType
}
