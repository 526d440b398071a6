// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dlwatch

import "strings"

// Browsers write in-progress downloads under these suffixes
// and rename them when done.
var temporarySuffixes = [...]string{".crdownload", ".tmp", ".part"}

// IsTemporary reports whether name is an in-progress download.
// The match is an exact, case-sensitive suffix match.
func IsTemporary(name string) bool {
	for i := range temporarySuffixes {
		if strings.HasSuffix(name, temporarySuffixes[i]) {
			return true
		}
	}
	return false
}
