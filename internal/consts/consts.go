// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package consts

const (
	CheckDocumentString = `
Go to check
1. documentation https://pkg.go.dev/github.com/black-desk/dlwatch/cmd/dlwatch
2. wiki https://github.com/black-desk/dlwatch/wiki
for some help.
`

	CfgFileName = "config.yaml"
	AppName     = "dlwatch"
)
