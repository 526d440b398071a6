// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"

	"github.com/black-desk/dlwatch/pkg/interfaces"
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/spf13/cobra"
)

// latestCmd represents the latest command
var latestCmd = &cobra.Command{
	Use:   "latest DIR",
	Short: "Print the latest downloaded file",
	Long: `Print the most recently created file in DIR.
Downloads still in progress are ignored.
Exit with an error when DIR holds no complete download.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return latestCmdRun(cmd, args[0])
	},
}

func latestCmdRun(cmd *cobra.Command, dir string) (err error) {
	defer Wrap(&err)

	var w interfaces.Watcher
	w, err = injectedWatcher(app.cfg, app.log)
	if err != nil {
		return
	}

	path, found, err := w.LatestFile(dir)
	if err != nil {
		return
	}

	if !found {
		err = ErrNoFileFound
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return
}

func init() {
	rootCmd.AddCommand(latestCmd)
}
