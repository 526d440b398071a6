// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"time"

	"github.com/black-desk/dlwatch/pkg/interfaces"
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/spf13/cobra"
)

var waitFlags struct {
	Previous string
	Timeout  time.Duration
}

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait DIR",
	Short: "Wait for a new file",
	Long: `Wait until DIR holds a complete download and print its path.
With --previous, wait until the latest download is another file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return waitCmdRun(cmd, args[0])
	},
}

func waitCmdRun(cmd *cobra.Command, dir string) (err error) {
	defer Wrap(&err)
	defer exitOnSignal(cmd.Context(), &err)

	timeout := waitFlags.Timeout
	if timeout == 0 {
		timeout = app.cfg.Timeout
	}

	var w interfaces.Watcher
	w, err = injectedWatcher(app.cfg, app.log)
	if err != nil {
		return
	}

	var path string
	path, err = w.WaitForNewFile(cmd.Context(), dir, timeout, waitFlags.Previous)
	if err != nil {
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return
}

func init() {
	waitCmd.Flags().StringVarP(
		&waitFlags.Previous,
		"previous", "p", "",
		"the latest file known before waiting",
	)
	waitCmd.Flags().DurationVarP(
		&waitFlags.Timeout,
		"timeout", "t", 0,
		"how long to wait, defaults to the configured timeout",
	)
	rootCmd.AddCommand(waitCmd)
}
