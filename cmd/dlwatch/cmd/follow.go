// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"fmt"

	"github.com/black-desk/dlwatch/pkg/interfaces"
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

// followCmd represents the follow command
var followCmd = &cobra.Command{
	Use:   "follow DIR",
	Short: "Print downloads as they complete",
	Long: `Print one line per file completed in or removed from DIR,
until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return followCmdRun(cmd, args[0])
	},
}

func followCmdRun(cmd *cobra.Command, dir string) (err error) {
	defer Wrap(&err)
	defer exitOnSignal(cmd.Context(), &err)

	var m interfaces.DownloadMonitor
	m, err = injectedMonitor(downloadDirectory(dir), app.log)
	if err != nil {
		return
	}

	p := pool.New().
		WithContext(cmd.Context()).
		WithCancelOnError()

	p.Go(m.Run)
	p.Go(func(ctx context.Context) error {
		for event := range m.Events() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", event.EventType, event.Path)
		}
		return nil
	})

	err = p.Wait()
	return
}

func init() {
	rootCmd.AddCommand(followCmd)
}
