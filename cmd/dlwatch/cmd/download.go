// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/black-desk/dlwatch/pkg/dlwatch"
	"github.com/black-desk/dlwatch/pkg/interfaces"
	"github.com/black-desk/dlwatch/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

var downloadFlags struct {
	Before  string
	Timeout time.Duration
}

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download DIR [-- COMMAND [ARG...]]",
	Short: "Wait for a download to complete",
	Long: `Wait until a file which was not in DIR before shows up, and print its path.

"Before" is read from --before, a file written by "dlwatch snapshot".
Without --before, DIR is recorded when this command starts.
When COMMAND is given, it is run after recording DIR,
while waiting for the file it downloads.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		dir := args[0]

		var command []string
		if len(args) > 1 {
			if cmd.ArgsLenAtDash() != 1 {
				err = ErrUnexpectedArgs
				return
			}
			command = args[1:]
		}

		if downloadFlags.Before != "" && len(command) != 0 {
			err = ErrBeforeWithCommand
			return
		}

		return downloadCmdRun(cmd, dir, command)
	},
}

func downloadCmdRun(cmd *cobra.Command, dir string, command []string) (err error) {
	defer Wrap(&err)
	defer exitOnSignal(cmd.Context(), &err)

	timeout := downloadFlags.Timeout
	if timeout == 0 {
		timeout = app.cfg.Timeout
	}

	var w interfaces.Watcher
	w, err = injectedWatcher(app.cfg, app.log)
	if err != nil {
		return
	}

	var before types.Snapshot
	if downloadFlags.Before != "" {
		before, err = readSnapshot(downloadFlags.Before)
	} else {
		before, err = w.Snapshot(dir)
	}
	if err != nil {
		return
	}

	var result dlwatch.Download

	p := pool.New().
		WithContext(cmd.Context()).
		WithCancelOnError().
		WithFirstError()

	if len(command) != 0 {
		p.Go(func(ctx context.Context) (err error) {
			defer Wrap(&err, "run `%s`", strings.Join(command, " "))

			app.log.Debugw("Run command to trigger download.",
				"command", command,
			)

			c := exec.CommandContext(ctx, command[0], command[1:]...)
			// NOTE: Keep stdout for the path of the download.
			c.Stdout = cmd.ErrOrStderr()
			c.Stderr = cmd.ErrOrStderr()

			return c.Run()
		})
	}

	p.Go(func(ctx context.Context) (err error) {
		result, err = w.WaitForDownload(ctx, dir, before, timeout)
		return
	})

	err = p.Wait()
	if err != nil {
		return
	}

	if result.Late {
		app.log.Warnw("Download completed after timeout.",
			"path", result.Path,
			"timeout", timeout,
		)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Path)
	return
}

func init() {
	downloadCmd.Flags().StringVarP(
		&downloadFlags.Before,
		"before", "b", "",
		"the snapshot taken before the download started",
	)
	downloadCmd.Flags().DurationVarP(
		&downloadFlags.Timeout,
		"timeout", "t", 0,
		"how long to wait, defaults to the configured timeout",
	)
	rootCmd.AddCommand(downloadCmd)
}
