// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"os"

	"github.com/black-desk/dlwatch/pkg/interfaces"
	"github.com/black-desk/dlwatch/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var snapshotFlags struct {
	Output string
}

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot DIR",
	Short: "Record the files in a directory",
	Long: `Write the names of the complete downloads in DIR as YAML.
Pass the result to "dlwatch download --before" after triggering a download.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCmdRun(cmd, args[0])
	},
}

func snapshotCmdRun(cmd *cobra.Command, dir string) (err error) {
	defer Wrap(&err)

	var w interfaces.Watcher
	w, err = injectedWatcher(app.cfg, app.log)
	if err != nil {
		return
	}

	var snapshot types.Snapshot
	snapshot, err = w.Snapshot(dir)
	if err != nil {
		return
	}

	var content []byte
	content, err = yaml.Marshal(snapshot)
	if err != nil {
		return
	}

	if snapshotFlags.Output == "" || snapshotFlags.Output == "-" {
		_, err = cmd.OutOrStdout().Write(content)
		return
	}

	err = os.WriteFile(snapshotFlags.Output, content, 0o644)
	if err != nil {
		Wrap(&err, "write snapshot to %s", snapshotFlags.Output)
		return
	}

	return
}

func readSnapshot(path string) (ret types.Snapshot, err error) {
	defer Wrap(&err, "read snapshot from %s", path)

	var content []byte
	content, err = os.ReadFile(path)
	if err != nil {
		return
	}

	err = yaml.Unmarshal(content, &ret)
	if err != nil {
		return
	}

	if ret == nil {
		ret = types.NewSnapshot()
	}

	return
}

func init() {
	snapshotCmd.Flags().StringVarP(
		&snapshotFlags.Output,
		"output", "o", "",
		"the file to write the snapshot to, defaults to stdout",
	)
	rootCmd.AddCommand(snapshotCmd)
}
