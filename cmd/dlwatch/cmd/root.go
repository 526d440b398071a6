// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/black-desk/dlwatch/internal/consts"
	"github.com/black-desk/dlwatch/pkg/dlwatch/config"
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/lib/go/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flags struct {
	CfgPath string
}

var defaultCfgPath string

// app holds what every subcommand needs,
// it is filled once before any subcommand runs.
var app struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

var rootCmd = &cobra.Command{
	Use:   "dlwatch",
	Short: "Wait for files downloaded into a directory",
	Long: `dlwatch watches a download directory.
It ignores downloads still in progress (*.crdownload, *.tmp, *.part)
and reports files once they are complete.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if err == nil {
				return
			}

			err = fmt.Errorf(
				"\n\n%w\n"+consts.CheckDocumentString,
				err,
			)

			return
		}()

		err = rootCmdPreRun()
		return
	},
}

func rootCmdPreRun() (err error) {
	log := logger.Get(consts.AppName)

	var cfg *config.Config
	cfg, err = loadConfig(log)
	if err != nil {
		return
	}

	app.cfg = cfg
	app.log = log
	return
}

func loadConfig(log *zap.SugaredLogger) (ret *config.Config, err error) {
	defer Wrap(&err)

	content, err := os.ReadFile(flags.CfgPath)
	if errors.Is(err, os.ErrNotExist) && flags.CfgPath == defaultCfgPath {
		log.Debugw("Configuration file missing, fallback to default config.",
			"file", flags.CfgPath,
		)

		content = []byte(config.DefaultConfig)
		err = nil
	} else if err != nil {
		log.Errorw("Failed to read configuration from file.",
			"file", flags.CfgPath,
			"error", err,
		)

		Wrap(&err, "read configuration from %s", flags.CfgPath)
		return
	}

	ret, err = config.New(
		config.WithContent(content),
		config.WithLogger(log),
	)
	return
}

func Execute() {
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

		sig := <-sigCh
		cancel(&ErrCancelBySignal{Signal: sig})
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

// cancelledBySignal reports whether ctx was cancelled by Execute
// because a signal was received.
func cancelledBySignal(ctx context.Context) (ret *ErrCancelBySignal, ok bool) {
	ok = errors.As(context.Cause(ctx), &ret)
	return
}

// exitOnSignal clears *err when ctx was cancelled by a signal,
// so that interrupting a command is a clean exit.
func exitOnSignal(ctx context.Context, err *error) {
	if *err == nil {
		return
	}

	sig, ok := cancelledBySignal(ctx)
	if !ok {
		return
	}

	app.log.Infow("Signal received, exiting...",
		"signal", sig.Signal,
	)
	*err = nil
}

func init() {
	cfgDir := os.Getenv("CONFIGURATION_DIRECTORY")
	if cfgDir == "" {
		userCfgDir, err := os.UserConfigDir()
		if err == nil {
			cfgDir = filepath.Join(userCfgDir, consts.AppName)
		}
	}

	defaultCfgPath = filepath.Join(cfgDir, consts.CfgFileName)

	rootCmd.PersistentFlags().StringVarP(
		&flags.CfgPath,
		"config", "c", defaultCfgPath,
		"the configure file to use",
	)
}
