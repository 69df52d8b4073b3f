// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command socialctl drives the state client against a running API.
//
// The session and theme persist between invocations in the JSON state file,
// or in Redis when SOCIAL_STATE_REDIS_URL is set.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-social/internal/client"
	"github.com/taibuivan/yomira-social/internal/platform/config"
	"github.com/taibuivan/yomira-social/internal/platform/constants"
)

// app is opened before every command and closed after it.
var app *client.Client

var rootCmd = &cobra.Command{
	Use:           "socialctl [command]",
	Short:         "Command-line client for the Yomira Social API",
	Version:       constants.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadClient()
		if err != nil {
			return err
		}

		level := slog.LevelWarn
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		app, err = client.Open(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}

		app.Restore(cmd.Context())
		return nil
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		return app.Close()
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}
