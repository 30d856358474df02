// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Warm up the search backend",
	Long: `Ping sends the warm-up request the widget sends when the search box gains
focus, ignoring the cooldown, and waits for the answer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newSearchClient(cfg.Widget)
		if err != nil {
			return err
		}

		start := time.Now()
		if err := client.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("warm-up failed: %w", err)
		}
		elapsed := time.Since(start)
		log.Debug("warm-up ping answered", zap.Duration("elapsed", elapsed))
		fmt.Fprintf(cmd.OutOrStdout(), "backend is warm (%s)\n", elapsed.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
