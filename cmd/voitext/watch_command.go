package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/voitext/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Export every new audio or video file dropped into a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := cfg.Paths.Watch
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", dir, err)
			}

			p, err := ctx.pipeline()
			if err != nil {
				return err
			}
			log := ctx.logger()

			handler := func(hctx context.Context, path string) error {
				_, err := p.Export(hctx, path, flags.options())
				return err
			}

			w, err := watcher.New(dir, handler, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			log.Info(cmd.Context(), "Output: %s", cfg.Paths.Output)
			log.Info(cmd.Context(), "Press Ctrl+C to stop")

			if err := w.Start(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
