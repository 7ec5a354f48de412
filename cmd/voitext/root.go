package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/voitext/internal/media"
	"github.com/nguyentantai21042004/voitext/internal/pipeline"
)

const version = "0.2.0"

// runFlags mirror the per-run knobs. Zero values defer to the config file.
type runFlags struct {
	language     string
	fontSize     int
	number       int
	minSilenceMs int
	mute         bool
	bgColor      string
	data         bool
}

func (f *runFlags) options() pipeline.Options {
	return pipeline.Options{
		Language:        f.language,
		FontSize:        f.fontSize,
		MinSilenceMs:    f.minSilenceMs,
		Mute:            f.mute,
		BackgroundColor: f.bgColor,
		Number:          f.number,
	}
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.language, "lang", "l", "", `Speech language tag (default "id-ID")`)
	cmd.Flags().IntVarP(&f.fontSize, "fontsize", "f", 0, "Caption font size (default 48)")
	cmd.Flags().IntVarP(&f.number, "number", "n", 0, "1-based manifest entry to export, 0 exports all")
	cmd.Flags().IntVarP(&f.minSilenceMs, "min-silence-len", "s", 0, "Minimum silence in ms used to split (default 500)")
	cmd.Flags().BoolVarP(&f.mute, "mute", "m", false, "Export videos without sound")
	cmd.Flags().StringVarP(&f.bgColor, "bg-color", "b", "", `Background color (default "green")`)
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags runFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "voitext [flags] <file>",
		Short:         "Turn spoken audio or video into caption video clips",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runExport(cmd, ctx, args[0], &flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (default ./config.yaml when present)")
	flags.register(rootCmd)
	rootCmd.Flags().BoolVarP(&flags.data, "data", "d", false, "Re-export from a manifest (.yaml)")

	rootCmd.AddCommand(newSplitCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newTranscriptCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))

	return rootCmd
}

// runExport dispatches on the input's media kind: audio and video start a
// fresh export, a manifest with --data replays it.
func runExport(cmd *cobra.Command, ctx *commandContext, path string, flags *runFlags) error {
	kind, err := media.KindOf(path)
	if err != nil {
		return err
	}
	if err := fileExists(path); err != nil {
		return err
	}

	p, err := ctx.pipeline()
	if err != nil {
		return err
	}

	switch {
	case kind.IsExportable():
		res, err := p.Export(cmd.Context(), path, flags.options())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderSegments(res.Manifest.Segments))
		fmt.Fprintf(cmd.OutOrStdout(), "Manifest: %s\n", res.ManifestPath)
		return nil
	case kind == media.Document && flags.data:
		segs, err := p.ExportFromData(cmd.Context(), path, flags.options())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderSegments(segs))
		return nil
	default:
		return fmt.Errorf("%w: %s media format not available", media.ErrUnsupportedExtension, kind.Ext())
	}
}
