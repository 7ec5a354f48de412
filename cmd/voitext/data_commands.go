package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/voitext/internal/transcript"
	"github.com/nguyentantai21042004/voitext/internal/workspace"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:     "split <manifest.yaml>",
		Aliases: []string{"explode"},
		Short:   "Render one silent clip per caption character",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fileExists(args[0]); err != nil {
				return err
			}
			p, err := ctx.pipeline()
			if err != nil {
				return err
			}
			minis, err := p.Explode(cmd.Context(), args[0], flags.options())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d clips\n", len(minis))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <manifest.yaml>",
		Short: "Print the segments of a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := workspace.LoadManifest(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSegments(m.Segments))
			return nil
		},
	}
}

func newTranscriptCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "transcript <manifest.yaml>",
		Short: "Write a .docx transcript next to a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := transcript.New(ctx.logger()).Write(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Transcript: %s\n", out)
			return nil
		},
	}
}
