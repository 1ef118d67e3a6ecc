package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mediapair/internal/config"
	"mediapair/internal/library"
	"mediapair/internal/mediafiles"
	"mediapair/internal/pending"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var keepCache bool
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "import <path>...",
		Short: "Pair files in listed order and store them without the UI",
		Long: "Import collects video and subtitle files from the given files and directories,\n" +
			"pairs them by position in sorted path order, and stores the pairs in the library.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.cliLogger()
			if err != nil {
				return err
			}
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			handles, err := mediafiles.Pick(args...)
			if err != nil {
				return fmt.Errorf("collect files: %w", err)
			}

			return ctx.withStore(logger, func(cfg *config.Config, store *library.Store) error {
				keep := cfg.Library.KeepCache
				if cmd.Flags().Changed("keep-cache") {
					keep = keepCache
				}

				confirmer := chooseConfirmer(assumeYes, cmd.InOrStdin(), cmd.OutOrStdout())
				buffer := pending.NewBuffer(store, confirmer, logger)
				buffer.AddHandles(handles)

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderPlan(buffer.Videos(), buffer.Subtitles()))

				pairs := len(buffer.Videos())
				outcome, err := buffer.Commit(signalCtx, keep)
				if err != nil {
					return err
				}
				switch outcome {
				case pending.OutcomeCommitted:
					fmt.Fprintf(out, "Stored %d pair(s)\n", pairs)
				case pending.OutcomeDeclined:
					fmt.Fprintln(out, "Import cancelled; existing pairs were kept")
				default:
					fmt.Fprintln(out, "Nothing to import")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&keepCache, "keep-cache", false, "Copy videos into the local cache")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Overwrite existing pairs without asking")
	return cmd
}

// renderPlan shows which subtitle each video will receive.
func renderPlan(videos, subtitles []pending.Item) string {
	tw := newTable(table.Row{"#", "Video", "Subtitle", "Size"}, "#", "Size")
	for i := range max(len(videos), len(subtitles)) {
		var video, subtitle, size string
		if i < len(videos) {
			video = videos[i].Name
			size = humanize.Bytes(uint64(max(videos[i].Handle.Size, 0)))
		}
		if i < len(subtitles) {
			subtitle = subtitles[i].Name
			if i >= len(videos) {
				subtitle += " (unpaired)"
			}
		}
		tw.AppendRow(table.Row{i + 1, video, subtitle, size})
	}
	return tw.Render()
}
