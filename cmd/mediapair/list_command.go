package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mediapair/internal/config"
	"mediapair/internal/library"
	"mediapair/internal/logging"
)

type pairJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Video     string    `json:"video"`
	Size      int64     `json:"size"`
	Cache     string    `json:"cache,omitempty"`
	Subtitle  string    `json:"subtitle,omitempty"`
	CommitID  string    `json:"commit_id"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show stored pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(logging.NewNop(), func(_ *config.Config, store *library.Store) error {
				pairs, err := store.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("list pairs: %w", err)
				}
				if asJSON {
					out := make([]pairJSON, 0, len(pairs))
					for _, p := range pairs {
						out = append(out, pairJSON{
							ID:        p.ID,
							Name:      p.Name,
							Video:     p.VideoPath,
							Size:      p.VideoSize,
							Cache:     p.CachePath,
							Subtitle:  p.SubtitleName,
							CommitID:  p.CommitID,
							Position:  p.Position,
							CreatedAt: p.CreatedAt,
							UpdatedAt: p.UpdatedAt,
						})
					}
					return writeJSON(cmd, out)
				}
				if len(pairs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No pairs stored")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderPairs(pairs))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func renderPairs(pairs []*library.Pair) string {
	tw := newTable(table.Row{"Video", "Subtitle", "Size", "Cached", "Updated"}, "Size")
	for _, p := range pairs {
		subtitle := p.SubtitleName
		if !p.HasSubtitle() {
			subtitle = "-"
		}
		tw.AppendRow(table.Row{
			p.Name,
			subtitle,
			humanize.Bytes(uint64(max(p.VideoSize, 0))),
			yesNo(p.Cached()),
			humanize.Time(p.UpdatedAt),
		})
	}
	return tw.Render()
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a stored pair and its cached copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.cliLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(logger, func(_ *config.Config, store *library.Store) error {
				if err := store.Remove(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("remove %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}
}
