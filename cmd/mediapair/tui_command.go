package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mediapair/internal/config"
	"mediapair/internal/geometry"
	"mediapair/internal/input"
	"mediapair/internal/library"
	"mediapair/internal/logging"
	"mediapair/internal/mediafiles"
	"mediapair/internal/pending"
	"mediapair/internal/preflight"
	"mediapair/internal/tui"
)

func newTUICommand(ctx *commandContext) *cobra.Command {
	var keepCache bool

	cmd := &cobra.Command{
		Use:   "tui [path...]",
		Short: "Reorder pending videos and subtitles interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			// The terminal belongs to the UI, so logs only go to the file.
			logger, err := logging.NewFileLogger(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			if err := preflightError(preflight.RunAll(cmd.Context(), cfg)); err != nil {
				return fmt.Errorf("preflight: %w", err)
			}
			modality, err := input.ParseModality(cfg.Reorder.Input)
			if err != nil {
				return err
			}

			var handles []mediafiles.Handle
			if len(args) > 0 {
				handles, err = mediafiles.Pick(args...)
				if err != nil && !errors.Is(err, mediafiles.ErrNoMedia) {
					return fmt.Errorf("collect files: %w", err)
				}
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return ctx.withStore(logger, func(cfg *config.Config, store *library.Store) error {
				buffer := pending.NewBuffer(store, nil, logger)
				buffer.AddHandles(handles)

				var watcher *mediafiles.DropWatcher
				if cfg.Paths.DropDir != "" {
					watcher, err = mediafiles.NewDropWatcher(cfg.Paths.DropDir, mediafiles.DefaultDropDebounce, logger)
					if err != nil {
						logging.Warn(logger, "drop_watch", "drop directory watch unavailable",
							logging.Hint("check drop_dir exists and is readable"),
							logging.String("drop_dir", cfg.Paths.DropDir),
							logging.Error(err),
						)
						watcher = nil
					} else {
						defer watcher.Close()
					}
				}

				keep := cfg.Library.KeepCache
				if cmd.Flags().Changed("keep-cache") {
					keep = keepCache
				}

				return tui.Run(signalCtx, tui.Options{
					Buffer:  buffer,
					Watcher: watcher,
					Layout: geometry.Layout{
						RowHeight: float64(cfg.Reorder.RowHeight),
						RowMargin: float64(cfg.Reorder.RowMargin),
					},
					Modality:      modality,
					SettleTimeout: cfg.SettleTimeout(),
					SettleFrames:  cfg.Reorder.SettleFrames,
					KeepCache:     keep,
					Logger:        logger,
				})
			})
		},
	}

	cmd.Flags().BoolVar(&keepCache, "keep-cache", false, "Copy videos into the local cache on upload")
	return cmd
}
