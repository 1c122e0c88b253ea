package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/ledgerlens/internal/capture"
	"github.com/Veraticus/ledgerlens/internal/cli"
	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/config"
	"github.com/Veraticus/ledgerlens/internal/intake"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/network"
	"github.com/spf13/cobra"
)

type importFailure struct {
	path   string
	reason string
}

type importResult struct {
	added  []model.InventoryItem
	failed []importFailure
}

func importCmd() *cobra.Command {
	var room string

	cmd := &cobra.Command{
		Use:   "import <directory>",
		Short: "Appraise every photo in a directory and add the items",
		Long: `Send each JPEG or PNG in a directory for AI appraisal and save the result.

Photos that cannot be read or appraised are reported and skipped. Items
already saved are kept if the import is interrupted.`,
		Example: `  ledgerlens import ~/Pictures/walkthrough
  ledgerlens import ./garage --room Garage`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := slog.Default()
			out := cmd.OutOrStdout()

			paths, err := capture.ListImages(config.ExpandPath(args[0]))
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				_, err := fmt.Fprintln(out, cli.FormatWarning("No JPEG or PNG files found in "+args[0]))
				return err
			}

			appraiser, err := createAppraiser(logger)
			if err != nil {
				return err
			}
			defer appraiser.Close()

			store, cleanup, err := openLedger(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			status, stop := newNetworkStatus(ctx, logger)
			defer stop()
			// Every photo needs the service, so settle connectivity before starting.
			if monitor, ok := status.(*network.Monitor); ok {
				monitor.Probe(ctx)
			}
			if !status.Online() {
				return common.NewUserError(intake.MsgOffline, intake.ErrOffline)
			}

			handler := cli.NewInterruptHandler(out)
			ctx = handler.HandleInterrupts(ctx, "Import", "Items saved so far have been kept.")

			session := intake.NewSession(store, appraiser, status, logger)
			bar := cli.NewProgressBar(out, len(paths), "Appraising")

			result := runImport(ctx, session, paths, room, func() { _ = bar.Add(1) })
			if handler.WasInterrupted() {
				_ = bar.Exit()
			}

			return printImportResult(out, result, len(paths))
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "put every imported item in this room")

	return cmd
}

// runImport appraises and saves each photo in turn. It stops early when ctx
// is canceled; step is called once per processed photo.
func runImport(ctx context.Context, session *intake.Session, paths []string, room string, step func()) importResult {
	var result importResult

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}

		item, err := importOne(ctx, session, path, room)
		if err != nil {
			session.Discard()
			if errors.Is(err, context.Canceled) {
				break
			}
			slog.Warn("skipping photo", "path", path, "error", err)
			result.failed = append(result.failed, importFailure{path: path, reason: common.UserMessage(err)})
		} else {
			result.added = append(result.added, item)
		}
		step()
	}

	return result
}

func importOne(ctx context.Context, session *intake.Session, path, room string) (model.InventoryItem, error) {
	frame, err := capture.FromFile(path)
	if err != nil {
		return model.InventoryItem{}, common.NewUserError("Could not read image", err)
	}
	if err := session.AttachPhoto(frame); err != nil {
		return model.InventoryItem{}, err
	}
	if err := session.Appraise(ctx); err != nil {
		return model.InventoryItem{}, err
	}
	if room != "" {
		session.Edit(func(d *model.Draft) { d.Room = room })
	}
	return session.Save(ctx)
}

func printImportResult(out io.Writer, result importResult, total int) error {
	if _, err := fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added %d of %d items", len(result.added), total))); err != nil {
		return err
	}
	for _, item := range result.added {
		if _, err := fmt.Fprintf(out, "  %s %-30s %s\n", cli.SuccessIcon, item.Name, common.FormatCurrency(item.Value)); err != nil {
			return err
		}
	}
	for _, f := range result.failed {
		if _, err := fmt.Fprintf(out, "  %s %-30s %s\n", cli.ErrorIcon, filepath.Base(f.path), f.reason); err != nil {
			return err
		}
	}
	return nil
}
