package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/ledgerlens/internal/capture"
	"github.com/Veraticus/ledgerlens/internal/cli"
	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/config"
	"github.com/Veraticus/ledgerlens/internal/intake"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/network"
	"github.com/spf13/cobra"
)

type addOptions struct {
	name        string
	value       string
	category    string
	room        string
	itemType    string
	condition   string
	date        string
	description string
	photo       string
	receipt     string
	appraise    bool
}

func addCmd() *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the inventory",
		Long: `Add a single item. With --photo and --appraise the photo is sent for AI
appraisal first; any field given on the command line overrides the appraisal.`,
		Example: `  ledgerlens add --name "Sofa" --value 1200 --room "Living Room"
  ledgerlens add --photo ~/Pictures/range.jpg --appraise
  ledgerlens add --name "Chandelier" --value 900 --type fixture --receipt receipt.png`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := slog.Default()

			store, cleanup, err := openLedger(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			var (
				appraiser intake.Appraiser
				status    network.Status = network.Static(false)
			)
			if opts.appraise {
				a, err := createAppraiser(logger)
				if err != nil {
					return err
				}
				defer a.Close()
				appraiser = a

				var stop func()
				status, stop = newNetworkStatus(ctx, logger)
				defer stop()
			}

			session := intake.NewSession(store, appraiser, status, logger)
			return runAdd(ctx, cmd.OutOrStdout(), session, opts, cmd.Flags().Changed)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "item name")
	cmd.Flags().StringVar(&opts.value, "value", "", "value in dollars (e.g. 1200 or $1,200.50)")
	cmd.Flags().StringVar(&opts.category, "category", "", "category (e.g. Electronics, Furniture)")
	cmd.Flags().StringVar(&opts.room, "room", "", "room or location")
	cmd.Flags().StringVar(&opts.itemType, "type", "", "personal or fixture")
	cmd.Flags().StringVar(&opts.condition, "condition", "", "New, Like New, Good, Fair or Poor")
	cmd.Flags().StringVar(&opts.date, "date", "", "purchase date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.description, "description", "", "brand, model, serial number...")
	cmd.Flags().StringVar(&opts.photo, "photo", "", "item photo (JPEG or PNG)")
	cmd.Flags().StringVar(&opts.receipt, "receipt", "", "receipt photo (JPEG or PNG)")
	cmd.Flags().BoolVar(&opts.appraise, "appraise", false, "fill in details from the photo with AI")

	return cmd
}

// runAdd attaches images, optionally appraises, applies the explicit flags
// and saves the draft.
func runAdd(ctx context.Context, out io.Writer, session *intake.Session, opts addOptions, changed func(string) bool) error {
	if opts.photo != "" {
		frame, err := capture.FromFile(config.ExpandPath(opts.photo))
		if err != nil {
			return common.NewUserError("Could not read photo "+opts.photo, err)
		}
		if err := session.AttachPhoto(frame); err != nil {
			return err
		}
	}
	if opts.receipt != "" {
		frame, err := capture.FromFile(config.ExpandPath(opts.receipt))
		if err != nil {
			return common.NewUserError("Could not read receipt "+opts.receipt, err)
		}
		session.AttachReceipt(frame)
	}

	if opts.appraise {
		if opts.photo == "" {
			return common.NewUserError("--appraise needs a --photo to analyze.", intake.ErrNoPhoto)
		}
		_, _ = fmt.Fprintln(out, cli.FormatInfo("Analyzing photo with AI..."))
		if err := session.Appraise(ctx); err != nil {
			// Degrade to whatever the flags provide.
			_, _ = fmt.Fprintln(out, cli.FormatWarning(common.UserMessage(err)))
		} else {
			d := session.Draft()
			_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Identified %s (%s, %s)", d.Name, d.Category, d.Room)))
		}
	}

	var applyErr error
	session.Edit(func(d *model.Draft) {
		applyErr = applyAddFlags(d, opts, changed)
	})
	if applyErr != nil {
		return applyErr
	}

	item, err := session.Save(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Saved %s (%s) to %s", item.Name, common.FormatCurrency(item.Value), item.Room)))
	return err
}

// applyAddFlags copies the flags the user actually set onto the draft.
func applyAddFlags(d *model.Draft, opts addOptions, changed func(string) bool) error {
	if changed("name") {
		d.Name = opts.name
	}
	if changed("value") {
		v, err := common.ParseAmount(opts.value)
		if err != nil {
			return common.NewUserError("Please enter a dollar amount like 1200 or 1,200.50.", err)
		}
		d.SetValue(v)
	}
	if changed("category") {
		d.Category = model.ParseCategory(opts.category)
	}
	if changed("room") {
		d.Room = opts.room
	}
	if changed("type") {
		t, err := model.ParseItemType(opts.itemType)
		if err != nil {
			return common.NewUserError("Type must be personal or fixture.", err)
		}
		d.Type = t
	}
	if changed("condition") {
		d.Condition = model.ParseCondition(opts.condition)
	}
	if changed("date") {
		d.PurchaseDate = opts.date
	}
	if changed("description") {
		d.Description = opts.description
	}
	return nil
}
