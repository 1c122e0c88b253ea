package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/ledgerlens/internal/analysis"
	"github.com/Veraticus/ledgerlens/internal/cli"
	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/spf13/cobra"
)

func policyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Show or change the insurance policy limit",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the policy limit and current coverage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openLedger(cmd.Context(), slog.Default())
			if err != nil {
				return err
			}
			defer cleanup()

			s := analysis.Summarize(store.Items(), store.PolicyLimit())
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Policy limit: %s\nCoverage:     %.0f%% (%s documented)\n",
				common.FormatCurrency(s.PolicyLimit), s.CoveragePercent, common.FormatCurrency(s.TotalValue)); err != nil {
				return err
			}
			if s.IsUnderInsured {
				_, err = fmt.Fprintln(out, cli.FormatWarning("Under-insured by "+common.FormatCurrency(s.TotalValue-s.PolicyLimit)))
			}
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [amount]",
		Short: "Set the policy limit",
		Long:  "Set the policy limit. Without an argument the amount is read from the terminal.",
		Example: `  ledgerlens policy set 250,000
  ledgerlens policy set`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := policyAmount(cmd, args)
			if err != nil {
				return err
			}

			store, cleanup, err := openLedger(cmd.Context(), slog.Default())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.SetPolicyLimit(cmd.Context(), amount); err != nil {
				return fmt.Errorf("failed to set policy limit: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Policy limit set to "+common.FormatCurrency(amount)))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default policy limit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openLedger(cmd.Context(), slog.Default())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.ResetPolicyLimit(cmd.Context()); err != nil {
				return fmt.Errorf("failed to reset policy limit: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Policy limit reset to "+common.FormatCurrency(store.PolicyLimit())))
			return err
		},
	})

	return cmd
}

func policyAmount(cmd *cobra.Command, args []string) (float64, error) {
	if len(args) == 0 {
		prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		amount, err := prompter.PromptAmount(cmd.Context(), "Policy limit")
		if errors.Is(err, cli.ErrInputTerminated) {
			return 0, common.NewUserError("No policy limit entered.", err)
		}
		return amount, err
	}

	amount, err := common.ParseAmount(args[0])
	if err != nil {
		return 0, common.NewUserError("Please enter a dollar amount like 100000 or 100,000.", err)
	}
	return amount, nil
}
