package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rentwise-portal/internal/pkg/validate"
)

func validateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the portal's form checks locally",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "amount <bid> <asking-price>",
			Short: "Check a bid against the accepted range",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, ok := validate.ParsePrice(args[0])
				if !ok {
					return fmt.Errorf("%q is not a valid amount", args[0])
				}
				asking, ok := validate.ParsePrice(args[1])
				if !ok {
					return fmt.Errorf("%q is not a valid asking price", args[1])
				}
				res := validate.BidAmount(amount, asking, opts.minPct, opts.maxPct)
				if !res.Valid {
					return fmt.Errorf("%s", res.Reason)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", validate.FormatAED(amount))
				return nil
			},
		},
		&cobra.Command{
			Use:   "email <address>",
			Short: "Check an email address",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !validate.IsValidEmail(args[0]) {
					return fmt.Errorf("%q is not a valid email address", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			},
		},
		&cobra.Command{
			Use:   "phone <number>",
			Short: "Check a UAE mobile number",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !validate.IsValidPhone(args[0]) {
					return fmt.Errorf("%q is not a UAE mobile number", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			},
		},
	)
	return cmd
}
