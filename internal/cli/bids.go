package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/validate"
)

func bidsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bids",
		Short: "List, show and act on bids",
	}
	cmd.AddCommand(bidsListCmd(opts), bidsShowCmd(opts), bidsActCmd(opts))
	return cmd
}

func bidsListCmd(opts *options) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the caller's bids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, userID, err := opts.bidService()
			if err != nil {
				return err
			}

			board := services.NewBidBoard(svc, opts.token, userID, userID)
			if err := board.Refresh(cmd.Context()); err != nil {
				return err
			}

			page := services.QueryBids(board.Bids(), userID, services.ListQuery{Status: status})
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLISTING\tAMOUNT\tSTATUS\tACTIONS")
			for _, v := range page.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					v.ID, v.ListingID, validate.FormatAED(v.Amount), v.Display.Label, joinActions(v.Actions))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only bids with this status")
	return cmd
}

func bidsShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <bid-id>",
		Short: "Show one bid and the actions available on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, userID, err := opts.bidService()
			if err != nil {
				return err
			}

			bid, err := svc.Get(cmd.Context(), opts.token, args[0])
			if err != nil {
				return err
			}
			printBid(cmd.OutOrStdout(), services.NewBidView(*bid, userID))
			return nil
		},
	}
}

func bidsActCmd(opts *options) *cobra.Command {
	var in services.ActionInput

	cmd := &cobra.Command{
		Use:   "act <bid-id> <counter|accept|reject|withdraw>",
		Short: "Apply one action to a bid",
		Long: "Loads the caller's bids, refuses actions the bid's status does not allow, " +
			"and otherwise sends exactly one request.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := domain.ParseBidAction(args[1])
			if err != nil {
				return err
			}
			svc, userID, err := opts.bidService()
			if err != nil {
				return err
			}

			board := services.NewBidBoard(svc, opts.token, userID, userID)
			if err := board.Refresh(cmd.Context()); err != nil {
				return err
			}

			bid, err := board.Apply(cmd.Context(), args[0], action, in)
			if err != nil {
				return err
			}
			printBid(cmd.OutOrStdout(), services.NewBidView(*bid, userID))
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.Amount, "amount", 0, "counter offer amount")
	cmd.Flags().StringVar(&in.Message, "message", "", "message to the other party")
	return cmd
}

func printBid(out io.Writer, v services.BidView) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", v.ID)
	fmt.Fprintf(w, "Listing\t%s\n", v.ListingID)
	fmt.Fprintf(w, "Amount\t%s\n", validate.FormatAED(v.Amount))
	fmt.Fprintf(w, "Terms\t%s, %d installments\n", v.Frequency, v.Installment)
	fmt.Fprintf(w, "Status\t%s\n", v.Display.Label)
	fmt.Fprintf(w, "Actions\t%s\n", joinActions(v.Actions))
	if v.Message != "" {
		fmt.Fprintf(w, "Message\t%s\n", v.Message)
	}
	w.Flush()
}

func joinActions(actions []domain.BidAction) string {
	if len(actions) == 0 {
		return "-"
	}
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return strings.Join(names, ",")
}
