// Package cli implements portalctl, an operator tool that talks to the marketplace API
// with a user's access token.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rentwise-portal/internal/adapters/marketapi"
	"rentwise-portal/internal/config"
	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/jwt"
	"rentwise-portal/internal/pkg/validate"
)

// options are the persistent flags shared by every command
type options struct {
	apiURL  string
	token   string
	userID  string
	timeout time.Duration
	minPct  float64
	maxPct  float64
}

// NewRootCmd builds the portalctl command tree writing to out
func NewRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Inspect and act on marketplace bids from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(out)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", os.Getenv("MARKET_API_URL"), "marketplace API base URL")
	flags.StringVar(&opts.token, "token", os.Getenv("PORTAL_TOKEN"), "marketplace access token")
	flags.StringVar(&opts.userID, "user", "", "user id (defaults to the token subject)")
	flags.DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")
	flags.Float64Var(&opts.minPct, "min-percent", validate.DefaultMinPercent, "lowest accepted bid as a fraction of the asking price")
	flags.Float64Var(&opts.maxPct, "max-percent", validate.DefaultMaxPercent, "highest accepted bid as a fraction of the asking price")

	root.AddCommand(bidsCmd(opts), validateCmd(opts))
	return root
}

// Execute runs portalctl with os.Args
func Execute() int {
	if err := NewRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", errorText(err))
		return 1
	}
	return 0
}

// errorText prefers the user-facing message of service and API errors
func errorText(err error) string {
	var svcErr *services.Error
	var apiErr *marketapi.APIError
	if errors.As(err, &svcErr) || errors.As(err, &apiErr) {
		return services.ErrorMessage(err)
	}
	return err.Error()
}

// bidService builds the service and resolves who the caller is
func (o *options) bidService() (*services.BidService, string, error) {
	if o.apiURL == "" {
		return nil, "", fmt.Errorf("--api-url or MARKET_API_URL is required")
	}
	if o.token == "" {
		return nil, "", fmt.Errorf("--token or PORTAL_TOKEN is required")
	}

	userID := o.userID
	if userID == "" {
		if claims, err := jwt.PeekUpstreamToken(o.token); err == nil {
			userID = claims.Subject
		}
	}

	client := marketapi.NewClient(o.apiURL, o.timeout)
	bounds := config.BidBoundsConfig{MinPercent: o.minPct, MaxPercent: o.maxPct}
	return services.NewBidService(client, bounds), userID, nil
}
