// Command storefrontctl browses the catalog and manages the demo cart from a
// terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/storefront/internal/client"
)

type app struct {
	apiURL  string
	timeout time.Duration
	api     *client.Client
	cart    *client.CartState
	out     io.Writer
	notify  *stderrNotifier
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{out: os.Stdout, notify: &stderrNotifier{w: os.Stderr}}

	defaultURL := os.Getenv("STOREFRONT_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3001"
	}

	root := &cobra.Command{
		Use:           "storefrontctl",
		Short:         "Browse products and manage the demo cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.api = client.NewClient(a.apiURL, a.timeout)
			a.cart = client.NewCartState(a.api, a.notify)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.api.Close()
		},
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", defaultURL, "storefront API base URL")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 10*time.Second, "request timeout")

	root.AddCommand(
		a.productsCmd(),
		a.searchCmd(),
		a.cartCmd(),
		a.addCmd(),
		a.updateCmd(),
		a.removeCmd(),
		a.checkoutCmd(),
	)
	return root
}

type stderrNotifier struct {
	w io.Writer
}

func (n *stderrNotifier) Success(msg string) {
	fmt.Fprintf(n.w, "ok: %s\n", msg)
}

func (n *stderrNotifier) Error(msg string, err error) {
	fmt.Fprintf(n.w, "error: %s: %v\n", msg, err)
}
