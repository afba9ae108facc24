package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/storefront/internal/transport"
)

func (a *app) productsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.api.Products(cmd.Context())
			if err != nil {
				a.notify.Error("Could not fetch products", err)
				return err
			}
			return renderProducts(a.out, products)
		},
	}
}

func (a *app) searchCmd() *cobra.Command {
	var page, size int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.Search(cmd.Context(), args[0], page, size)
			if err != nil {
				a.notify.Error("Search failed", err)
				return err
			}
			fmt.Fprintf(a.out, "%d match(es), page %d\n", res.Total, res.Page)
			return renderProducts(a.out, res.Products)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "result page")
	cmd.Flags().IntVar(&size, "size", 10, "results per page")
	return cmd
}

func (a *app) cartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show the cart and its total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cart.Refresh(cmd.Context()); err != nil {
				return err
			}
			return renderCart(a.out, a.cart.Items(), a.cart.Total())
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	var quantity int
	cmd := &cobra.Command{
		Use:   "add <productId>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product := transport.ProductResponse{ID: args[0], Name: args[0]}
			if products, err := a.api.Products(cmd.Context()); err == nil {
				for _, p := range products {
					if p.ID == args[0] {
						product = p
						break
					}
				}
			}
			if err := a.cart.Add(cmd.Context(), product, quantity); err != nil {
				return err
			}
			return renderCart(a.out, a.cart.Items(), a.cart.Total())
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity to add")
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <itemId> <quantity>",
		Short: "Set a cart line's quantity (below 1 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity %q: %w", args[1], err)
			}
			if err := a.cart.Update(cmd.Context(), args[0], qty); err != nil {
				return err
			}
			return renderCart(a.out, a.cart.Items(), a.cart.Total())
		},
	}
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <itemId>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cart.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			return renderCart(a.out, a.cart.Items(), a.cart.Total())
		},
	}
}

func (a *app) checkoutCmd() *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Check out the cart with a mock payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheckout(cmd.Context(), name, email)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "customer name")
	cmd.Flags().StringVar(&email, "email", "", "customer email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// runCheckout prints the receipt whenever the server issued one, even if the
// refetch that follows it failed.
func (a *app) runCheckout(ctx context.Context, name, email string) error {
	if err := a.cart.Refresh(ctx); err != nil {
		return err
	}
	if a.cart.Count() == 0 {
		return errors.New("cart is empty")
	}
	receipt, err := a.cart.Checkout(ctx, map[string]any{"name": name, "email": email})
	if receipt != nil {
		if rerr := renderReceipt(a.out, receipt); rerr != nil {
			return errors.Join(err, rerr)
		}
	}
	return err
}
