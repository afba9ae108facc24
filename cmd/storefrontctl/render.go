package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/transport"
)

func renderProducts(w io.Writer, products []transport.ProductResponse) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, "No products found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t$%.2f\n", p.ID, p.Name, p.Category, p.Price)
	}
	return tw.Flush()
}

// renderCart prints the lines whose product resolved. Lines pointing at a
// missing product are not shown.
func renderCart(w io.Writer, items []transport.CartLineResponse, total decimal.Decimal) error {
	shown := make([]transport.CartLineResponse, 0, len(items))
	for _, it := range items {
		if it.Product != nil {
			shown = append(shown, it)
		}
	}
	if len(shown) == 0 {
		_, err := fmt.Fprintln(w, "Your cart is empty.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tPRODUCT\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range shown {
		sub := decimal.NewFromFloat(it.Product.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		fmt.Fprintf(tw, "%s\t%s\t%d\t$%.2f\t$%s\n", it.ID, it.Product.Name, it.Quantity, it.Product.Price, sub.StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\t\tTOTAL\t$%s\n", total.StringFixed(2))
	return tw.Flush()
}

func renderReceipt(w io.Writer, r *transport.ReceiptResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Receipt\t%s\n", r.ReceiptID)
	fmt.Fprintf(tw, "Total\t%.2f %s\n", r.Total, r.Currency)
	fmt.Fprintf(tw, "Date\t%s\n", r.Timestamp.Local().Format(time.RFC1123))
	for _, k := range []string{"name", "email"} {
		if v, ok := r.User[k]; ok {
			fmt.Fprintf(tw, "%s\t%v\n", k, v)
		}
	}
	return tw.Flush()
}
