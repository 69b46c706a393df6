package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Fausto-Grilo/VulnWebApp/storefront"
	"github.com/spf13/cobra"
)

func (sh *shell) productsCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the catalog, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := sh.client.Products(cmd.Context())
			if err != nil {
				return err
			}
			products = storefront.FilterProducts(products, search)
			if len(products) == 0 {
				fmt.Fprintln(sh.out, "No products found")
				return nil
			}
			tw := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPRICE\tTAG")
			for _, p := range products {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Price, p.Tag)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name, tag or price")
	return cmd
}

func (sh *shell) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh.printCart()
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh.printCart()
			return nil
		},
	}

	var qty int
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			product, err := sh.client.Product(cmd.Context(), id)
			if err != nil {
				return err
			}
			sh.app.Cart.Add(*product, qty)
			return nil
		},
	}
	add.Flags().IntVarP(&qty, "qty", "q", 1, "quantity to add")

	set := &cobra.Command{
		Use:   "set <product-id> <qty>",
		Short: "Set a line's quantity; zero or less removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			sh.app.Cart.ChangeQuantity(id, n)
			sh.printCart()
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sh.app.Cart.Remove(id)
			sh.printCart()
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh.app.Cart.Clear()
			fmt.Fprintln(sh.out, "Cart cleared")
			return nil
		},
	}

	cmd.AddCommand(show, add, set, remove, clearCmd)
	return cmd
}

func (sh *shell) checkoutCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			co := sh.app.Checkout
			if err := co.Open(); err != nil {
				if msg := co.Error(); msg != "" {
					return errors.New(msg)
				}
				return err
			}

			sh.printCart()
			fmt.Fprintf(sh.out, "Order email: %s\n", co.Email())
			if !yes {
				answer, err := sh.prompt("Confirm purchase? [y/N] ")
				if err != nil || !strings.EqualFold(strings.TrimSpace(answer), "y") {
					_ = co.Cancel()
					fmt.Fprintln(sh.out, "Checkout cancelled")
					return nil
				}
			}

			receipt, err := co.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(sh.out, "✅ %s (order #%d, %s)\n", co.Success(), receipt.ID, receipt.CreatedAt)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (sh *shell) printCart() {
	items := sh.app.Cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(sh.out, "Your cart is empty")
		return
	}
	tw := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQTY")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", it.ID, it.Name, it.Price, it.Qty)
	}
	_ = tw.Flush()
	fmt.Fprintf(sh.out, "Items: %d  Total: $%s\n", sh.app.Cart.Count(), sh.app.Cart.Total().StringFixed(2))
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return uint(n), nil
}
