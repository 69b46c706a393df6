package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/Fausto-Grilo/VulnWebApp/apiclient"
	"github.com/Fausto-Grilo/VulnWebApp/storefront"
	"github.com/spf13/cobra"
)

var errNotAdmin = errors.New("the dashboard needs an admin account; sign in with `shopctl login`")

// adminClient gates the dashboard commands on the local session. The server
// still decides on every request.
func (sh *shell) adminClient() (*apiclient.Client, error) {
	if sh.app.Session.Resolve(storefront.ViewDashboard) != storefront.ViewDashboard {
		return nil, errNotAdmin
	}
	return sh.client.WithAdminToken(sh.app.Session.Current().Token), nil
}

func (sh *shell) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Dashboard: manage products and review orders",
	}
	cmd.AddCommand(sh.adminProductsCmd(), sh.adminOrdersCmd(), sh.adminExportCmd(), sh.adminImportCmd(), sh.adminWatchCmd())
	return cmd
}

func productFlags(cmd *cobra.Command, in *apiclient.ProductInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "product name")
	cmd.Flags().StringVar(&in.Price, "price", "", `price as shown, e.g. "$39.00"`)
	cmd.Flags().StringVar(&in.Img, "img", "", "image URL")
	cmd.Flags().StringVar(&in.Tag, "tag", "", "tag")
}

func (sh *shell) adminProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Create, update or delete products",
	}

	var created apiclient.ProductInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := sh.adminClient()
			if err != nil {
				return err
			}
			id, err := client.CreateProduct(cmd.Context(), created)
			if err != nil {
				return err
			}
			fmt.Fprintf(sh.out, "✅ Created product #%d\n", id)
			return nil
		},
	}
	productFlags(create, &created)

	var updated apiclient.ProductInput
	update := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Replace a product's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := sh.adminClient()
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			// unset flags keep the current values
			current, err := client.Product(cmd.Context(), id)
			if err != nil {
				return err
			}
			in := apiclient.ProductInput{Name: current.Name, Price: current.Price, Img: current.Img, Tag: current.Tag}
			flags := cmd.Flags()
			if flags.Changed("name") {
				in.Name = updated.Name
			}
			if flags.Changed("price") {
				in.Price = updated.Price
			}
			if flags.Changed("img") {
				in.Img = updated.Img
			}
			if flags.Changed("tag") {
				in.Tag = updated.Tag
			}
			if err := client.UpdateProduct(cmd.Context(), id, in); err != nil {
				return err
			}
			fmt.Fprintf(sh.out, "✅ Updated product #%d\n", id)
			return nil
		},
	}
	productFlags(update, &updated)

	del := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := sh.adminClient()
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := client.DeleteProduct(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(sh.out, "🗑️ Deleted product #%d\n", id)
			return nil
		},
	}

	cmd.AddCommand(create, update, del)
	return cmd
}

func (sh *shell) adminOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List every order, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := sh.adminClient()
			if err != nil {
				return err
			}
			orders, err := client.Orders(cmd.Context())
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Fprintln(sh.out, "No orders yet")
				return nil
			}
			tw := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tEMAIL\tITEMS\tTOTAL\tCREATED")
			for _, o := range orders {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\n", o.ID, o.Email, itemSummary(o), o.Total, o.CreatedAt)
			}
			return tw.Flush()
		},
	}
}

func itemSummary(o apiclient.Order) string {
	items := o.LineItems()
	if items == nil {
		return string(o.Items)
	}
	units := 0
	for _, it := range items {
		units += it.Qty
	}
	return strconv.Itoa(len(items)) + " lines / " + strconv.Itoa(units) + " units"
}

func (sh *shell) adminExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:       "export <products|orders>",
		Short:     "Download a spreadsheet of products or orders",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"products", "orders"},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := sh.adminClient()
			if err != nil {
				return err
			}
			if output == "" {
				output = args[0] + ".xlsx"
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()

			if args[0] == "orders" {
				err = client.ExportOrders(cmd.Context(), f)
			} else {
				err = client.ExportProducts(cmd.Context(), f)
			}
			if err != nil {
				os.Remove(output)
				return err
			}
			fmt.Fprintf(sh.out, "📁 Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <kind>.xlsx)")
	return cmd
}

func (sh *shell) adminImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Create or update products from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := sh.adminClient()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			summary, err := client.ImportProducts(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(sh.out, "✅ %s: %d created, %d updated, %d skipped\n",
				summary.Message, summary.Created, summary.Updated, summary.Skipped)
			return nil
		},
	}
}

func (sh *shell) adminWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print orders as they are placed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := sh.adminClient()
			if err != nil {
				return err
			}
			fmt.Fprintln(sh.out, "👀 Watching for new orders (Ctrl+C to stop)")
			err = client.WatchOrders(cmd.Context(), func(o apiclient.Order) {
				fmt.Fprintf(sh.out, "🛒 #%d %s %.2f %s (%s)\n", o.ID, o.Email, o.Total, o.CreatedAt, itemSummary(o))
			})
			if cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}
}
