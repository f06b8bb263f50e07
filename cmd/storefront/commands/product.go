package commands

import (
	"fmt"

	"github.com/ToNga156/FinalProject/cmd/storefront/output"
	"github.com/ToNga156/FinalProject/internal/media"
	"github.com/ToNga156/FinalProject/internal/models"
	"github.com/ToNga156/FinalProject/internal/shop"
	"github.com/spf13/cobra"
)

var productFlags struct {
	name     string
	price    string
	img      string
	category int
	min      string
	max      string
	dir      string
}

func newProductCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"products"},
		Short:   "Browse and edit the catalog",
	}
	cmd.AddCommand(
		newProductListCmd(a),
		newProductByCategoryCmd(a),
		newProductSearchCmd(a),
		newProductFilterCmd(a),
		newProductAddCmd(a),
		newProductUpdateCmd(a),
		newProductDeleteCmd(a),
		newProductImageCmd(a),
	)
	return cmd
}

func printProducts(products []models.Product) error {
	if jsonOutput {
		if products == nil {
			products = []models.Product{}
		}
		return output.JSON(products)
	}
	if len(products) == 0 {
		output.Muted("No products")
		return nil
	}
	return output.Table(productHeader, productRows(products))
}

func addProductFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&productFlags.name, "name", "", "Product name")
	cmd.Flags().StringVar(&productFlags.price, "price", "0", "Unit price")
	cmd.Flags().StringVar(&productFlags.img, "img", "", "Image file name")
	cmd.Flags().IntVar(&productFlags.category, "category", 0, "Category id")
}

func newProductListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every product",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.store.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			return printProducts(products)
		},
	}
}

func newProductByCategoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "by-category <category-id>",
		Short: "List the products of one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "category")
			if err != nil {
				return err
			}
			products, err := a.store.ListByCategory(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printProducts(products)
		},
	}
}

func newProductSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find products whose name or category name contains keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.store.SearchByNameOrCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printProducts(products)
		},
	}
}

func newProductFilterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter products by name and price range",
		Long: `Filter products by a name fragment and an inclusive price range. Each
criterion is optional.

Examples:
  storefront product filter --name "Áo" --min 100000 --max 300000
  storefront product filter --min 1000000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var f models.ProductFilter
			if productFlags.name != "" {
				f.Name = &productFlags.name
			}
			if productFlags.min != "" {
				d, err := parseMoney(productFlags.min, "min")
				if err != nil {
					return err
				}
				f.Min = &d
			}
			if productFlags.max != "" {
				d, err := parseMoney(productFlags.max, "max")
				if err != nil {
					return err
				}
				f.Max = &d
			}
			products, err := a.shop.FilterProducts(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printProducts(products)
		},
	}
	cmd.Flags().StringVar(&productFlags.name, "name", "", "Name fragment")
	cmd.Flags().StringVar(&productFlags.min, "min", "", "Minimum price")
	cmd.Flags().StringVar(&productFlags.max, "max", "", "Maximum price")
	return cmd
}

func newProductAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Long: `Add a product to the catalog.

Examples:
  storefront product add --name "Khăn lụa" --price 95000 --img khan.jpg --category 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := parseMoney(productFlags.price, "price")
			if err != nil {
				return err
			}
			id, err := a.shop.SaveProduct(cmd.Context(), shop.ProductRequest{
				Name:       productFlags.name,
				Price:      price,
				Image:      productFlags.img,
				CategoryID: productFlags.category,
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(map[string]int{"id": id})
			}
			output.Success("Added product %d", id)
			return nil
		},
	}
	addProductFlags(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newProductUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			p, err := a.store.GetProduct(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("product %d not found", id)
			}

			req := shop.ProductRequest{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image, CategoryID: p.CategoryID}
			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = productFlags.name
			}
			if flags.Changed("price") {
				if req.Price, err = parseMoney(productFlags.price, "price"); err != nil {
					return err
				}
			}
			if flags.Changed("img") {
				req.Image = productFlags.img
			}
			if flags.Changed("category") {
				req.CategoryID = productFlags.category
			}

			if _, err := a.shop.SaveProduct(ctx, req); err != nil {
				return err
			}
			output.Success("Updated product %d", id)
			return nil
		},
	}
	addProductFlags(cmd)
	return cmd
}

func newProductDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product; past orders keep their lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			if err := a.store.DeleteProduct(cmd.Context(), id); err != nil {
				return err
			}
			output.Success("Deleted product %d", id)
			return nil
		},
	}
}

func newProductImageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image <id> <file>",
		Short: "Import a PNG or JPEG picture for a product",
		Long: `Import a picture for a product. The file is scaled down to at most 800
pixels wide, saved as a JPEG under a new unique name in the image directory
(IMAGE_DIR, default ./images) and set as the product's image.

Examples:
  storefront product image 7 ~/Pictures/sneaker.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			p, err := a.store.GetProduct(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("product %d not found", id)
			}

			dir := a.imageDir
			if productFlags.dir != "" {
				dir = productFlags.dir
			}
			name, err := media.Import(args[1], dir)
			if err != nil {
				return err
			}
			if err := a.store.SetProductImage(ctx, id, name); err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(map[string]any{"id": id, "img": name})
			}
			output.Success("Product %d now uses %s", id, name)
			return nil
		},
	}
	cmd.Flags().StringVar(&productFlags.dir, "dir", "", "Image directory (overrides IMAGE_DIR)")
	return cmd
}
