package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hongminglow/catalog-api/internal/models/dto"
)

// stringFlag returns the flag's value only when the user set it.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func priceFlag(cmd *cobra.Command, name string) *dto.Price {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	p := dto.Price(v)
	return &p
}

func (a *app) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "categories", Aliases: []string{"category"}, Short: "Category operations"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := a.store.FetchCategories(cmd.Context(), false)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), categories)
		},
	}

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := a.client.Category(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), category)
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := a.store.CreateCategory(cmd.Context(), categoryRequest(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), category)
		},
	}
	addCategoryFlags(create)
	_ = create.MarkFlagRequired("name")

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change a category's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := a.store.UpdateCategory(cmd.Context(), args[0], categoryRequest(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), category)
		},
	}
	addCategoryFlags(update)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a category and all of its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := a.store.DeleteCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted category %s and %d item(s)\n", args[0], deleted)
			return err
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

func addCategoryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("name", "n", "", "Category name")
	cmd.Flags().StringP("description", "d", "", "Description")
	cmd.Flags().String("short-title", "", "Short title")
}

func categoryRequest(cmd *cobra.Command) dto.CategoryRequest {
	return dto.CategoryRequest{
		Name:        stringFlag(cmd, "name"),
		Description: stringFlag(cmd, "description"),
		ShortTitle:  stringFlag(cmd, "short-title"),
	}
}

func (a *app) itemsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "items", Aliases: []string{"item"}, Short: "Item operations"}

	var categoryID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List items, optionally for one category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.store.FetchItems(cmd.Context(), false)
			if err != nil {
				return err
			}
			if categoryID != "" {
				items = a.store.ItemsByCategory(categoryID)
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}
	list.Flags().StringVarP(&categoryID, "category", "c", "", "Only items of this category")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.client.Item(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.store.CreateItem(cmd.Context(), itemRequest(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}
	addItemFlags(create)
	for _, name := range []string{"name", "description", "price", "category"} {
		_ = create.MarkFlagRequired(name)
	}

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change an item's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.store.UpdateItem(cmd.Context(), args[0], itemRequest(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}
	addItemFlags(update)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.DeleteItem(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted item %s\n", args[0])
			return err
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

func addItemFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("name", "n", "", "Item name")
	cmd.Flags().StringP("description", "d", "", "Description")
	cmd.Flags().Float64P("price", "p", 0, "Price")
	cmd.Flags().StringP("category", "c", "", "Category id")
}

func itemRequest(cmd *cobra.Command) dto.ItemRequest {
	return dto.ItemRequest{
		Name:        stringFlag(cmd, "name"),
		Description: stringFlag(cmd, "description"),
		Price:       priceFlag(cmd, "price"),
		CategoryID:  stringFlag(cmd, "category"),
	}
}
