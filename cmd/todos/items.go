package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/client"
	"github.com/mesh-intelligence/todos/pkg/types"
)

var flagCompleted bool

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List and change items through the API",
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := newAPIClient(flagAPIURL).ListItems(cmd.Context())
		if err != nil {
			return apiError("list items", err)
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), items)
		}
		printItems(cmd.OutOrStdout(), items)
		return nil
	},
}

var itemsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := newAPIClient(flagAPIURL).CreateItem(cmd.Context(), args[0])
		if err != nil {
			return apiError("add item", err)
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), types.Item{ID: id, Title: args[0]})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created item %d\n", id)
		return nil
	},
}

var itemsUpdateCmd = &cobra.Command{
	Use:   "update <id> <title>",
	Short: "Change an item's title, and its completed flag with --completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c := newAPIClient(flagAPIURL)

		completed := flagCompleted
		if !cmd.Flags().Changed("completed") {
			// Keep the stored flag.
			if it, ok, err := findItem(cmd.Context(), c, id); err != nil {
				return apiError("update item", err)
			} else if ok {
				completed = it.Completed
			}
		}

		if err := c.UpdateItem(cmd.Context(), id, args[1], completed); err != nil {
			return apiError("update item", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated item %d\n", id)
		return nil
	},
}

var itemsDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark an item completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c := newAPIClient(flagAPIURL)

		it, ok, err := findItem(cmd.Context(), c, id)
		if err != nil {
			return apiError("complete item", err)
		}
		if !ok {
			return userError(fmt.Sprintf("item %d not found", id), nil)
		}
		if err := c.UpdateItem(cmd.Context(), id, it.Title, true); err != nil {
			return apiError("complete item", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Completed item %d\n", id)
		return nil
	},
}

var itemsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := newAPIClient(flagAPIURL).DeleteItem(cmd.Context(), id); err != nil {
			return apiError("delete item", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %d\n", id)
		return nil
	},
}

func init() {
	itemsUpdateCmd.Flags().BoolVar(&flagCompleted, "completed", false, "set the completed flag")

	itemsCmd.AddCommand(itemsListCmd)
	itemsCmd.AddCommand(itemsAddCmd)
	itemsCmd.AddCommand(itemsUpdateCmd)
	itemsCmd.AddCommand(itemsDoneCmd)
	itemsCmd.AddCommand(itemsDeleteCmd)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, userError(fmt.Sprintf("invalid item id %q", s), types.ErrInvalidID)
	}
	return id, nil
}

func findItem(ctx context.Context, c *client.Client, id int64) (types.Item, bool, error) {
	items, err := c.ListItems(ctx)
	if err != nil {
		return types.Item{}, false, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, true, nil
		}
	}
	return types.Item{}, false, nil
}

func printItems(w io.Writer, items []types.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No todos yet.")
		return
	}
	for _, it := range items {
		box := "[ ]"
		if it.Completed {
			box = "[x]"
		}
		fmt.Fprintf(w, "%s %4d  %s\n", box, it.ID, it.Title)
	}
	done, pending := types.CountCompleted(items)
	fmt.Fprintf(w, "\n%d total, %d done, %d pending\n", len(items), done, pending)
}
