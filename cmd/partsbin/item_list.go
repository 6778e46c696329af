// Item list command queries inventory items.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

var (
	listCategory string
	listLowStock int64
	listReorder  bool
)

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List inventory items",
	Long: `List displays inventory items, optionally filtered by category, low
stock threshold, or reorder need.

Example:
  partsbin item list
  partsbin item list --category Electronics
  partsbin item list --low-stock 5
  partsbin item list --reorder --json`,
	Args: cobra.NoArgs,
	RunE: runItemList,
}

func init() {
	itemListCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
	itemListCmd.Flags().Int64Var(&listLowStock, "low-stock", -1, "show items at or below this quantity")
	itemListCmd.Flags().BoolVar(&listReorder, "reorder", false, "show only items needing reorder")
}

func runItemList(cmd *cobra.Command, args []string) error {
	var items []types.Item
	var err error
	switch {
	case listReorder:
		items, err = store.Items.NeedingReorder()
	case listLowStock >= 0:
		items, err = store.Items.LowStock(listLowStock)
	case listCategory != "":
		items, err = store.Items.GetByCategory(listCategory)
	default:
		items, err = store.Items.GetAll()
	}
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	if flagJSON {
		return printJSON(items)
	}
	printItemTable(items)
	return nil
}

// printItemTable prints items in a human-readable table.
func printItemTable(items []types.Item) {
	if len(items) == 0 {
		fmt.Println("No items found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tQTY\tUNIT\tVALUE\tLOCATION")
	for _, i := range items {
		name := i.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\t%.2f\t%s\n",
			i.ID, name, i.Category, i.Quantity, i.UnitValue, i.Value, i.Location)
	}
	w.Flush()
	fmt.Printf("Total: %d item(s)\n", len(items))
}
