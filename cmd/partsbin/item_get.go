// Item get command fetches one inventory item.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

var getBarcode string

var itemGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one inventory item",
	Long: `Get fetches a single item by id, or by barcode with --barcode.

Example:
  partsbin item get 7
  partsbin item get --barcode 4006381333931`,
	Args: cobra.MaximumNArgs(1),
	RunE: runItemGet,
}

func init() {
	itemGetCmd.Flags().StringVar(&getBarcode, "barcode", "", "look up by barcode instead of id")
}

func runItemGet(cmd *cobra.Command, args []string) error {
	if getBarcode == "" && len(args) == 0 {
		return fmt.Errorf("an id argument or --barcode is required")
	}

	if getBarcode != "" {
		item, ok, err := store.Items.GetByBarcode(getBarcode)
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		if !ok {
			return fmt.Errorf("no item with barcode %q", getBarcode)
		}
		return printItem(item)
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	item, ok, err := store.Items.GetByID(id)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	if !ok {
		return fmt.Errorf("no item with id %d", id)
	}
	return printItem(item)
}

func printItem(i types.Item) error {
	if flagJSON {
		return printJSON(i)
	}
	fmt.Printf("Item %d: %s\n", i.ID, i.Name)
	if i.Description != "" {
		fmt.Printf("  Description: %s\n", i.Description)
	}
	if i.Category != "" {
		fmt.Printf("  Category:    %s\n", i.Category)
	}
	fmt.Printf("  Quantity:    %d\n", i.Quantity)
	fmt.Printf("  Unit value:  %.2f\n", i.UnitValue)
	fmt.Printf("  Value:       %.2f\n", i.Value)
	if i.Location != "" {
		fmt.Printf("  Location:    %s\n", i.Location)
	}
	if i.Barcode != "" {
		fmt.Printf("  Barcode:     %s\n", i.Barcode)
	}
	if i.NeedsReorder() {
		fmt.Println("  Needs reorder")
	}
	return nil
}
