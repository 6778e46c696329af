// Item add command creates a new inventory item.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

var (
	addName         string
	addDescription  string
	addModel        string
	addVendor       string
	addQuantity     int64
	addUnitValue    float64
	addCategory     string
	addLocation     string
	addBarcode      string
	addReorderPoint int64
)

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new inventory item",
	Long: `Add creates a new inventory item. Its total value is computed from
quantity and unit value, and a "created" entry is appended to the stock
ledger.

Example:
  partsbin item add --name "M3 screw" --quantity 200 --unit-value 0.04
  partsbin item add --name "10k resistor" --category Electronics --json`,
	Args: cobra.NoArgs,
	RunE: runItemAdd,
}

func init() {
	itemAddCmd.Flags().StringVar(&addName, "name", "", "item name (required)")
	itemAddCmd.Flags().StringVar(&addDescription, "description", "", "item description")
	itemAddCmd.Flags().StringVar(&addModel, "model", "", "model or part number")
	itemAddCmd.Flags().StringVar(&addVendor, "vendor", "", "vendor name")
	itemAddCmd.Flags().Int64Var(&addQuantity, "quantity", 0, "stock quantity")
	itemAddCmd.Flags().Float64Var(&addUnitValue, "unit-value", 0, "value per unit")
	itemAddCmd.Flags().StringVar(&addCategory, "category", "", "item category")
	itemAddCmd.Flags().StringVar(&addLocation, "location", "", "storage location")
	itemAddCmd.Flags().StringVar(&addBarcode, "barcode", "", "barcode")
	itemAddCmd.Flags().Int64Var(&addReorderPoint, "reorder-point", 0, "quantity at which the item needs reordering")
	_ = itemAddCmd.MarkFlagRequired("name")
}

func runItemAdd(cmd *cobra.Command, args []string) error {
	item, err := store.Items.CreateItem(types.Item{
		Name:         addName,
		Description:  addDescription,
		Model:        addModel,
		Vendor:       addVendor,
		Quantity:     addQuantity,
		UnitValue:    addUnitValue,
		Category:     addCategory,
		Location:     addLocation,
		Barcode:      addBarcode,
		ReorderPoint: addReorderPoint,
	})
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	recordStockChange(types.StockEntry{
		ItemID:      item.ID,
		ItemName:    item.Name,
		ChangeType:  types.ChangeCreated,
		NewQuantity: int64Ptr(item.Quantity),
		NewValue:    float64Ptr(item.Value),
		NewCategory: item.Category,
	})

	if flagJSON {
		return printJSON(item)
	}
	fmt.Printf("Created item %d: %s\n", item.ID, item.Name)
	return nil
}
