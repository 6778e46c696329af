// Item update command applies a partial update to an inventory item.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shelfware-labs/partsbin/internal/sqlite"
	"github.com/shelfware-labs/partsbin/pkg/types"
)

var (
	updName         string
	updDescription  string
	updQuantity     int64
	updUnitValue    float64
	updCategory     string
	updLocation     string
	updBarcode      string
	updReorderPoint int64
	updNotes        string
)

var itemUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an inventory item",
	Long: `Update applies the given flags as a partial update. Only flags that
were set change the item; total value is recomputed when quantity or unit
value change, and stock and cost ledger entries are appended for the
detected transitions.

Example:
  partsbin item update 7 --quantity 150
  partsbin item update 7 --unit-value 0.05 --notes "price increase"`,
	Args: cobra.ExactArgs(1),
	RunE: runItemUpdate,
}

func init() {
	itemUpdateCmd.Flags().StringVar(&updName, "name", "", "item name")
	itemUpdateCmd.Flags().StringVar(&updDescription, "description", "", "item description")
	itemUpdateCmd.Flags().Int64Var(&updQuantity, "quantity", 0, "stock quantity")
	itemUpdateCmd.Flags().Float64Var(&updUnitValue, "unit-value", 0, "value per unit")
	itemUpdateCmd.Flags().StringVar(&updCategory, "category", "", "item category")
	itemUpdateCmd.Flags().StringVar(&updLocation, "location", "", "storage location")
	itemUpdateCmd.Flags().StringVar(&updBarcode, "barcode", "", "barcode")
	itemUpdateCmd.Flags().Int64Var(&updReorderPoint, "reorder-point", 0, "reorder point")
	itemUpdateCmd.Flags().StringVar(&updNotes, "notes", "", "note for the ledger entry")
}

func runItemUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	before, ok, err := store.Items.GetByID(id)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	if !ok {
		return fmt.Errorf("no item with id %d", id)
	}

	patch := sqlite.NewRecord()
	setIfChanged := func(flag, field string, value any) {
		if cmd.Flags().Changed(flag) {
			patch.Set(field, value)
		}
	}
	setIfChanged("name", "name", updName)
	setIfChanged("description", "description", updDescription)
	setIfChanged("quantity", "quantity", updQuantity)
	setIfChanged("unit-value", "unitValue", updUnitValue)
	setIfChanged("category", "category", updCategory)
	setIfChanged("location", "location", updLocation)
	setIfChanged("barcode", "barcode", updBarcode)
	setIfChanged("reorder-point", "reorderPoint", updReorderPoint)

	if patch.Len() == 0 {
		return fmt.Errorf("nothing to update: set at least one flag")
	}

	after, ok, err := store.Items.UpdateItem(id, patch)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if !ok {
		return fmt.Errorf("no item with id %d", id)
	}

	appendChangeEntries(before, after, updNotes)

	if flagJSON {
		return printJSON(after)
	}
	fmt.Printf("Updated item %d: %s\n", after.ID, after.Name)
	return nil
}

// appendChangeEntries writes one ledger entry per detected transition:
// a quantity change, a category change, and a unit value change each get
// their own entry, the last also landing in the cost ledger.
func appendChangeEntries(before, after types.Item, notes string) {
	if before.Quantity != after.Quantity {
		recordStockChange(types.StockEntry{
			ItemID:           after.ID,
			ItemName:         after.Name,
			ChangeType:       types.ChangeAdjusted,
			PreviousQuantity: int64Ptr(before.Quantity),
			NewQuantity:      int64Ptr(after.Quantity),
			PreviousValue:    float64Ptr(before.Value),
			NewValue:         float64Ptr(after.Value),
			Notes:            notes,
		})
	}
	if before.Category != after.Category {
		recordStockChange(types.StockEntry{
			ItemID:           after.ID,
			ItemName:         after.Name,
			ChangeType:       types.ChangeCategory,
			PreviousCategory: before.Category,
			NewCategory:      after.Category,
			Notes:            notes,
		})
	}
	if before.UnitValue != after.UnitValue {
		recordStockChange(types.StockEntry{
			ItemID:        after.ID,
			ItemName:      after.Name,
			ChangeType:    types.ChangeUpdated,
			PreviousValue: float64Ptr(before.Value),
			NewValue:      float64Ptr(after.Value),
			Notes:         notes,
		})
		recordCostChange(after.ID, before.UnitValue, after.UnitValue)
	}
}
