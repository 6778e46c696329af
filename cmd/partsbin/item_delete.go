// Item delete command removes an inventory item.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

var deleteNotes string

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an inventory item",
	Long: `Delete removes an item. Its ledger history is kept: a final
"deleted" entry is appended with the item name snapshot, so the trail
stays readable after the item is gone.

Example:
  partsbin item delete 7 --notes "scrapped"`,
	Args: cobra.ExactArgs(1),
	RunE: runItemDelete,
}

func init() {
	itemDeleteCmd.Flags().StringVar(&deleteNotes, "notes", "", "note for the ledger entry")
}

func runItemDelete(cmd *cobra.Command, args []string) error {
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

	removed, err := store.Items.Delete(id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if !removed {
		return fmt.Errorf("no item with id %d", id)
	}

	recordStockChange(types.StockEntry{
		ItemID:           item.ID,
		ItemName:         item.Name,
		ChangeType:       types.ChangeDeleted,
		PreviousQuantity: int64Ptr(item.Quantity),
		PreviousValue:    float64Ptr(item.Value),
		Notes:            deleteNotes,
	})

	fmt.Printf("Deleted item %d: %s\n", item.ID, item.Name)
	return nil
}
