// Stats command: inventory totals and reorder overview.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show inventory totals",
	Long: `Stats shows the overall inventory picture: item count, total stock
quantity, total value, and how many items need reordering.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	nItems, err := store.Items.Count()
	if err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	totalQty, err := store.Items.TotalQuantity()
	if err != nil {
		return fmt.Errorf("total quantity: %w", err)
	}
	totalValue, err := store.Items.TotalValue()
	if err != nil {
		return fmt.Errorf("total value: %w", err)
	}
	reorder, err := store.Items.NeedingReorder()
	if err != nil {
		return fmt.Errorf("reorder check: %w", err)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"items":         nItems,
			"totalQuantity": totalQty,
			"totalValue":    totalValue,
			"needReorder":   len(reorder),
		})
	}

	fmt.Printf("Items:          %d\n", nItems)
	fmt.Printf("Total quantity: %d\n", totalQty)
	fmt.Printf("Total value:    %.2f\n", totalValue)
	fmt.Printf("Need reorder:   %d\n", len(reorder))
	for _, i := range reorder {
		fmt.Printf("  %d: %s (qty %d, reorder at %d)\n", i.ID, i.Name, i.Quantity, i.ReorderPoint)
	}
	return nil
}
