// Shared helpers for partsbin CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

// parseID parses a positional id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: %w", arg, types.ErrInvalidID)
	}
	return id, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// recordStockChange appends a stock ledger entry, logging instead of
// failing the command when the append itself goes wrong: the item
// mutation already happened.
func recordStockChange(e types.StockEntry) {
	if _, err := store.StockHistory.Append(e); err != nil {
		logger.Warn("recording stock change failed",
			zap.Int64("itemId", e.ItemID),
			zap.String("changeType", e.ChangeType),
			zap.Error(err))
	}
}

// recordCostChange appends a cost ledger entry under the same policy.
func recordCostChange(itemID int64, oldValue, newValue float64) {
	if _, err := store.CostHistory.Record(itemID, oldValue, newValue, types.CostSourceManual); err != nil {
		logger.Warn("recording cost change failed",
			zap.Int64("itemId", itemID),
			zap.Error(err))
	}
}

func int64Ptr(v int64) *int64 { return &v }

func float64Ptr(v float64) *float64 { return &v }
