// History command group: stock ledger queries.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

var (
	histItemID int64
	histType   string
	histFrom   string
	histTo     string
	histUserID int64
	histLimit  int64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the stock change ledger",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stock ledger entries",
	Long: `List shows stock ledger entries, newest first, filtered by any
combination of item, change type, date range, and user. Dates are
YYYY-MM-DD; the end date is inclusive.

Example:
  partsbin history list --item 7
  partsbin history list --type adjusted --from 2026-01-01 --to 2026-03-31
  partsbin history list --limit 20`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate the stock ledger",
	Long: `Stats aggregates the filtered ledger: entry counts per change type
and the net quantity delta.

Example:
  partsbin history stats
  partsbin history stats --item 7 --from 2026-01-01`,
	Args: cobra.NoArgs,
	RunE: runHistoryStats,
}

func init() {
	for _, c := range []*cobra.Command{historyListCmd, historyStatsCmd} {
		c.Flags().Int64Var(&histItemID, "item", 0, "filter by item id")
		c.Flags().StringVar(&histType, "type", "", "filter by change type")
		c.Flags().StringVar(&histFrom, "from", "", "start date (YYYY-MM-DD)")
		c.Flags().StringVar(&histTo, "to", "", "end date, inclusive (YYYY-MM-DD)")
		c.Flags().Int64Var(&histUserID, "user", 0, "filter by user id")
	}
	historyListCmd.Flags().Int64Var(&histLimit, "limit", 0, "maximum number of entries (0 = no limit)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
}

// historyFilter builds the ledger filter from the shared flags.
func historyFilter() (types.StockFilter, error) {
	f := types.StockFilter{
		ItemID:     histItemID,
		ChangeType: histType,
		UserID:     histUserID,
	}
	var err error
	if histFrom != "" {
		if f.From, err = time.Parse("2006-01-02", histFrom); err != nil {
			return f, fmt.Errorf("invalid --from date %q", histFrom)
		}
	}
	if histTo != "" {
		if f.To, err = time.Parse("2006-01-02", histTo); err != nil {
			return f, fmt.Errorf("invalid --to date %q", histTo)
		}
	}
	return f, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	f, err := historyFilter()
	if err != nil {
		return err
	}

	var entries []types.StockEntry
	if f == (types.StockFilter{}) && histLimit > 0 {
		entries, err = store.StockHistory.Recent(histLimit)
	} else {
		entries, err = store.StockHistory.Filtered(f)
		if err == nil && histLimit > 0 && int64(len(entries)) > histLimit {
			entries = entries[:histLimit]
		}
	}
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if flagJSON {
		return printJSON(entries)
	}
	printHistoryTable(entries)
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	f, err := historyFilter()
	if err != nil {
		return err
	}
	stats, err := store.StockHistory.Stats(f)
	if err != nil {
		return fmt.Errorf("history stats: %w", err)
	}

	if flagJSON {
		return printJSON(stats)
	}
	fmt.Printf("Entries: %d\n", stats.Total)
	for change, n := range stats.CountsByType {
		fmt.Printf("  %-18s %d\n", change, n)
	}
	fmt.Printf("Net quantity delta: %+d\n", stats.NetQuantityDelta)
	return nil
}

func printHistoryTable(entries []types.StockEntry) {
	if len(entries) == 0 {
		fmt.Println("No ledger entries found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tITEM\tCHANGE\tQTY\tNOTES")
	for _, e := range entries {
		qty := ""
		if e.PreviousQuantity != nil || e.NewQuantity != nil {
			qty = fmt.Sprintf("%s -> %s", qtyStr(e.PreviousQuantity), qtyStr(e.NewQuantity))
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Timestamp.Format("2006-01-02 15:04"),
			e.ItemName,
			e.ChangeType,
			qty,
			e.Notes)
	}
	w.Flush()
	fmt.Printf("Total: %d entr(y/ies)\n", len(entries))
}

func qtyStr(v *int64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
