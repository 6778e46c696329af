// BOM command group for the partsbin CLI.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var bomCmd = &cobra.Command{
	Use:   "bom",
	Short: "Manage bills of materials",
}

var bomListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bills of materials",
	Long: `List shows every bill of materials with its line count and its cost
priced against current inventory unit values. Lines whose item no longer
exists are skipped in the costing.

Example:
  partsbin bom list
  partsbin bom list --json`,
	Args: cobra.NoArgs,
	RunE: runBOMList,
}

func init() {
	bomCmd.AddCommand(bomListCmd)
}

func runBOMList(cmd *cobra.Command, args []string) error {
	boms, err := store.BOMs.All()
	if err != nil {
		return fmt.Errorf("list boms: %w", err)
	}

	if flagJSON {
		return printJSON(boms)
	}

	if len(boms) == 0 {
		fmt.Println("No BOMs found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLINES\tCOST")
	for _, b := range boms {
		cost, err := store.BOMs.CostOf(b, store.Items)
		if err != nil {
			return fmt.Errorf("costing bom %d: %w", b.ID, err)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\n", b.ID, b.Name, len(b.Items), cost)
	}
	w.Flush()
	fmt.Printf("Total: %d BOM(s)\n", len(boms))
	return nil
}
