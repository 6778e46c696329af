// Vendor command group: vendor price cache maintenance.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var purgeAll bool

var vendorCmd = &cobra.Command{
	Use:   "vendor",
	Short: "Manage the vendor price cache",
}

var vendorPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge stale vendor price cache entries",
	Long: `Purge removes cached vendor prices older than the configured max
age, or the whole cache with --all.

Example:
  partsbin vendor purge
  partsbin vendor purge --all`,
	Args: cobra.NoArgs,
	RunE: runVendorPurge,
}

func init() {
	vendorPurgeCmd.Flags().BoolVar(&purgeAll, "all", false, "remove every cached entry, not just expired ones")
	vendorCmd.AddCommand(vendorPurgeCmd)
}

func runVendorPurge(cmd *cobra.Command, args []string) error {
	var n int64
	var err error
	if purgeAll {
		n, err = store.VendorCache.Clear()
	} else {
		n, err = store.PurgeExpiredVendorPrices()
	}
	if err != nil {
		return fmt.Errorf("purge vendor cache: %w", err)
	}
	fmt.Printf("Purged %d vendor price entr(y/ies)\n", n)
	return nil
}
