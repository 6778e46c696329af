// Account command group for the partsbin CLI.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage user accounts",
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

func init() {
	accountCmd.AddCommand(accountListCmd)
}

func runAccountList(cmd *cobra.Command, args []string) error {
	accounts, err := store.Accounts.GetAll()
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}

	if flagJSON {
		return printJSON(accounts)
	}

	if len(accounts) == 0 {
		fmt.Println("No accounts found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tROLE\tVERIFIED\tSIGN-INS")
	for _, a := range accounts {
		verified := "no"
		if a.Verified {
			verified = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
			a.ID, a.Email, a.Role, verified, a.SignInCount)
	}
	w.Flush()
	fmt.Printf("Total: %d account(s)\n", len(accounts))
	return nil
}
