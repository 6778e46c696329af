package sqlite

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

// Default credentials for a fresh install. The admin account is created
// verified so the first sign-in works without an email round trip.
const (
	seedAdminEmail    = "admin@partsbin.local"
	seedAdminPassword = "admin"
	seedStaffEmail    = "staff@partsbin.local"
	seedStaffPassword = "staff"
)

// seedDefaults populates a brand-new database with a starter admin and
// staff account and a couple of example items. It runs only when both the
// accounts and items tables are empty, so it never touches migrated or
// existing data.
func seedDefaults(accounts *AccountRepo, items *ItemRepo, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	nAccounts, err := accounts.Count()
	if err != nil {
		return err
	}
	nItems, err := items.Count()
	if err != nil {
		return err
	}
	if nAccounts > 0 || nItems > 0 {
		return nil
	}

	if _, err := accounts.CreateAccount(types.Account{
		Email:    seedAdminEmail,
		Role:     types.RoleAdmin,
		Verified: true,
	}, seedAdminPassword); err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}
	if _, err := accounts.CreateAccount(types.Account{
		Email:    seedStaffEmail,
		Role:     types.RoleStaff,
		Verified: true,
	}, seedStaffPassword); err != nil {
		return fmt.Errorf("seeding staff account: %w", err)
	}

	starter := []types.Item{
		{
			Name:      "M3 x 8mm socket cap screw",
			Category:  "Hardware",
			Quantity:  200,
			UnitValue: 0.04,
			Location:  "Bin A1",
		},
		{
			Name:      "10k ohm resistor, 1/4W",
			Category:  "Electronics",
			Quantity:  500,
			UnitValue: 0.01,
			Location:  "Bin C3",
		},
	}
	for _, item := range starter {
		if _, err := items.CreateItem(item); err != nil {
			return fmt.Errorf("seeding item %q: %w", item.Name, err)
		}
	}

	log.Info("seeded default data",
		zap.Int("accounts", 2),
		zap.Int("items", len(starter)))
	return nil
}
