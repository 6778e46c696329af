package sqlite

// schemaVersion is the schema the code expects. On open, a stored version
// behind this constant triggers a re-apply of the idempotent DDL and a
// bump of the stored value. Migration is additive only: no column drops or
// renames, ever.
//
// Version ladder:
//
//	1: initial schema
//	2: items.reorder_point, vendor_price_cache.vendor_url
const schemaVersion = 2

// Table DDL. All statements are IF NOT EXISTS so re-applying the full set
// is safe at any version.
const (
	createSchemaInfo = `CREATE TABLE IF NOT EXISTS schema_info (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    version INTEGER NOT NULL
);`

	createAccounts = `CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY,
    email TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'staff',
    sign_in_count INTEGER NOT NULL DEFAULT 0,
    last_sign_in_at TEXT,
    last_sign_in_ip TEXT,
    verified INTEGER NOT NULL DEFAULT 0,
    verification_token TEXT,
    verification_expires TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createItems = `CREATE TABLE IF NOT EXISTS items (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    model TEXT NOT NULL DEFAULT '',
    vendor TEXT NOT NULL DEFAULT '',
    quantity INTEGER NOT NULL DEFAULT 0,
    unit_value REAL NOT NULL DEFAULT 0,
    value REAL NOT NULL DEFAULT 0,
    picture TEXT,
    category TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    barcode TEXT NOT NULL DEFAULT '',
    reorder_point INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createStockHistory = `CREATE TABLE IF NOT EXISTS stock_history (
    id INTEGER PRIMARY KEY,
    item_id INTEGER NOT NULL,
    item_name TEXT NOT NULL,
    change_type TEXT NOT NULL,
    previous_quantity INTEGER,
    new_quantity INTEGER,
    previous_value REAL,
    new_value REAL,
    previous_category TEXT,
    new_category TEXT,
    notes TEXT NOT NULL DEFAULT '',
    user_id INTEGER,
    user_email TEXT,
    timestamp TEXT NOT NULL
);`

	createCostHistory = `CREATE TABLE IF NOT EXISTS cost_history (
    id INTEGER PRIMARY KEY,
    item_id INTEGER NOT NULL,
    old_value REAL NOT NULL,
    new_value REAL NOT NULL,
    source TEXT NOT NULL,
    timestamp TEXT NOT NULL
);`

	createBOMs = `CREATE TABLE IF NOT EXISTS boms (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    items TEXT NOT NULL DEFAULT '[]',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createTemplates = `CREATE TABLE IF NOT EXISTS item_templates (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    default_fields TEXT NOT NULL DEFAULT '{}',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createVendorCache = `CREATE TABLE IF NOT EXISTS vendor_price_cache (
    id INTEGER PRIMARY KEY,
    cache_key TEXT NOT NULL UNIQUE,
    vendor TEXT NOT NULL,
    part_number TEXT NOT NULL,
    price REAL NOT NULL DEFAULT 0,
    in_stock INTEGER NOT NULL DEFAULT 0,
    stock_quantity INTEGER,
    vendor_url TEXT,
    last_checked TEXT NOT NULL
);`
)

// Index DDL.
const (
	idxAccountsEmail      = `CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email ON accounts(email COLLATE NOCASE);`
	idxItemsCategory      = `CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);`
	idxItemsBarcode       = `CREATE INDEX IF NOT EXISTS idx_items_barcode ON items(barcode);`
	idxStockHistoryItem   = `CREATE INDEX IF NOT EXISTS idx_stock_history_item ON stock_history(item_id);`
	idxStockHistoryStamp  = `CREATE INDEX IF NOT EXISTS idx_stock_history_timestamp ON stock_history(timestamp);`
	idxCostHistoryItem    = `CREATE INDEX IF NOT EXISTS idx_cost_history_item ON cost_history(item_id);`
	idxVendorCacheChecked = `CREATE INDEX IF NOT EXISTS idx_vendor_cache_checked ON vendor_price_cache(last_checked);`
)

// schemaDDL lists all CREATE TABLE statements in creation order.
var schemaDDL = []string{
	createSchemaInfo,
	createAccounts,
	createItems,
	createStockHistory,
	createCostHistory,
	createBOMs,
	createTemplates,
	createVendorCache,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxAccountsEmail,
	idxItemsCategory,
	idxItemsBarcode,
	idxStockHistoryItem,
	idxStockHistoryStamp,
	idxCostHistoryItem,
	idxVendorCacheChecked,
}

// additiveDDL holds column additions for databases created before the
// current schema version. ALTER TABLE failures are ignored: the column
// already existing is the normal case.
var additiveDDL = []string{
	`ALTER TABLE items ADD COLUMN reorder_point INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE vendor_price_cache ADD COLUMN vendor_url TEXT`,
}
