package types

// Column describes one attribute of an entity: its program-side name
// (camelCase), its storage-side name (snake_case), and whether its value
// is packed into a single JSON text column.
type Column struct {
	Name        string
	StorageName string
	JSON        bool
}

// JSONFields returns the program-side names of the JSON-packed columns.
func JSONFields(cols []Column) []string {
	var fields []string
	for _, c := range cols {
		if c.JSON {
			fields = append(fields, c.Name)
		}
	}
	return fields
}

// ColumnNames returns the program-side names in declaration order.
func ColumnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// AccountColumns describes the accounts table.
var AccountColumns = []Column{
	{"id", "id", false},
	{"email", "email", false},
	{"passwordHash", "password_hash", false},
	{"role", "role", false},
	{"signInCount", "sign_in_count", false},
	{"lastSignInAt", "last_sign_in_at", false},
	{"lastSignInIp", "last_sign_in_ip", false},
	{"verified", "verified", false},
	{"verificationToken", "verification_token", false},
	{"verificationExpires", "verification_expires", false},
	{"createdAt", "created_at", false},
	{"updatedAt", "updated_at", false},
}

// ItemColumns describes the items table.
var ItemColumns = []Column{
	{"id", "id", false},
	{"name", "name", false},
	{"description", "description", false},
	{"model", "model", false},
	{"vendor", "vendor", false},
	{"quantity", "quantity", false},
	{"unitValue", "unit_value", false},
	{"value", "value", false},
	{"picture", "picture", false},
	{"category", "category", false},
	{"location", "location", false},
	{"barcode", "barcode", false},
	{"reorderPoint", "reorder_point", false},
	{"createdAt", "created_at", false},
	{"updatedAt", "updated_at", false},
}

// StockEntryColumns describes the stock_history table.
var StockEntryColumns = []Column{
	{"id", "id", false},
	{"itemId", "item_id", false},
	{"itemName", "item_name", false},
	{"changeType", "change_type", false},
	{"previousQuantity", "previous_quantity", false},
	{"newQuantity", "new_quantity", false},
	{"previousValue", "previous_value", false},
	{"newValue", "new_value", false},
	{"previousCategory", "previous_category", false},
	{"newCategory", "new_category", false},
	{"notes", "notes", false},
	{"userId", "user_id", false},
	{"userEmail", "user_email", false},
	{"timestamp", "timestamp", false},
}

// CostEntryColumns describes the cost_history table.
var CostEntryColumns = []Column{
	{"id", "id", false},
	{"itemId", "item_id", false},
	{"oldValue", "old_value", false},
	{"newValue", "new_value", false},
	{"source", "source", false},
	{"timestamp", "timestamp", false},
}

// BOMColumns describes the boms table. The items column holds the ordered
// component list packed as JSON.
var BOMColumns = []Column{
	{"id", "id", false},
	{"name", "name", false},
	{"description", "description", false},
	{"items", "items", true},
	{"createdAt", "created_at", false},
	{"updatedAt", "updated_at", false},
}

// TemplateColumns describes the item_templates table. defaultFields is a
// partial attribute bag packed as JSON.
var TemplateColumns = []Column{
	{"id", "id", false},
	{"name", "name", false},
	{"category", "category", false},
	{"defaultFields", "default_fields", true},
	{"createdAt", "created_at", false},
	{"updatedAt", "updated_at", false},
}

// VendorPriceColumns describes the vendor_price_cache table.
var VendorPriceColumns = []Column{
	{"id", "id", false},
	{"cacheKey", "cache_key", false},
	{"vendor", "vendor", false},
	{"partNumber", "part_number", false},
	{"price", "price", false},
	{"inStock", "in_stock", false},
	{"stockQuantity", "stock_quantity", false},
	{"vendorUrl", "vendor_url", false},
	{"lastChecked", "last_checked", false},
}
