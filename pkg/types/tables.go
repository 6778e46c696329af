package types

// SQLite table names for each entity.
const (
	TableAccounts     = "accounts"
	TableItems        = "items"
	TableStockHistory = "stock_history"
	TableCostHistory  = "cost_history"
	TableBOMs         = "boms"
	TableTemplates    = "item_templates"
	TableVendorCache  = "vendor_price_cache"
)

// Tables lists every entity table in creation order.
var Tables = []string{
	TableAccounts,
	TableItems,
	TableStockHistory,
	TableCostHistory,
	TableBOMs,
	TableTemplates,
	TableVendorCache,
}
