package tools

// Set groups the per-domain tool sets bound to one commerce client.
type Set struct {
	Product   []Tool
	Stock     []Tool
	Category  []Tool
	Order     []Tool
	Shipment  []Tool
	Invoice   []Tool
	Customer  []Tool
	Directory []Tool
}

// NewSet builds every wrapper against the given client.
func NewSet(c sender) *Set {
	return &Set{
		Product:   ProductTools(c),
		Stock:     StockTools(c),
		Category:  CategoryTools(c),
		Order:     OrderTools(c),
		Shipment:  ShipmentTools(c),
		Invoice:   InvoiceTools(c),
		Customer:  CustomerTools(c),
		Directory: DirectoryTools(c),
	}
}
