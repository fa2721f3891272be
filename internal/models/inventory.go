package models

// Location is a physical slot in the warehouse.
type Location struct {
	ID        string  `json:"id" gorm:"primary_key"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	MaxVolume float64 `json:"max_volume"`
}

// LocationType classifies what a location is used for.
type LocationType string

const (
	LocationPick      LocationType = "pick"
	LocationStorage   LocationType = "storage"
	LocationReceiving LocationType = "receiving"
)

// InventoryItem is one on-hand row: a product quantity at one location,
// optionally batch-tracked. A product may have many rows across locations
// and batches.
type InventoryItem struct {
	ID          string `json:"id" gorm:"primary_key"`
	ProductID   string `json:"product_id" gorm:"index"`
	LocationID  string `json:"location_id" gorm:"index"`
	Quantity    int    `json:"quantity"`
	BatchNumber string `json:"batch_number"`
	ExpiryDate  string `json:"expiry_date"`
	Status      string `json:"status"`

	// Joined for display convenience; nil when the reference is dangling.
	Product  *Product  `json:"product,omitempty" gorm:"-"`
	Location *Location `json:"location,omitempty" gorm:"-"`
}

// InventoryStatus represents the state of an inventory row.
type InventoryStatus string

const (
	InventoryActive     InventoryStatus = "active"
	InventoryQuarantine InventoryStatus = "quarantine"
	InventoryPending    InventoryStatus = "pending"
	InventoryShipped    InventoryStatus = "shipped"
)

// Sellable reports whether a row counts toward available quantity.
// Quarantined stock never does.
func (i InventoryItem) Sellable() bool {
	return i.Status == string(InventoryActive)
}
