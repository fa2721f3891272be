package models

// InboundOrder is a purchase order expected at the dock.
type InboundOrder struct {
	ID           string        `json:"id" gorm:"primary_key"`
	SupplierName string        `json:"supplier_name"`
	Status       string        `json:"status"`
	ExpectedDate string        `json:"expected_date"`
	Items        []InboundItem `json:"items" gorm:"foreignkey:OrderID"`
}

// InboundOrderStatus represents the lifecycle of an inbound order.
type InboundOrderStatus string

const (
	InboundDraft    InboundOrderStatus = "draft"
	InboundPending  InboundOrderStatus = "pending"
	InboundReceived InboundOrderStatus = "received"
	InboundPutaway  InboundOrderStatus = "putaway"
)

// InboundItem is one expected line on an inbound order.
type InboundItem struct {
	ID          string `json:"id" gorm:"primary_key"`
	OrderID     string `json:"order_id" gorm:"index"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	ExpectedQty int    `json:"expected_qty"`
	ReceivedQty int    `json:"received_qty"`
}

// Short reports whether the line received less than expected.
func (i InboundItem) Short() bool {
	return i.ReceivedQty < i.ExpectedQty
}

// OverReceived reports whether the line received more than expected.
func (i InboundItem) OverReceived() bool {
	return i.ReceivedQty > i.ExpectedQty
}
