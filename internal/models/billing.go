package models

// BillingRule charges a fee when its condition matches a triggering event.
// Rules are independent of one another; no ordering or priority applies when
// several match the same event.
type BillingRule struct {
	ID           string  `json:"id" gorm:"primary_key"`
	Name         string  `json:"name"`
	TriggerEvent string  `json:"trigger_event"`
	Condition    string  `json:"condition"`
	FeeAmount    float64 `json:"fee_amount"`
	Currency     string  `json:"currency"`
}

// TriggerEvent categorizes the business event a billing rule reacts to.
type TriggerEvent string

const (
	TriggerStorageDaily TriggerEvent = "storage_daily"
	TriggerInboundItem  TriggerEvent = "inbound_item"
	TriggerPickingOrder TriggerEvent = "picking_order"
)

// Currency codes the billing engine accepts.
type Currency string

const (
	CurrencyILS Currency = "ILS"
	CurrencyUSD Currency = "USD"
)

// Invoice is a billed period for a customer.
type Invoice struct {
	ID           string  `json:"id" gorm:"primary_key"`
	CustomerName string  `json:"customer_name"`
	Period       string  `json:"period"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
}

// InvoiceStatus represents the payment state of an invoice.
type InvoiceStatus string

const (
	InvoicePaid InvoiceStatus = "paid"
	InvoiceOpen InvoiceStatus = "open"
)
