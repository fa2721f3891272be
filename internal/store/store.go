package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"logisnap/internal/billing"
	"logisnap/internal/models"
	"logisnap/internal/schema"
)

// Store is the persistence capability the API is handed. The gorm-backed
// store and the in-memory store implement the same interface, so tests and
// the no-database fallback run against the exact surface production uses.
type Store interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error

	ListLocations(ctx context.Context) ([]models.Location, error)
	ListInventory(ctx context.Context) ([]models.InventoryItem, error)

	ListInboundOrders(ctx context.Context) ([]models.InboundOrder, error)
	GetInboundOrder(ctx context.Context, id string) (*models.InboundOrder, error)
	ReceiveInboundItem(ctx context.Context, orderID, itemID string, qty int) (*models.InboundOrder, error)

	ListBillingRules(ctx context.Context) ([]models.BillingRule, error)
	CreateBillingRule(ctx context.Context, r *models.BillingRule) error

	ListInvoices(ctx context.Context) ([]models.Invoice, error)

	Close() error
}

var (
	// ErrNotFound reports a missing record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateSKU reports a product create colliding on the unique
	// business key.
	ErrDuplicateSKU = errors.New("sku already exists in the catalog")
)

// ReceivingPolicy controls inbound receipt edge cases. Whether over-receipt
// is valid is deliberately a configuration decision, not a hard-coded one.
type ReceivingPolicy struct {
	AllowOverReceipt bool
}

// prepareProduct enforces the create invariants shared by every Store
// implementation: a server-side UUID, a non-empty SKU, and an attribute bag
// normalized through the schema layer before it is persisted.
func prepareProduct(p *models.Product) error {
	if strings.TrimSpace(p.SKU) == "" {
		return &schema.ValidationError{Field: "sku", Value: p.SKU}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	rules, err := schema.Normalize(p.CustomAttributes())
	if err != nil {
		return err
	}
	return p.SetCustomAttributes(schema.Project(rules))
}

// prepareBillingRule validates a rule before it is persisted so a bad
// predicate or enum never reaches evaluation.
func prepareBillingRule(r *models.BillingRule) error {
	switch models.TriggerEvent(r.TriggerEvent) {
	case models.TriggerStorageDaily, models.TriggerInboundItem, models.TriggerPickingOrder:
	default:
		return &schema.ValidationError{
			Field:   "trigger_event",
			Value:   r.TriggerEvent,
			Allowed: []string{"storage_daily", "inbound_item", "picking_order"},
		}
	}
	switch models.Currency(r.Currency) {
	case models.CurrencyILS, models.CurrencyUSD:
	default:
		return &schema.ValidationError{
			Field:   "currency",
			Value:   r.Currency,
			Allowed: []string{"ILS", "USD"},
		}
	}
	if r.FeeAmount < 0 {
		return &schema.ValidationError{Field: "fee_amount", Value: r.FeeAmount}
	}
	if err := billing.ValidateCondition(r.Condition); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// applyReceipt adds a received quantity to an inbound line and, once no line
// is short, flips the order to received. The received <= expected steady
// state is only enforced when the policy says so.
func applyReceipt(order *models.InboundOrder, itemID string, qty int, policy ReceivingPolicy) error {
	if qty <= 0 {
		return &schema.ValidationError{Field: "quantity", Value: qty}
	}

	idx := -1
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	item := &order.Items[idx]
	if !policy.AllowOverReceipt && item.ReceivedQty+qty > item.ExpectedQty {
		return &schema.ValidationError{Field: "quantity", Value: item.ReceivedQty + qty}
	}
	item.ReceivedQty += qty

	for _, it := range order.Items {
		if it.Short() {
			return nil
		}
	}
	order.Status = string(models.InboundReceived)
	return nil
}
