package store

import (
	"context"
	"sync"

	"logisnap/internal/models"
)

// memStore is a mutex-guarded in-memory Store. It backs tests and the
// no-database fallback; it is injected like any other Store, never reached
// through package globals.
type memStore struct {
	mu     sync.RWMutex
	policy ReceivingPolicy

	products map[string]models.Product
	order    []string // product insertion order

	locations []models.Location
	inventory []models.InventoryItem
	inbound   map[string]models.InboundOrder
	inboundID []string
	rules     []models.BillingRule
	invoices  []models.Invoice
}

// NewMemory returns an empty in-memory store.
func NewMemory(policy ReceivingPolicy) Store {
	return &memStore{
		policy:   policy,
		products: make(map[string]models.Product),
		inbound:  make(map[string]models.InboundOrder),
	}
}

func (s *memStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out, nil
}

func (s *memStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *memStore) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := prepareProduct(p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.SKU == p.SKU {
			return ErrDuplicateSKU
		}
	}
	s.products[p.ID] = *p
	s.order = append(s.order, p.ID)
	return nil
}

func (s *memStore) ListLocations(ctx context.Context) ([]models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Location(nil), s.locations...), nil
}

func (s *memStore) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byLocation := make(map[string]*models.Location, len(s.locations))
	for i := range s.locations {
		byLocation[s.locations[i].ID] = &s.locations[i]
	}

	out := make([]models.InventoryItem, len(s.inventory))
	for i, item := range s.inventory {
		if p, ok := s.products[item.ProductID]; ok {
			prod := p
			item.Product = &prod
		}
		item.Location = byLocation[item.LocationID]
		out[i] = item
	}
	return out, nil
}

func (s *memStore) ListInboundOrders(ctx context.Context) ([]models.InboundOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.InboundOrder, 0, len(s.inboundID))
	for _, id := range s.inboundID {
		out = append(out, cloneOrder(s.inbound[id]))
	}
	return out, nil
}

func (s *memStore) GetInboundOrder(ctx context.Context, id string) (*models.InboundOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.inbound[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := cloneOrder(order)
	return &c, nil
}

func (s *memStore) ReceiveInboundItem(ctx context.Context, orderID, itemID string, qty int) (*models.InboundOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.inbound[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	c := cloneOrder(order)
	if err := applyReceipt(&c, itemID, qty, s.policy); err != nil {
		return nil, err
	}
	s.inbound[orderID] = cloneOrder(c)
	return &c, nil
}

func (s *memStore) ListBillingRules(ctx context.Context) ([]models.BillingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.BillingRule(nil), s.rules...), nil
}

func (s *memStore) CreateBillingRule(ctx context.Context, r *models.BillingRule) error {
	if err := prepareBillingRule(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, *r)
	return nil
}

func (s *memStore) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Invoice(nil), s.invoices...), nil
}

func (s *memStore) Close() error {
	return nil
}

func cloneOrder(o models.InboundOrder) models.InboundOrder {
	o.Items = append([]models.InboundItem(nil), o.Items...)
	return o
}
