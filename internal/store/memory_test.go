package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logisnap/internal/models"
	"logisnap/internal/schema"
)

func TestCreateProductNormalizesAttributes(t *testing.T) {
	s := NewMemory(ReceivingPolicy{})
	ctx := context.Background()

	p := &models.Product{SKU: "LGS-100", Name: "Pallet Jack"}
	require.NoError(t, p.SetCustomAttributes(map[string]interface{}{
		"storage_condition": "FROZEN",
		"color":             "red",
	}))
	require.NoError(t, s.CreateProduct(ctx, p))
	assert.NotEmpty(t, p.ID, "store assigns a server-side id")

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)

	attrs := got.CustomAttributes()
	// Persisted bag is fully populated: defaults filled, unknown keys kept.
	assert.Equal(t, "FROZEN", attrs["storage_condition"])
	assert.Equal(t, "NONE", attrs["hazmat_class"])
	assert.Equal(t, "red", attrs["color"])
	wf, ok := attrs["receiving_workflow"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "NONE", wf["vas_labeling"])
}

func TestCreateProductRejectsBadAttributes(t *testing.T) {
	s := NewMemory(ReceivingPolicy{})
	p := &models.Product{SKU: "LGS-101", Name: "Mystery Box"}
	require.NoError(t, p.SetCustomAttributes(map[string]interface{}{
		"storage_condition": "BOILING",
	}))

	err := s.CreateProduct(context.Background(), p)
	require.Error(t, err)
	_, ok := err.(*schema.ValidationError)
	assert.True(t, ok, "want *schema.ValidationError, got %T", err)

	products, _ := s.ListProducts(context.Background())
	assert.Empty(t, products)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	s := NewMemory(ReceivingPolicy{})
	ctx := context.Background()

	require.NoError(t, s.CreateProduct(ctx, &models.Product{SKU: "LGS-100", Name: "First"}))
	err := s.CreateProduct(ctx, &models.Product{SKU: "LGS-100", Name: "Second"})
	assert.Equal(t, ErrDuplicateSKU, err)
}

func TestCreateProductEmptySKU(t *testing.T) {
	s := NewMemory(ReceivingPolicy{})
	err := s.CreateProduct(context.Background(), &models.Product{Name: "No SKU"})
	require.Error(t, err)
}

func TestCreateBillingRuleValidation(t *testing.T) {
	s := NewMemory(ReceivingPolicy{})
	ctx := context.Background()

	ok := &models.BillingRule{Name: "Pick Fee", TriggerEvent: "picking_order", Condition: "items_count <= 10", FeeAmount: 1.5, Currency: "ILS"}
	require.NoError(t, s.CreateBillingRule(ctx, ok))
	assert.NotEmpty(t, ok.ID)

	bad := []models.BillingRule{
		{TriggerEvent: "full_moon", Condition: "all", Currency: "ILS"},
		{TriggerEvent: "picking_order", Condition: "all", Currency: "GBP"},
		{TriggerEvent: "picking_order", Condition: "items_count <=", Currency: "ILS"},
		{TriggerEvent: "picking_order", Condition: "all", Currency: "ILS", FeeAmount: -1},
	}
	for _, r := range bad {
		rule := r
		assert.Error(t, s.CreateBillingRule(ctx, &rule), "rule %+v", r)
	}
}

func TestReceiveInboundItem(t *testing.T) {
	s := NewDemo(ReceivingPolicy{})
	ctx := context.Background()

	order, err := s.ReceiveInboundItem(ctx, "ord-101", "oi-1", 60)
	require.NoError(t, err)
	assert.Equal(t, 60, order.Items[0].ReceivedQty)
	assert.True(t, order.Items[0].Short())
	assert.Equal(t, "pending", order.Status, "order stays pending while any line is short")

	// Complete both lines; the order flips to received.
	_, err = s.ReceiveInboundItem(ctx, "ord-101", "oi-1", 40)
	require.NoError(t, err)
	order, err = s.ReceiveInboundItem(ctx, "ord-101", "oi-2", 50)
	require.NoError(t, err)
	assert.Equal(t, string(models.InboundReceived), order.Status)
}

func TestReceiveInboundItemOverReceiptPolicy(t *testing.T) {
	ctx := context.Background()

	strict := NewDemo(ReceivingPolicy{AllowOverReceipt: false})
	_, err := strict.ReceiveInboundItem(ctx, "ord-101", "oi-1", 150)
	require.Error(t, err)

	lenient := NewDemo(ReceivingPolicy{AllowOverReceipt: true})
	order, err := lenient.ReceiveInboundItem(ctx, "ord-101", "oi-1", 150)
	require.NoError(t, err)
	assert.True(t, order.Items[0].OverReceived())
}

func TestReceiveInboundItemRejectsNonPositive(t *testing.T) {
	s := NewDemo(ReceivingPolicy{})
	_, err := s.ReceiveInboundItem(context.Background(), "ord-101", "oi-1", 0)
	require.Error(t, err)

	_, err = s.ReceiveInboundItem(context.Background(), "ord-101", "missing", 5)
	assert.Equal(t, ErrNotFound, err)
}

func TestListInventoryJoins(t *testing.T) {
	s := NewDemo(ReceivingPolicy{})
	items, err := s.ListInventory(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, items)

	for _, item := range items {
		require.NotNil(t, item.Product, "demo rows all resolve their product")
		require.NotNil(t, item.Location)
	}
}

func TestListInventoryToleratesDanglingRefs(t *testing.T) {
	s := NewMemory(ReceivingPolicy{}).(*memStore)
	s.inventory = []models.InventoryItem{
		{ID: "x", ProductID: "ghost", LocationID: "nowhere", Quantity: 1, Status: "active"},
	}

	items, err := s.ListInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Product)
	assert.Nil(t, items[0].Location)
}
