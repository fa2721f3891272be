package store

import (
	"context"

	"logisnap/internal/models"
)

// NewDemo returns an in-memory store preloaded with a small demo warehouse,
// used when no database is configured so the API and assistant still have
// state to show.
func NewDemo(policy ReceivingPolicy) Store {
	s := NewMemory(policy).(*memStore)

	products := []models.Product{
		{ID: "p1", SKU: "LGS-001", Name: "Wireless Headphones", Barcode: "8809981", Dimensions: "10x5x5"},
		{ID: "p2", SKU: "LGS-002", Name: "Smart Watch Gen 4", Barcode: "8809982", Dimensions: "5x5x2"},
		{ID: "p3", SKU: "LGS-003", Name: "Mechanical Keyboard", Barcode: "8809983", Dimensions: "40x15x4"},
		{ID: "p4", SKU: "LGS-004", Name: "Gaming Mouse", Barcode: "8809984", Dimensions: "12x7x4"},
	}
	attrs := []map[string]interface{}{
		{"color": "black", "battery_life": "24h"},
		{"color": "silver", "waterproof": true, "storage_condition": "COOLED"},
		{"switch_type": "blue", "layout": "HE", "tracking_type": "SERIAL"},
		{"dpi": 16000, "receiving_workflow": map[string]interface{}{"requires_quality_check": true}},
	}
	for i := range products {
		products[i].SetCustomAttributes(attrs[i])
		if err := s.CreateProduct(context.Background(), &products[i]); err != nil {
			panic("demo seed: " + err.Error())
		}
	}

	s.locations = []models.Location{
		{ID: "l1", Name: "A-01-01", Type: "pick", MaxVolume: 100},
		{ID: "l2", Name: "A-01-02", Type: "pick", MaxVolume: 100},
		{ID: "l3", Name: "B-STORAGE", Type: "storage", MaxVolume: 1000},
		{ID: "l4", Name: "R-DOCK", Type: "receiving", MaxVolume: 5000},
	}

	s.inventory = []models.InventoryItem{
		{ID: "inv1", ProductID: "p1", LocationID: "l1", Quantity: 50, BatchNumber: "B001", ExpiryDate: "2025-12-31", Status: "active"},
		{ID: "inv2", ProductID: "p2", LocationID: "l1", Quantity: 30, BatchNumber: "B002", ExpiryDate: "2026-06-30", Status: "active"},
		{ID: "inv3", ProductID: "p3", LocationID: "l3", Quantity: 150, BatchNumber: "B003", ExpiryDate: "2099-01-01", Status: "quarantine"},
		{ID: "inv4", ProductID: "p1", LocationID: "l3", Quantity: 200, BatchNumber: "B004", ExpiryDate: "2025-11-15", Status: "active"},
	}

	orders := []models.InboundOrder{
		{
			ID: "ord-101", SupplierName: "TechGiant Ltd", Status: "pending", ExpectedDate: "2024-05-20",
			Items: []models.InboundItem{
				{ID: "oi-1", OrderID: "ord-101", ProductID: "p1", ProductName: "Wireless Headphones", ExpectedQty: 100, ReceivedQty: 0},
				{ID: "oi-2", OrderID: "ord-101", ProductID: "p4", ProductName: "Gaming Mouse", ExpectedQty: 50, ReceivedQty: 0},
			},
		},
		{
			ID: "ord-102", SupplierName: "Global Imports", Status: "received", ExpectedDate: "2024-05-15",
			Items: []models.InboundItem{
				{ID: "oi-3", OrderID: "ord-102", ProductID: "p2", ProductName: "Smart Watch Gen 4", ExpectedQty: 200, ReceivedQty: 200},
			},
		},
	}
	for _, o := range orders {
		s.inbound[o.ID] = o
		s.inboundID = append(s.inboundID, o.ID)
	}

	s.rules = []models.BillingRule{
		{ID: "br-1", Name: "Pallet Storage Fee", TriggerEvent: "storage_daily", Condition: `location_type == "storage"`, FeeAmount: 2.50, Currency: "ILS"},
		{ID: "br-2", Name: "Pick Fee (Standard)", TriggerEvent: "picking_order", Condition: "items_count <= 10", FeeAmount: 1.50, Currency: "ILS"},
		{ID: "br-3", Name: "Inbound Handling", TriggerEvent: "inbound_item", Condition: "all", FeeAmount: 0.50, Currency: "ILS"},
	}

	s.invoices = []models.Invoice{
		{ID: "inv-2024-04", CustomerName: "GadgetStore IL", Period: "Apr 2024", Amount: 4500.00, Status: "paid"},
		{ID: "inv-2024-05", CustomerName: "GadgetStore IL", Period: "May 2024", Amount: 1250.50, Status: "open"},
	}

	return s
}
