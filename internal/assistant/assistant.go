package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"logisnap/internal/models"
	"logisnap/internal/schema"
	"logisnap/internal/store"
)

// Apology is the fixed reply returned when the LLM call fails. Provider
// failures degrade to this message; they never propagate to the HTTP layer.
const Apology = "מצטערים, אירעה שגיאה בתקשורת עם ה-AI."

const systemTemplate = `You are "LogiBot", an expert AI assistant for LogiSnap WMS (Israel).
User Language: Hebrew (Always reply in Hebrew unless asked otherwise).
Role: Help warehouse managers find stock, check orders, and understand billing.
Context: You have access to the current warehouse state provided below in JSON format.

Data Context:
%s

Rules:
1. Be concise and professional.
2. If asked about stock, look at the inventorySummary.
3. If asked about incoming orders, look at pendingInbound.
4. Provide specific numbers and locations.`

// Assistant answers questions over a serialized snapshot of warehouse state.
type Assistant struct {
	store    store.Store
	provider Provider
}

// New creates an assistant reading state from the given store.
func New(st store.Store, provider Provider) *Assistant {
	return &Assistant{store: st, provider: provider}
}

type inventoryLine struct {
	SKU      string   `json:"sku"`
	Name     string   `json:"name"`
	Qty      int      `json:"qty"`
	Location string   `json:"location"`
	Status   string   `json:"status"`
	Handling []string `json:"handling,omitempty"`
}

type inboundLine struct {
	Supplier string   `json:"supplier"`
	Items    []string `json:"items"`
}

type snapshot struct {
	InventorySummary []inventoryLine `json:"inventorySummary"`
	PendingInbound   []inboundLine   `json:"pendingInbound"`
	BillingRules     []string        `json:"billingRules"`
}

// Snapshot serializes the warehouse state injected into the system prompt.
func (a *Assistant) Snapshot(ctx context.Context) (string, error) {
	inventory, err := a.store.ListInventory(ctx)
	if err != nil {
		return "", err
	}
	orders, err := a.store.ListInboundOrders(ctx)
	if err != nil {
		return "", err
	}
	rules, err := a.store.ListBillingRules(ctx)
	if err != nil {
		return "", err
	}

	var snap snapshot
	for _, item := range inventory {
		line := inventoryLine{Qty: item.Quantity, Status: item.Status}
		if item.Product != nil {
			line.SKU = item.Product.SKU
			line.Name = item.Product.Name
			line.Handling = schema.Describe(item.Product.CustomAttributes()).Tags()
		}
		if item.Location != nil {
			line.Location = item.Location.Name
		}
		snap.InventorySummary = append(snap.InventorySummary, line)
	}

	for _, order := range orders {
		if order.Status != string(models.InboundPending) {
			continue
		}
		line := inboundLine{Supplier: order.SupplierName}
		for _, item := range order.Items {
			line.Items = append(line.Items, fmt.Sprintf("%s (%d)", item.ProductName, item.ExpectedQty))
		}
		snap.PendingInbound = append(snap.PendingInbound, line)
	}

	for _, rule := range rules {
		snap.BillingRules = append(snap.BillingRules, fmt.Sprintf("%s: %.2f %s", rule.Name, rule.FeeAmount, rule.Currency))
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Chat answers one user prompt. Any failure, snapshot or provider, degrades
// to the fixed apology; ok reports whether the reply is a real answer.
func (a *Assistant) Chat(ctx context.Context, prompt string) (reply string, ok bool) {
	snap, err := a.Snapshot(ctx)
	if err != nil {
		log.Printf("assistant: snapshot failed: %v", err)
		return Apology, false
	}

	reply, err = a.provider.Complete(ctx, fmt.Sprintf(systemTemplate, snap), prompt)
	if err != nil {
		log.Printf("assistant: completion failed: %v", err)
		return Apology, false
	}
	return reply, true
}
