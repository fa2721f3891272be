package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logisnap/internal/billing"
	"logisnap/internal/models"
	"logisnap/internal/schema"
	"logisnap/internal/store"
)

// Product catalog handlers

func (w *WarehouseAPI) ListProducts(c *gin.Context) {
	products, err := w.Store.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (w *WarehouseAPI) CreateProduct(c *gin.Context) {
	var req struct {
		SKU              string                 `json:"sku"`
		Name             string                 `json:"name"`
		Barcode          string                 `json:"barcode"`
		Dimensions       string                 `json:"dimensions"`
		CustomAttributes map[string]interface{} `json:"custom_attributes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		SKU:        req.SKU,
		Name:       req.Name,
		Barcode:    req.Barcode,
		Dimensions: req.Dimensions,
	}
	if req.CustomAttributes == nil {
		req.CustomAttributes = map[string]interface{}{}
	}
	if err := product.SetCustomAttributes(req.CustomAttributes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := w.Store.CreateProduct(c.Request.Context(), &product); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Inventory handlers

type inventoryRow struct {
	models.InventoryItem
	Facets schema.Facets `json:"facets"`
	Tags   []string      `json:"handling_tags,omitempty"`
}

func (w *WarehouseAPI) ListInventory(c *gin.Context) {
	items, err := w.Store.ListInventory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rows := make([]inventoryRow, len(items))
	for i, item := range items {
		row := inventoryRow{InventoryItem: item}
		if item.Product != nil {
			facets := schema.Describe(item.Product.CustomAttributes())
			row.Facets = facets
			row.Tags = facets.Tags()
		} else {
			// Dangling product reference renders as an empty facet,
			// never a failure.
			row.Facets = schema.Describe(map[string]interface{}{})
		}
		rows[i] = row
	}
	c.JSON(http.StatusOK, rows)
}

func (w *WarehouseAPI) ListLocations(c *gin.Context) {
	locations, err := w.Store.ListLocations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, locations)
}

// Inbound order handlers

func (w *WarehouseAPI) ListInboundOrders(c *gin.Context) {
	orders, err := w.Store.ListInboundOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (w *WarehouseAPI) GetInboundOrder(c *gin.Context) {
	order, err := w.Store.GetInboundOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (w *WarehouseAPI) ReceiveInboundItem(c *gin.Context) {
	var req struct {
		ItemID   string `json:"item_id"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := w.Store.ReceiveInboundItem(c.Request.Context(), c.Param("id"), req.ItemID, req.Quantity)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Billing handlers

func (w *WarehouseAPI) ListBillingRules(c *gin.Context) {
	rules, err := w.Store.ListBillingRules(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rules)
}

func (w *WarehouseAPI) CreateBillingRule(c *gin.Context) {
	var rule models.BillingRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := w.Store.CreateBillingRule(c.Request.Context(), &rule); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// PreviewCharges evaluates every stored rule against the posted events.
// Summing matched charges per currency is this endpoint's policy; the
// evaluator itself never aggregates.
func (w *WarehouseAPI) PreviewCharges(c *gin.Context) {
	var req struct {
		Events []struct {
			Kind   string                 `json:"kind"`
			Fields map[string]interface{} `json:"fields"`
		} `json:"events"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rules, err := w.Store.ListBillingRules(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var all []billing.Charge
	totals := make(map[string]float64)
	for _, ev := range req.Events {
		charges, err := billing.EvaluateAll(rules, billing.EventContext{Kind: ev.Kind, Fields: ev.Fields})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for _, charge := range charges {
			all = append(all, charge)
			totals[charge.Currency] += charge.Amount
		}
	}

	if w.Monitor != nil {
		w.Monitor.RecordCharges(len(all))
	}
	c.JSON(http.StatusOK, gin.H{"charges": all, "totals": totals})
}

func (w *WarehouseAPI) ListInvoices(c *gin.Context) {
	invoices, err := w.Store.ListInvoices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// Dashboard handlers

func (w *WarehouseAPI) DashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := w.Store.ListProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	inventory, err := w.Store.ListInventory(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	orders, err := w.Store.ListInboundOrders(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invoices, err := w.Store.ListInvoices(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var available, quarantined int
	for _, item := range inventory {
		if item.Sellable() {
			available += item.Quantity
		}
		if item.Status == string(models.InventoryQuarantine) {
			quarantined += item.Quantity
		}
	}

	pendingInbound := 0
	for _, order := range orders {
		if order.Status == string(models.InboundPending) {
			pendingInbound++
		}
	}

	var openInvoices float64
	for _, inv := range invoices {
		if inv.Status == string(models.InvoiceOpen) {
			openInvoices += inv.Amount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"active_skus":         len(products),
		"available_units":     available,
		"quarantined_units":   quarantined,
		"pending_inbound":     pendingInbound,
		"open_invoices_total": openInvoices,
	})
}

// Assistant handlers

func (w *WarehouseAPI) Chat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if w.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}

	reply, ok := w.Assistant.Chat(c.Request.Context(), req.Message)
	if w.Monitor != nil {
		w.Monitor.RecordChat(!ok)
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// writeStoreError maps storage errors onto HTTP statuses: validation
// failures are the client's fault, missing records are 404s.
func writeStoreError(c *gin.Context, err error) {
	switch {
	case err == store.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case err == store.ErrDuplicateSKU:
		c.JSON(http.StatusBadRequest, gin.H{"error": "SKU already exists in the catalog"})
	default:
		if _, ok := err.(*schema.ValidationError); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
