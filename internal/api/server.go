package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logisnap/internal/assistant"
	"logisnap/internal/monitoring"
	"logisnap/internal/store"
)

// WarehouseAPI is the main HTTP handler for the warehouse service.
type WarehouseAPI struct {
	Router    *gin.Engine
	Store     store.Store
	Assistant *assistant.Assistant
	Monitor   *monitoring.Monitor

	auth AuthConfig
}

// NewWarehouseAPI creates the API, wires middleware, and registers routes.
func NewWarehouseAPI(st store.Store, asst *assistant.Assistant, mon *monitoring.Monitor, auth AuthConfig) *WarehouseAPI {
	api := &WarehouseAPI{
		Router:    gin.Default(),
		Store:     st,
		Assistant: asst,
		Monitor:   mon,
		auth:      auth,
	}

	if mon != nil {
		api.Router.Use(mon.GinMiddleware())
	}
	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints.
func (w *WarehouseAPI) setupRoutes() {
	// Health check
	w.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "LogiSnap API is running"})
	})

	if w.Assistant != nil {
		w.Router.GET("/ws/chat", w.Assistant.HandleWebSocket)
	}

	api := w.Router.Group("/api")
	if w.auth.Enabled {
		api.Use(AuthMiddleware(w.auth))
	}
	{
		// Product catalog
		api.GET("/products", w.ListProducts)
		api.POST("/products", w.CreateProduct)

		// Inventory
		api.GET("/inventory", w.ListInventory)
		api.GET("/locations", w.ListLocations)

		// Inbound orders
		api.GET("/inbound-orders", w.ListInboundOrders)
		api.GET("/inbound-orders/:id", w.GetInboundOrder)
		api.POST("/inbound-orders/:id/receive", w.ReceiveInboundItem)

		// Billing
		api.GET("/billing/rules", w.ListBillingRules)
		api.POST("/billing/rules", w.CreateBillingRule)
		api.POST("/billing/preview", w.PreviewCharges)
		api.GET("/invoices", w.ListInvoices)

		// Dashboard
		api.GET("/dashboard/stats", w.DashboardStats)

		// Assistant
		api.POST("/chat", w.Chat)
	}
}
