package handler

import (
	"errors"
	"net/http"
	"time"

	"streetbite/internal/model"
	"streetbite/internal/store"
	"streetbite/pkg/logger"
	"streetbite/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SupplierHandler serves supplier browsing, catalog appends and the
// supplier-facing order views
type SupplierHandler struct {
	Store store.Store
}

// NewSupplierHandler creates a SupplierHandler backed by the given store
func NewSupplierHandler(st store.Store) *SupplierHandler {
	return &SupplierHandler{Store: st}
}

// ItemRequest defines the structure for catalog append requests
type ItemRequest struct {
	Name     string  `json:"name"`
	Stock    int     `json:"stock"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Photo    string  `json:"photo"`
}

// ListSuppliers retrieves all suppliers with their items resolved
func (h *SupplierHandler) ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	suppliers, err := h.Store.ListSuppliers(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve suppliers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve suppliers"})
	}

	log.Info("Suppliers retrieved", zap.Int("count", len(suppliers)))
	return c.JSON(http.StatusOK, echo.Map{"suppliers": suppliers})
}

// GetSupplier retrieves one supplier with its items resolved
func (h *SupplierHandler) GetSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("get")

	id := c.Param("supplierId")
	log.Info("Getting supplier by ID", zap.String("supplier_id", id))

	defer prometheus.TrackDBOperation("query")(time.Now())
	supplier, err := h.Store.SupplierByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Supplier not found", zap.String("supplier_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Supplier not found"})
		}
		log.Error("Failed to retrieve supplier", zap.String("supplier_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve supplier"})
	}

	return c.JSON(http.StatusOK, supplier)
}

// AddItem appends a new item to a supplier's catalog
func (h *SupplierHandler) AddItem(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("add_item")

	supplierID := c.Param("supplierId")

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Name == "" {
		log.Warn("Item without a name rejected", zap.String("supplier_id", supplierID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	log.Info("Catalog append request",
		zap.String("supplier_id", supplierID),
		zap.String("name", req.Name),
		zap.Float64("price", req.Price),
		zap.Int("stock", req.Stock))

	item := model.Item{
		Name:     req.Name,
		Stock:    req.Stock,
		Price:    req.Price,
		Category: req.Category,
		Photo:    req.Photo,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.Store.AddItem(c.Request().Context(), supplierID, &item); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Supplier not found for catalog append", zap.String("supplier_id", supplierID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Supplier not found"})
		}
		log.Error("Failed to create item",
			zap.String("supplier_id", supplierID),
			zap.String("name", req.Name),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create item"})
	}

	log.Info("Item created",
		zap.String("item_id", item.ID),
		zap.String("supplier_id", item.SupplierID),
		zap.String("name", item.Name))
	return c.JSON(http.StatusCreated, item)
}

// ListOrders retrieves all orders placed against a supplier, each with
// its item resolved
func (h *SupplierHandler) ListOrders(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOrderOperation("list")

	supplierID := c.Param("supplierId")

	defer prometheus.TrackDBOperation("query")(time.Now())
	orders, err := h.Store.OrdersBySupplier(c.Request().Context(), supplierID)
	if err != nil {
		log.Error("Failed to retrieve orders", zap.String("supplier_id", supplierID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve orders"})
	}

	log.Info("Orders retrieved",
		zap.String("supplier_id", supplierID),
		zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, orders)
}

// StatusRequest defines the structure for order status updates
type StatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus moves an order one step forward through
// Pending -> Shipped -> Delivered; any other transition is rejected
func (h *SupplierHandler) UpdateOrderStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOrderOperation("update_status")

	orderID := c.Param("orderId")

	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	status := model.OrderStatus(req.Status)
	if !status.Valid() {
		log.Warn("Unknown order status rejected",
			zap.String("order_id", orderID),
			zap.String("status", req.Status))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be Pending, Shipped or Delivered"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	order, err := h.Store.OrderByID(c.Request().Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Order not found", zap.String("order_id", orderID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		log.Error("Failed to retrieve order", zap.String("order_id", orderID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update order"})
	}

	if !model.CanTransition(order.Status, status) {
		log.Warn("Illegal status transition rejected",
			zap.String("order_id", orderID),
			zap.String("from", string(order.Status)),
			zap.String("to", string(status)))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "illegal status transition"})
	}

	updated, err := h.Store.UpdateOrderStatus(c.Request().Context(), orderID, status)
	if err != nil {
		log.Error("Failed to update order status", zap.String("order_id", orderID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update order"})
	}

	log.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("status", string(updated.Status)))
	return c.JSON(http.StatusOK, updated)
}
