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

// OrderHandler serves order placement
type OrderHandler struct {
	Store store.Store
}

// NewOrderHandler creates an OrderHandler backed by the given store
func NewOrderHandler(st store.Store) *OrderHandler {
	return &OrderHandler{Store: st}
}

// PlaceOrderRequest defines the structure for order placement requests
type PlaceOrderRequest struct {
	ItemID string `json:"item_id"`
}

// PlaceOrder creates a Pending order for one item, snapshotting the
// item's supplier at the moment of creation. Stock is informational and
// is not decremented here.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOrderOperation("place")

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse order request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.ItemID == "" {
		log.Warn("Order without item_id rejected")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id is required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	item, err := h.Store.ItemByID(c.Request().Context(), req.ItemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Item not found", zap.String("item_id", req.ItemID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Item not found"})
		}
		log.Error("Failed to retrieve item", zap.String("item_id", req.ItemID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to place order"})
	}

	order := model.Order{
		ItemID:     item.ID,
		SupplierID: item.SupplierID,
		Status:     model.StatusPending,
		CreatedAt:  time.Now(),
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.Store.CreateOrder(c.Request().Context(), &order); err != nil {
		log.Error("Failed to create order", zap.String("item_id", req.ItemID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to place order"})
	}

	log.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("item_id", order.ItemID),
		zap.String("supplier_id", order.SupplierID))
	return c.JSON(http.StatusCreated, order)
}
