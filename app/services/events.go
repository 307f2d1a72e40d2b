package services

import (
	"context"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/pkg/event"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
)

// Domain events.
const (
	EventOrderPlaced       = "order.placed"
	EventOrderCancelled    = "order.cancelled"
	EventInventoryAdjusted = "inventory.adjusted"
)

// InventoryAdjusted is the payload of EventInventoryAdjusted.
type InventoryAdjusted struct {
	PlantID   string
	Delta     int
	Direction string
}

// RegisterListeners wires the metric and audit-log listeners onto d.
func RegisterListeners(d *event.Dispatcher) {
	d.Listen(EventOrderPlaced, func(ctx context.Context, p any) {
		o, _ := p.(models.Order)
		metrics.OrdersPlaced.Inc()
		logger.WithCtx(ctx).Info("order placed", "order_id", o.ID.Hex(), "plant_id", o.PlantID, "quantity", o.Quantity)
	})
	d.Listen(EventOrderCancelled, func(ctx context.Context, p any) {
		o, _ := p.(models.Order)
		metrics.OrdersCancelled.Inc()
		logger.WithCtx(ctx).Info("order cancelled", "order_id", o.ID.Hex(), "plant_id", o.PlantID)
	})
	d.Listen(EventInventoryAdjusted, func(ctx context.Context, p any) {
		a, _ := p.(InventoryAdjusted)
		metrics.InventoryAdjustments.WithLabelValues(a.Direction).Inc()
		logger.WithCtx(ctx).Debug("inventory adjusted", "plant_id", a.PlantID, "delta", a.Delta, "direction", a.Direction)
	})
}
