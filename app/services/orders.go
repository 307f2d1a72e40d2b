package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/pkg/event"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

// OrderInput is the checkout body. The customer email is always taken from
// the session.
type OrderInput struct {
	PlantID  string              `json:"plantId"  validate:"required,hex24"`
	Quantity int                 `json:"quantity" validate:"required,gt=0"`
	Price    float64             `json:"price"    validate:"gte=0"`
	Customer models.CustomerInfo `json:"customer"`
}

// OrderService places orders and guards their lifecycle.
type OrderService struct {
	orders    OrderStore
	plants    PlantStore
	inventory *InventoryService
	access    *AccessService
	events    *event.Dispatcher
	now       func() time.Time
}

func NewOrderService(orders OrderStore, plants PlantStore, inventory *InventoryService, access *AccessService, events *event.Dispatcher) *OrderService {
	return &OrderService{
		orders:    orders,
		plants:    plants,
		inventory: inventory,
		access:    access,
		events:    events,
		now:       time.Now,
	}
}

// Place reserves stock and stores a Pending order for it. A plant without
// enough stock fails with ErrInsufficientStock and no order is written.
func (s *OrderService) Place(ctx context.Context, caller session.Session, in OrderInput) (models.Order, error) {
	pid, err := parseID("plant", in.PlantID)
	if err != nil {
		return models.Order{}, err
	}
	if in.Quantity < 1 {
		return models.Order{}, fmt.Errorf("quantity must be positive: %w", ErrValidation)
	}
	plant, err := s.plants.FindByID(ctx, pid)
	if err != nil {
		return models.Order{}, notFound(err, "plant %s", in.PlantID)
	}

	customer := in.Customer
	customer.Email = caller.Email

	o := models.Order{
		PlantID:   pid.Hex(),
		Quantity:  in.Quantity,
		Price:     in.Price,
		Customer:  customer,
		Seller:    plant.Seller.Email,
		Status:    models.OrderPending,
		Timestamp: s.now().UTC(),
	}
	if err := s.inventory.Adjust(ctx, o.PlantID, in.Quantity, Decrease); err != nil {
		return models.Order{}, err
	}
	o.Reserved = in.Quantity

	if err := s.orders.Create(ctx, &o); err != nil {
		s.restock(ctx, o)
		return models.Order{}, err
	}

	s.events.Fire(ctx, EventOrderPlaced, o)
	return o, nil
}

// Cancel deletes an order that has not been delivered and puts its
// reserved stock back on the plant. Only the buyer or an admin may cancel.
// The delete only matches the status that was checked, so an order that
// is delivered in the meantime survives.
func (s *OrderService) Cancel(ctx context.Context, caller session.Session, orderID string) error {
	id, err := parseID("order", orderID)
	if err != nil {
		return err
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "order %s", orderID)
	}

	if o.Customer.Email != caller.Email && !s.access.IsAdmin(ctx, caller) {
		return fmt.Errorf("order %s does not belong to %s: %w", orderID, caller.Email, ErrUnauthorized)
	}
	if o.IsDelivered() {
		return fmt.Errorf("cannot cancel a delivered order: %w", ErrConflict)
	}

	deleted, err := s.orders.DeleteIfStatus(ctx, id, o.Status)
	if err != nil {
		return err
	}
	if !deleted {
		if _, err := s.orders.FindByID(ctx, id); err != nil {
			return notFound(err, "order %s", orderID)
		}
		return fmt.Errorf("order %s changed concurrently: %w", orderID, ErrConflict)
	}

	s.restock(ctx, o)
	s.events.Fire(ctx, EventOrderCancelled, o)
	return nil
}

// restock returns an order's reserved stock. Orders written before
// reservation existed carry none and restore nothing. Failures are logged
// rather than returned because the order write has already happened.
func (s *OrderService) restock(ctx context.Context, o models.Order) {
	if o.Reserved < 1 {
		return
	}
	err := s.inventory.Adjust(ctx, o.PlantID, o.Reserved, Increase)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrValidation):
		logger.WithCtx(ctx).Warn("orders: restock skipped", "order_id", o.ID.Hex(), "plant_id", o.PlantID, "error", err)
	default:
		logger.WithCtx(ctx).Error("orders: restock failed", "order_id", o.ID.Hex(), "plant_id", o.PlantID, "error", err)
	}
}

// UpdateStatus moves an order one step forward: Pending→Shipped→Delivered.
// Only the order's seller or an admin may do so.
func (s *OrderService) UpdateStatus(ctx context.Context, caller session.Session, orderID, status string) (models.Order, error) {
	id, err := parseID("order", orderID)
	if err != nil {
		return models.Order{}, err
	}
	next, ok := models.OrderStatusRank(status)
	if !ok {
		return models.Order{}, fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}

	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return models.Order{}, notFound(err, "order %s", orderID)
	}
	if o.Seller != caller.Email && !s.access.IsAdmin(ctx, caller) {
		return models.Order{}, fmt.Errorf("order %s is not sold by %s: %w", orderID, caller.Email, ErrUnauthorized)
	}

	cur, ok := models.OrderStatusRank(o.Status)
	if !ok || next != cur+1 {
		return models.Order{}, fmt.Errorf("order %s cannot move from %q to %q: %w", orderID, o.Status, status, ErrConflict)
	}

	to := canonicalStatus(status)
	swapped, err := s.orders.SwapStatus(ctx, id, o.Status, to)
	if err != nil {
		return models.Order{}, err
	}
	if !swapped {
		return models.Order{}, fmt.Errorf("order %s changed concurrently: %w", orderID, ErrConflict)
	}
	o.Status = to
	return o, nil
}

func canonicalStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "pending":
		return models.OrderPending
	case "shipped":
		return models.OrderShipped
	case "delivered":
		return models.OrderDelivered
	}
	return status
}
