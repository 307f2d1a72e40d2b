package controllers

import (
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/ctx"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

type OrderController struct {
	orders *services.OrderService
	enrich *services.EnrichmentService
	access *services.AccessService
}

func NewOrderController(orders *services.OrderService, enrich *services.EnrichmentService, access *services.AccessService) *OrderController {
	return &OrderController{orders: orders, enrich: enrich, access: access}
}

// Store handles POST /order.
func (o *OrderController) Store(c *ctx.Context, s session.Session) {
	var in services.OrderInput
	if !c.BindJSON(&in) {
		return
	}
	order, err := o.orders.Place(c.Context(), s, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(order)
}

// CustomerOrders handles GET /customer-orders/{email}.
func (o *OrderController) CustomerOrders(c *ctx.Context, s session.Session) {
	email := c.Param("email")
	if err := o.access.SelfOrAdmin(c.Context(), s, email); err != nil {
		fail(c, err)
		return
	}
	orders, err := o.enrich.CustomerOrders(c.Context(), email)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// SellerOrders handles GET /seller-orders/{email}.
func (o *OrderController) SellerOrders(c *ctx.Context, s session.Session) {
	email := c.Param("email")
	if err := o.access.SelfOrAdmin(c.Context(), s, email); err != nil {
		fail(c, err)
		return
	}
	orders, err := o.enrich.SellerOrders(c.Context(), email)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// UpdateStatus handles PATCH /orders/{id}/status.
func (o *OrderController) UpdateStatus(c *ctx.Context, s session.Session) {
	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if !c.BindJSON(&body) {
		return
	}
	order, err := o.orders.UpdateStatus(c.Context(), s, c.Param("id"), body.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}

// Destroy handles DELETE /orders/{id}.
func (o *OrderController) Destroy(c *ctx.Context, s session.Session) {
	if err := o.orders.Cancel(c.Context(), s, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]bool{"deleted": true})
}
