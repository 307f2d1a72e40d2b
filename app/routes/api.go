package routes

import (
	"context"

	"github.com/shashiranjanraj/plantnet/app/controllers"
	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/ctx"
	"github.com/shashiranjanraj/plantnet/pkg/rbac"
	"github.com/shashiranjanraj/plantnet/pkg/router"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

// Pinger reports whether the document store is reachable.
type Pinger func(context.Context) error

// RegisterAPI mounts every plantNet endpoint on r.
func RegisterAPI(r *router.Router, svc *services.Registry, sessions *session.Manager, ping Pinger) {
	auth := controllers.NewAuthController(sessions)
	users := controllers.NewUserController(svc.Users)
	plants := controllers.NewPlantController(svc.Plants, svc.Inventory)
	orders := controllers.NewOrderController(svc.Orders, svc.Enrichment, svc.Access)

	authed := sessions.Required
	admin := rbac.Require(svc.Access, models.RoleAdmin)
	seller := rbac.Require(svc.Access, models.RoleSeller)
	sellerOrAdmin := rbac.Require(svc.Access, models.RoleSeller, models.RoleAdmin)

	r.Get("/health", "health", ctx.Wrap(health(ping)))

	// Session
	r.Post("/jwt", "auth.token", ctx.Wrap(auth.IssueToken))
	r.Get("/logout", "auth.logout", ctx.Wrap(auth.Logout))

	// Users
	r.Post("/users/{email}", "users.save", ctx.Wrap(users.Save))
	r.Get("/user/role/{email}", "users.role", ctx.Wrap(users.Role))
	r.Patch("/user/{email}", "users.request-seller", authed(users.RequestSeller))
	r.Get("/all-users/{email}", "users.index", authed(admin(users.Index)))
	r.Patch("/user-role/{email}", "users.update-role", authed(admin(users.UpdateRole)))

	// Plants
	r.Post("/plant", "plants.store", authed(seller(plants.Store)))
	r.Get("/plants", "plants.index", ctx.Wrap(plants.Index))
	r.Get("/plants/{id}", "plants.show", ctx.Wrap(plants.Show))
	r.Put("/plants/{id}", "plants.update", authed(seller(plants.Update)))
	r.Delete("/plants/{id}", "plants.destroy", authed(sellerOrAdmin(plants.Destroy)))
	r.Patch("/plants/quantity/{id}", "plants.quantity", authed(plants.AdjustQuantity))

	// Orders
	r.Post("/order", "orders.store", authed(orders.Store))
	r.Get("/customer-orders/{email}", "orders.customer", authed(orders.CustomerOrders))
	r.Get("/seller-orders/{email}", "orders.seller", authed(seller(orders.SellerOrders)))
	r.Patch("/orders/{id}/status", "orders.status", authed(orders.UpdateStatus))
	r.Delete("/orders/{id}", "orders.destroy", authed(orders.Destroy))
}

func health(ping Pinger) ctx.HandlerFunc {
	return func(c *ctx.Context) {
		store := "up"
		if ping != nil {
			if err := ping(c.Context()); err != nil {
				c.Log().Warn("health: store unreachable", "error", err)
				store = "down"
			}
		}
		c.Success(map[string]string{"status": "ok", "store": store})
	}
}
