package controllers

import (
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/ctx"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

type PlantController struct {
	plants    *services.PlantService
	inventory *services.InventoryService
}

func NewPlantController(plants *services.PlantService, inventory *services.InventoryService) *PlantController {
	return &PlantController{plants: plants, inventory: inventory}
}

// Store handles POST /plant.
func (p *PlantController) Store(c *ctx.Context, s session.Session) {
	var in services.PlantInput
	if !c.BindJSON(&in) {
		return
	}
	plant, err := p.plants.Create(c.Context(), s, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(plant)
}

// Index handles GET /plants.
func (p *PlantController) Index(c *ctx.Context) {
	plants, err := p.plants.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(plants)
}

// Show handles GET /plants/{id}.
func (p *PlantController) Show(c *ctx.Context) {
	plant, err := p.plants.Get(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(plant)
}

// Update handles PUT /plants/{id}.
func (p *PlantController) Update(c *ctx.Context, s session.Session) {
	var in services.PlantInput
	if !c.BindJSON(&in) {
		return
	}
	plant, err := p.plants.Update(c.Context(), s, c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(plant)
}

// Destroy handles DELETE /plants/{id}.
func (p *PlantController) Destroy(c *ctx.Context, s session.Session) {
	if err := p.plants.Delete(c.Context(), s, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]bool{"deleted": true})
}

// AdjustQuantity handles PATCH /plants/quantity/{id}.
func (p *PlantController) AdjustQuantity(c *ctx.Context, _ session.Session) {
	var body struct {
		QuantityToUpdate int    `json:"quantityToUpdate" validate:"required,gt=0"`
		Status           string `json:"status"           validate:"nullable,in=increase,decrease"`
	}
	if !c.BindJSON(&body) {
		return
	}

	if err := p.inventory.Adjust(c.Context(), c.Param("id"), body.QuantityToUpdate, body.Status); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]bool{"updated": true})
}
