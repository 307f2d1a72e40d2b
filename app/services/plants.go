package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/cache"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

const plantListKey = "plants:all"

// PlantInput is the listing a seller submits. Quantity is only read on
// create; afterwards stock moves through the inventory endpoint.
type PlantInput struct {
	Name        string            `json:"name"        validate:"required,max=120"`
	Category    string            `json:"category"    validate:"required,max=60"`
	Description string            `json:"description" validate:"max=2000"`
	Price       float64           `json:"price"       validate:"gte=0"`
	Quantity    int               `json:"quantity"    validate:"gte=0"`
	ImageURL    string            `json:"imageURL"    validate:"nullable,url"`
	Seller      models.SellerInfo `json:"seller"`
}

type PlantService struct {
	plants PlantStore
	access *AccessService
}

func NewPlantService(plants PlantStore, access *AccessService) *PlantService {
	return &PlantService{plants: plants, access: access}
}

// Create stores a new listing owned by the caller, whatever seller email
// the body claims.
func (s *PlantService) Create(ctx context.Context, caller session.Session, in PlantInput) (models.Plant, error) {
	p := models.Plant{
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		ImageURL:    in.ImageURL,
		Seller: models.SellerInfo{
			Name:  in.Seller.Name,
			Image: in.Seller.Image,
			Email: caller.Email,
		},
	}
	if err := s.plants.Create(ctx, &p); err != nil {
		return models.Plant{}, err
	}
	invalidatePlantList(ctx)
	return p, nil
}

// List returns every plant, served from Redis when a fresh copy exists.
func (s *PlantService) List(ctx context.Context) ([]models.Plant, error) {
	var plants []models.Plant
	if cache.Get(ctx, plantListKey, &plants) {
		return plants, nil
	}

	plants, err := s.plants.All(ctx)
	if err != nil {
		return nil, err
	}
	if plants == nil {
		plants = []models.Plant{}
	}
	if err := cache.Set(ctx, plantListKey, plants, config.CacheTTL()); err != nil {
		logger.WithCtx(ctx).Warn("plants: cache fill failed", "error", err)
	}
	return plants, nil
}

func (s *PlantService) Get(ctx context.Context, id string) (models.Plant, error) {
	oid, err := parseID("plant", id)
	if err != nil {
		return models.Plant{}, err
	}
	p, err := s.plants.FindByID(ctx, oid)
	if err != nil {
		return models.Plant{}, notFound(err, "plant %s", id)
	}
	return p, nil
}

// Update rewrites the listing fields of a plant the caller owns.
func (s *PlantService) Update(ctx context.Context, caller session.Session, id string, in PlantInput) (models.Plant, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Plant{}, err
	}
	if !p.OwnedBy(caller.Email) {
		return models.Plant{}, fmt.Errorf("plant %s is not listed by %s: %w", id, caller.Email, ErrUnauthorized)
	}

	p.Name, p.Category, p.Description = in.Name, in.Category, in.Description
	p.Price, p.ImageURL = in.Price, in.ImageURL

	ok, err := s.plants.Update(ctx, p.ID, p)
	if err != nil {
		return models.Plant{}, err
	}
	if !ok {
		return models.Plant{}, fmt.Errorf("plant %s: %w", id, ErrNotFound)
	}
	invalidatePlantList(ctx)
	return p, nil
}

// Delete removes a plant. Sellers may delete their own; admins any.
// Orders that reference it stay and drop out of enrichment.
func (s *PlantService) Delete(ctx context.Context, caller session.Session, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.OwnedBy(caller.Email) && !s.access.IsAdmin(ctx, caller) {
		return fmt.Errorf("plant %s is not listed by %s: %w", id, caller.Email, ErrUnauthorized)
	}

	ok, err := s.plants.Delete(ctx, p.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("plant %s: %w", id, ErrNotFound)
	}
	invalidatePlantList(ctx)
	return nil
}

func invalidatePlantList(ctx context.Context) {
	if err := cache.Del(ctx, plantListKey); err != nil {
		logger.WithCtx(ctx).Warn("plants: cache invalidation failed", "error", err)
	}
}
