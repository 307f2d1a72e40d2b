package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/plantnet/pkg/event"
)

// Adjustment directions.
const (
	Increase = "increase"
	Decrease = "decrease"
)

// InventoryService changes plant stock with single atomic updates.
type InventoryService struct {
	plants PlantStore
	events *event.Dispatcher
}

func NewInventoryService(plants PlantStore, events *event.Dispatcher) *InventoryService {
	return &InventoryService{plants: plants, events: events}
}

// Adjust moves plantID's quantity by delta. direction is "increase" or
// "decrease" (the default). A decrease larger than the current stock
// fails with ErrInsufficientStock and changes nothing.
func (s *InventoryService) Adjust(ctx context.Context, plantID string, delta int, direction string) error {
	direction = strings.ToLower(strings.TrimSpace(direction))
	if direction == "" {
		direction = Decrease
	}
	if direction != Increase && direction != Decrease {
		return fmt.Errorf("unknown direction %q: %w", direction, ErrValidation)
	}
	if delta < 1 {
		return fmt.Errorf("quantity must be positive, got %d: %w", delta, ErrValidation)
	}
	id, err := parseID("plant", plantID)
	if err != nil {
		return err
	}

	var ok bool
	if direction == Increase {
		ok, err = s.plants.Increment(ctx, id, delta)
	} else {
		ok, err = s.plants.Decrement(ctx, id, delta)
	}
	if err != nil {
		return err
	}

	if !ok {
		// Nothing matched: either the plant is gone or it is short.
		if _, err := s.plants.FindByID(ctx, id); err != nil {
			return notFound(err, "plant %s", plantID)
		}
		return fmt.Errorf("plant %s cannot give %d: %w", plantID, delta, ErrInsufficientStock)
	}

	invalidatePlantList(ctx)
	s.events.Fire(ctx, EventInventoryAdjusted, InventoryAdjusted{PlantID: plantID, Delta: delta, Direction: direction})
	return nil
}
