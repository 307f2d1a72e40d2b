package services

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/plantnet/app/repositories"
)

// Error taxonomy. Services wrap these with context; controllers map them
// to HTTP status codes with errors.Is.
var (
	ErrUnauthorized      = errors.New("unauthorized access")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientStock = fmt.Errorf("insufficient stock: %w", ErrConflict)
	ErrValidation        = errors.New("validation failed")
	ErrDataIntegrity     = errors.New("data integrity violation")
)

// parseID turns a hex id from a request into an ObjectID.
func parseID(kind, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("malformed %s id %q: %w", kind, hex, ErrValidation)
	}
	return id, nil
}

// notFound maps the repository sentinel onto ErrNotFound and passes every
// other error through.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return err
}
