package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

// Seller-request statuses. An empty status means no request was made.
const (
	UserStatusRequested = "Requested"
	UserStatusVerified  = "Verified"
)

// User is created on first login and never deleted.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email"         json:"email"`
	Name      string             `bson:"name"          json:"name"`
	Image     string             `bson:"image"         json:"image"`
	Role      string             `bson:"role"          json:"role"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	Timestamp time.Time          `bson:"timestamp"     json:"timestamp"`
}

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r string) bool {
	return r == RoleCustomer || r == RoleSeller || r == RoleAdmin
}
