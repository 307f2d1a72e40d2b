package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses, in lifecycle order.
const (
	OrderPending   = "Pending"
	OrderShipped   = "Shipped"
	OrderDelivered = "Delivered"
)

var orderRank = map[string]int{
	"pending":   0,
	"shipped":   1,
	"delivered": 2,
}

// OrderStatusRank returns the position of status in the lifecycle. Unknown
// statuses report false. Comparison ignores case.
func OrderStatusRank(status string) (int, bool) {
	r, ok := orderRank[strings.ToLower(strings.TrimSpace(status))]
	return r, ok
}

// CustomerInfo is the buyer snapshot embedded in an order.
type CustomerInfo struct {
	Email   string `bson:"email"   json:"email"`
	Name    string `bson:"name"    json:"name"`
	Image   string `bson:"image"   json:"image"`
	Address string `bson:"address" json:"address"`
}

// Order references its plant by hex id; the plant is not embedded.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PlantID   string             `bson:"plantId"       json:"plantId"`
	Quantity  int                `bson:"quantity"      json:"quantity"`
	Price     float64            `bson:"price"         json:"price"`
	Customer  CustomerInfo       `bson:"customer"      json:"customer"`
	Seller    string             `bson:"seller"        json:"seller"`
	Status    string             `bson:"status"        json:"status"`
	Timestamp time.Time          `bson:"timestamp"     json:"timestamp"`
	// Reserved is the stock taken from the plant at checkout; cancelling
	// gives back exactly this much.
	Reserved int `bson:"reserved" json:"reserved"`
}

// IsDelivered ignores case; older clients wrote "delivered".
func (o Order) IsDelivered() bool {
	return strings.EqualFold(strings.TrimSpace(o.Status), OrderDelivered)
}

// EnrichedOrder is an order with its plant's display fields copied to the
// top level.
type EnrichedOrder struct {
	Order    `bson:",inline"`
	Name     string `bson:"name"     json:"name"`
	ImageURL string `bson:"imageURL" json:"imageURL"`
	Category string `bson:"category" json:"category"`
}
