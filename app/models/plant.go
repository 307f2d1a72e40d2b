package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SellerInfo is the seller snapshot embedded in a plant.
type SellerInfo struct {
	Name  string `bson:"name"  json:"name"`
	Image string `bson:"image" json:"image"`
	Email string `bson:"email" json:"email"`
}

// Plant is a listing. Quantity never goes below zero.
type Plant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name"          json:"name"`
	Category    string             `bson:"category"      json:"category"`
	Description string             `bson:"description"   json:"description"`
	Price       float64            `bson:"price"         json:"price"`
	Quantity    int                `bson:"quantity"      json:"quantity"`
	ImageURL    string             `bson:"imageURL"      json:"imageURL"`
	Seller      SellerInfo         `bson:"seller"        json:"seller"`
}

// OwnedBy reports whether email is this plant's seller.
func (p Plant) OwnedBy(email string) bool {
	return email != "" && p.Seller.Email == email
}
