package models

import "time"

// CartEntry is one pending (user, product) selection. BuyNow entries share
// this shape but live in their own collection keyed by EntryID alone.
type CartEntry struct {
	EntryID     string    `json:"entryId" bson:"entryid"`
	UserID      string    `json:"userId" bson:"userId"`
	ProductID   string    `json:"productId" bson:"productId"`
	Title       string    `json:"title" bson:"title"`
	ImageURL    string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	UnitPrice   int64     `json:"unitPrice" bson:"unitPrice"` // minor currency units
	Stock       int       `json:"stock" bson:"stock"`         // catalog snapshot at add time
	Category    string    `json:"category" bson:"category"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	AddedAt     time.Time `json:"addedAt" bson:"addedAt"`
}
