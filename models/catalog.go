package models

import "time"

// Product lives in its category bucket collection and, duplicated, in the
// AllProducts aggregate. Stock never goes below zero; OutOfStock is set
// when it reaches zero.
type Product struct {
	ProductID     string    `json:"productId" bson:"productid"`
	Title         string    `json:"title" bson:"title"`
	Description   string    `json:"description" bson:"description"`
	Price         int64     `json:"price" bson:"price"` // unit price, minor units
	Stock         int       `json:"stock" bson:"stock"`
	OutOfStock    bool      `json:"outOfStock" bson:"outOfStock"`
	Category      string    `json:"category" bson:"category"`
	ShopID        string    `json:"shopId,omitempty" bson:"shopId,omitempty"`
	ShopName      string    `json:"shopName,omitempty" bson:"shopName,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	ThumbURL      string    `json:"thumbUrl,omitempty" bson:"thumbUrl,omitempty"`
	AverageRating float64   `json:"averageRating" bson:"averageRating"`
	RatingCount   int       `json:"ratingCount" bson:"ratingCount"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}
