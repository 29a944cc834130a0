package models

import "time"

// Rating is one user's 1-5 score for a product. At most one per
// (userId, productId), backed by a unique index.
type Rating struct {
	RatingID  string    `json:"ratingId" bson:"ratingid"`
	ProductID string    `json:"productId" bson:"productId"`
	UserID    string    `json:"userId" bson:"userId"`
	UserName  string    `json:"userName" bson:"userName"`
	Value     int       `json:"value" bson:"value"`
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
