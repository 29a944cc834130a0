package models

import "time"

// Delivery statuses. Transitions move only forward:
// Ordered -> On The Way -> Delivered, or Ordered -> Cancelled.
const (
	StatusOrdered   = "Ordered"
	StatusOnTheWay  = "On The Way"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

// Order is a finalized per-product purchase record.
type Order struct {
	OrderID           string    `json:"orderId" bson:"orderid"`
	UserID            string    `json:"userId" bson:"userId"`
	ProductID         string    `json:"productId" bson:"productId"`
	Title             string    `json:"title" bson:"title"`
	ImageURL          string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Category          string    `json:"category" bson:"category"`
	UnitPrice         int64     `json:"unitPrice" bson:"unitPrice"`
	Quantity          int       `json:"quantity" bson:"quantity"`
	Total             int64     `json:"total" bson:"total"` // price*qty + delivery fee + tax
	PaymentMethod     string    `json:"paymentMethod" bson:"paymentMethod"`
	DeliveryStatus    string    `json:"deliveryStatus" bson:"deliveryStatus"`
	OrderDate         string    `json:"orderDate" bson:"orderDate"` // dd-MM-yyyy
	NotificationCount int       `json:"notificationCount" bson:"notificationCount"`
	CreatedAt         time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updatedAt"`
}
