package domain

import "time"

type OrderPlacedEvent struct {
	OrderRef    string    `json:"orderId"`
	OrderID     uint64    `json:"id"`
	UserID      uint64    `json:"userId"`
	TotalAmount float64   `json:"totalAmount"`
	ItemCount   int       `json:"itemCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type OnDemandCreatedEvent struct {
	RequestID   uint64    `json:"requestId"`
	UserID      uint64    `json:"userId"`
	ProductName string    `json:"productName"`
	CreatedAt   time.Time `json:"createdAt"`
}
