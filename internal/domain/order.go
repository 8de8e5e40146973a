package domain

import "time"

type OrderStatus string

const (
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CustomerInfo is the contact/shipping snapshot captured at order time. It is
// frozen into the order row and never follows later address-book edits.
type CustomerInfo struct {
	Name    string `json:"name" gorm:"column:customer_name;not null"`
	Email   string `json:"email" gorm:"column:customer_email;not null"`
	Phone   string `json:"phone" gorm:"column:customer_phone;not null"`
	Address string `json:"address" gorm:"column:customer_address;not null"`
	City    string `json:"city" gorm:"column:customer_city;not null"`
	Pincode string `json:"pincode" gorm:"column:customer_pincode;not null"`
}

type Order struct {
	ID            uint64       `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderRef      string       `json:"orderId" gorm:"column:order_ref;uniqueIndex;not null"`
	UserID        uint64       `json:"userId" gorm:"not null;index"`
	Customer      CustomerInfo `json:"customerInfo" gorm:"embedded"`
	PaymentMethod string       `json:"paymentMethod" gorm:"not null"`
	Subtotal      float64      `json:"subtotal" gorm:"not null;type:decimal(10,2)"`
	DeliveryFee   float64      `json:"deliveryFee" gorm:"type:decimal(10,2)"`
	TotalAmount   float64      `json:"totalAmount" gorm:"not null;type:decimal(10,2)"`
	Status        OrderStatus  `json:"status" gorm:"type:enum('confirmed','processing','shipped','delivered','cancelled');default:'confirmed'"`
	AdminNotes    string       `json:"adminNotes,omitempty"`
	Items         []OrderItem  `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time    `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time    `json:"updatedAt" gorm:"autoUpdateTime"`
}

// OrderItem snapshots product id, name and unit price at order time so
// historical orders stay stable when the catalog changes later.
type OrderItem struct {
	ID           uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID      uint64  `json:"-" gorm:"not null;index"`
	ProductID    uint64  `json:"productId" gorm:"not null"`
	ProductName  string  `json:"name" gorm:"not null"`
	ProductPrice float64 `json:"price" gorm:"not null;type:decimal(10,2)"`
	Quantity     int64   `json:"quantity" gorm:"not null"`
	Total        float64 `json:"total" gorm:"not null;type:decimal(10,2)"`
}
