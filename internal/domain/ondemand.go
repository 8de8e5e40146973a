package domain

import "time"

type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestContacted  RequestStatus = "contacted"
	RequestProcessing RequestStatus = "processing"
	RequestFulfilled  RequestStatus = "fulfilled"
	RequestCancelled  RequestStatus = "cancelled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestContacted, RequestProcessing, RequestFulfilled, RequestCancelled:
		return true
	}
	return false
}

// OnDemandRequest is a customer's ask for a product outside the catalog. Its
// lifecycle is independent of orders.
type OnDemandRequest struct {
	ID                     uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID                 uint64        `json:"userId" gorm:"not null;index"`
	CustomerName           string        `json:"customerName"`
	CustomerEmail          string        `json:"customerEmail"`
	ProductName            string        `json:"productName" gorm:"not null"`
	ProductDescription     string        `json:"productDescription"`
	MobileNumber           string        `json:"mobileNumber" gorm:"not null"`
	Address                string        `json:"address" gorm:"not null"`
	EstimatedPrice         float64       `json:"estimatedPrice" gorm:"type:decimal(10,2)"`
	PaymentPreference      string        `json:"paymentPreference" gorm:"not null"`
	AdditionalRequirements string        `json:"additionalRequirements"`
	Status                 RequestStatus `json:"status" gorm:"type:enum('pending','contacted','processing','fulfilled','cancelled');default:'pending'"`
	AdminNotes             string        `json:"adminNotes,omitempty"`
	CreatedAt              time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt              time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}
