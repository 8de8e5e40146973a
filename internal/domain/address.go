package domain

import "time"

// Address is a saved delivery address. At most one address per user carries
// IsDefault; every path that sets the flag must clear the others first.
type Address struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `json:"userId" gorm:"not null;index"`
	Label       string    `json:"label" gorm:"default:Home"`
	Name        string    `json:"name" gorm:"not null"`
	Phone       string    `json:"phone" gorm:"not null"`
	AddressLine string    `json:"address" gorm:"column:address;not null"`
	City        string    `json:"city" gorm:"not null"`
	Pincode     string    `json:"pincode" gorm:"not null"`
	IsDefault   bool      `json:"is_default" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
