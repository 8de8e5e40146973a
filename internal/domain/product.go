package domain

import "time"

type Product struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"not null;index"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null;type:decimal(10,2)"`
	Category    string    `json:"category" gorm:"not null;index"`
	Image       string    `json:"image"`
	Unit        string    `json:"unit" gorm:"default:piece"`
	InStock     bool      `json:"in_stock" gorm:"not null;default:true"`
	Stock       int64     `json:"stock" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
