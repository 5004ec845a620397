// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a marketplace listing. IDs are assigned sequentially from 1 and
// never reused; rows are never deleted, only deactivated. Creator and
// CreatedAt are immutable after listing. TotalSales and TotalRevenue only
// ever grow, and always match the Purchase rows referencing this product.
type Product struct {
	ID           int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatorID    uuid.UUID      `json:"creator_id" gorm:"type:uuid;not null;index"`
	FileURL      string         `json:"file_url" gorm:"size:512"`
	Title        string         `json:"title" gorm:"size:255;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Category     string         `json:"category" gorm:"size:100;index"`
	Tags         pq.StringArray `json:"tags" gorm:"type:text[]"`
	Price        int64          `json:"price" gorm:"type:bigint;not null"`
	IsActive     bool           `json:"is_active" gorm:"default:true;index"`
	TotalSales   int64          `json:"total_sales" gorm:"type:bigint;default:0"`
	TotalRevenue int64          `json:"total_revenue" gorm:"type:bigint;default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Relationships
	Creator   User       `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Purchases []Purchase `json:"purchases,omitempty" gorm:"foreignKey:ProductID"`
}
