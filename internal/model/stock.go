package model

import (
	"time"

	"gorm.io/gorm"
)

// StockItem is an inventory line as the factory service reports it.
// Available quantity, value and status are derived, never stored.
type StockItem struct {
	ID          ID         `gorm:"type:varchar(64);primaryKey" json:"id"`
	SKU         string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"sku" validate:"required,max=5"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Quantity    Int        `gorm:"default:0" json:"quantity" validate:"gte=0"`
	MinStock    Int        `gorm:"default:0" json:"minStock" validate:"gte=0"`
	Reserved    Int        `gorm:"default:0" json:"reserved" validate:"gte=0"`
	Unit        string     `gorm:"type:varchar(20)" json:"unit" validate:"required"`
	Location    string     `gorm:"type:varchar(120)" json:"location"`
	Category    string     `gorm:"type:varchar(120);index" json:"category" validate:"required"`
	UnitPrice   Amount     `gorm:"type:numeric(14,4);default:0" json:"unitPrice" validate:"gte=0"`
	Supplier    string     `gorm:"type:varchar(255)" json:"supplier,omitempty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	EntryDate   string     `gorm:"type:varchar(10)" json:"entryDate,omitempty" validate:"omitempty,datetime=2006-01-02,not_future"`
	ExpiryDate  string     `gorm:"type:varchar(10)" json:"expiryDate,omitempty" validate:"omitempty,datetime=2006-01-02,not_past"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// TableName specifies the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

func (s *StockItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID("stk")
	}
	return nil
}

func (s *StockItem) BeforeSave(tx *gorm.DB) error {
	now := time.Now().UTC()
	s.LastUpdated = &now
	return nil
}
