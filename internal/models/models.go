package models

import (
	"time"
)

// User - The person interacting with the system
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'staff'
	CreatedAt    time.Time `json:"created_at"`
}

// StockStatus classifies an item by how much stock is left
type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// SaleType tells whether a sale was drawn from tracked inventory
// or sourced outside the shop entirely.
type SaleType string

const (
	SaleTypeStore      SaleType = "store"
	SaleTypeOutOfStore SaleType = "out_of_store"
)

// Item - The Inventory
type Item struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `json:"name"`
	ShoeType     string      `json:"shoe_type"`
	BasePrice    float64     `json:"base_price"`
	SellingPrice float64     `json:"selling_price"` // list price, not necessarily what it sells for
	Quantity     int         `json:"quantity"`
	Supplier     string      `json:"supplier"`
	Description  string      `json:"description,omitempty"`
	ImageURL     string      `json:"image_url,omitempty"`
	Status       StockStatus `gorm:"size:20" json:"status"`
	AddedByID    uint        `json:"added_by"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Sale - one transaction. Store sales reference an Item; out-of-store
// sales only carry a free-text ItemName and a caller-supplied base price.
type Sale struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ItemID   *uint  `json:"item_id,omitempty"`
	Item     *Item  `gorm:"foreignKey:ItemID" json:"item,omitempty"` // Preload for display
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
	// BasePrice is snapshotted at sale time so later price edits on the
	// item never change historical profit.
	BasePrice     float64   `json:"base_price"`
	SellingPrice  float64   `json:"selling_price"` // actual transacted price
	TotalAmount   float64   `json:"total_amount"`
	Profit        float64   `json:"profit"`
	SaleType      SaleType  `gorm:"size:20" json:"sale_type"`
	ClientPhone   string    `json:"client_phone,omitempty"`
	ClientAddress string    `json:"client_address,omitempty"`
	ClientNotes   string    `json:"client_notes,omitempty"`
	SoldByID      uint      `json:"sold_by"`
	SaleDate      time.Time `json:"sale_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Task - a costed field activity, independent of the inventory
type Task struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ShoeType      string    `json:"shoe_type"`
	SaleLocation  SaleType  `gorm:"size:20" json:"sale_location"`
	BasePrice     float64   `json:"base_price"`
	ProfitGained  float64   `json:"profit_gained"`
	TaxiCost      float64   `json:"taxi_cost"`
	OtherCosts    float64   `json:"other_costs"`
	TotalCost     float64   `json:"total_cost"`
	NetProfit     float64   `json:"net_profit"`
	Supplier      string    `json:"supplier"`
	ClientDetails string    `json:"client_details,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	TaskDate      time.Time `json:"task_date"`
	CreatedByID   uint      `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Reminder - a dated note the dashboard polls for
type Reminder struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ActionAt    time.Time  `json:"action_at"`
	Sent        bool       `json:"sent"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	CreatedByID uint       `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
