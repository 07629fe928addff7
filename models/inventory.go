package models

import "time"

type InventoryItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	OwnerID      uint      `json:"owner_id" gorm:"not null;index"`
	BranchID     uint      `json:"branch_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Unit         string    `json:"unit" gorm:"default:'kg'"`
	Quantity     float64   `json:"quantity" gorm:"default:0"`
	ReorderLevel float64   `json:"reorder_level" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Supplier struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;index"`
	BranchID  uint      `json:"branch_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PurchaseStatus of a procurement order
type PurchaseStatus string

const (
	PurchaseOpen     PurchaseStatus = "OPEN"
	PurchaseReceived PurchaseStatus = "RECEIVED"
)

type PurchaseOrder struct {
	ID         uint                `json:"id" gorm:"primaryKey"`
	OwnerID    uint                `json:"owner_id" gorm:"not null;index"`
	BranchID   uint                `json:"branch_id" gorm:"not null;index"`
	SupplierID uint                `json:"supplier_id" gorm:"not null"`
	Supplier   Supplier            `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Status     PurchaseStatus      `json:"status" gorm:"not null;default:'OPEN'"`
	Total      float64             `json:"total"`
	Items      []PurchaseOrderItem `json:"items,omitempty" gorm:"foreignKey:PurchaseOrderID"`
	ReceivedAt *time.Time          `json:"received_at"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

type PurchaseOrderItem struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	PurchaseOrderID uint    `json:"purchase_order_id" gorm:"not null;index"`
	InventoryItemID uint    `json:"inventory_item_id" gorm:"not null"`
	Quantity        float64 `json:"quantity" gorm:"not null"`
	UnitCost        float64 `json:"unit_cost" gorm:"not null"`
}
