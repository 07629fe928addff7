package models

import "time"

// PaymentMethod accepted at checkout
type PaymentMethod string

const (
	PayCash PaymentMethod = "CASH"
	PayCard PaymentMethod = "CARD"
	PayUPI  PaymentMethod = "UPI"
)

// OrderStatus of a finalized order. Orders are written PAID and never
// mutated afterwards; VOID exists only for administrative correction.
type OrderStatus string

const (
	OrderPaid OrderStatus = "PAID"
	OrderVoid OrderStatus = "VOID"
)

// PendingOrder is the mutable draft attached to a table before
// checkout. At most one exists per table. Totals are denormalized and
// recomputed on every line change. Version increments on every write
// so concurrent devices editing the same table get a conflict instead
// of silently overwriting each other.
type PendingOrder struct {
	ID         uint               `json:"id" gorm:"primaryKey"`
	OwnerID    uint               `json:"owner_id" gorm:"not null;index"`
	BranchID   uint               `json:"branch_id" gorm:"not null;index"`
	TableID    uint               `json:"table_id" gorm:"not null;uniqueIndex"`
	Subtotal   float64            `json:"subtotal"`
	SGSTRate   float64            `json:"sgst_rate"`
	CGSTRate   float64            `json:"cgst_rate"`
	SGSTAmount float64            `json:"sgst_amount"`
	CGSTAmount float64            `json:"cgst_amount"`
	Total      float64            `json:"total"`
	Version    uint               `json:"version" gorm:"not null;default:1"`
	Items      []PendingOrderItem `json:"items,omitempty" gorm:"foreignKey:PendingOrderID"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// PendingOrderItem is one draft line. Identity within a draft is the
// (menu_item_id, variant_id) pair, never the variant name.
type PendingOrderItem struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	PendingOrderID uint `json:"pending_order_id" gorm:"not null;index"`
	MenuItemID     uint `json:"menu_item_id" gorm:"not null"`
	VariantID      uint `json:"variant_id" gorm:"not null"`
	Quantity       int  `json:"quantity" gorm:"not null"`
}

// Order is the immutable record created at checkout. TableID is nil
// for takeaway. Prices and rates are frozen copies of the draft's
// last computed values.
type Order struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	OwnerID       uint          `json:"owner_id" gorm:"not null;index"`
	BranchID      uint          `json:"branch_id" gorm:"not null;index"`
	OrderNumber   string        `json:"order_number" gorm:"uniqueIndex;not null"`
	TableID       *uint         `json:"table_id"`
	Subtotal      float64       `json:"subtotal"`
	SGSTRate      float64       `json:"sgst_rate"`
	CGSTRate      float64       `json:"cgst_rate"`
	SGSTAmount    float64       `json:"sgst_amount"`
	CGSTAmount    float64       `json:"cgst_amount"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"not null;default:'CASH'"`
	Status        OrderStatus   `json:"status" gorm:"not null;default:'PAID'"`
	OrderDate     time.Time     `json:"order_date"`
	Items         []OrderItem   `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// OrderItem captures the sold line at the time of sale. Name and
// prices are snapshots, decoupled from the live variant which may be
// edited or deleted later.
type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"not null;index"`
	MenuItemID uint    `json:"menu_item_id"`
	VariantID  uint    `json:"variant_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	UnitPrice  float64 `json:"unit_price" gorm:"not null"`
	TotalPrice float64 `json:"total_price" gorm:"not null"`
}
