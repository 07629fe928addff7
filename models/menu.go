package models

import "time"

type MenuItem struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	OwnerID   uint              `json:"owner_id" gorm:"not null;index"`
	BranchID  uint              `json:"branch_id" gorm:"not null;index"`
	Name      string            `json:"name" gorm:"not null"`
	Category  string            `json:"category"`
	Chef      string            `json:"chef"` // optional chef assignment
	Variants  []MenuItemVariant `json:"variants,omitempty" gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// MenuItemVariant is one orderable size/portion of a menu item
// ("Half", "Regular", "Full"). An item needs at least one variant to
// be orderable.
type MenuItemVariant struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	MenuItemID   uint      `json:"menu_item_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	CostPrice    float64   `json:"cost_price" gorm:"default:0"`
	SellingPrice float64   `json:"selling_price" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
