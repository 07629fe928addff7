package models

import "time"

type Branch struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	GSTIN     string    `json:"gstin"` // tax registration printed on bills
	SGSTRate  float64   `json:"sgst_rate" gorm:"default:0"`
	CGSTRate  float64   `json:"cgst_rate" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableStatus follows the table lifecycle: a table with no draft is
// AVAILABLE, one with an open draft is OCCUPIED, and BILLING while a
// checkout is in flight.
type TableStatus string

const (
	TableAvailable TableStatus = "AVAILABLE"
	TableOccupied  TableStatus = "OCCUPIED"
	TableBilling   TableStatus = "BILLING"
)

type DiningTable struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	OwnerID   uint        `json:"owner_id" gorm:"not null;index"`
	BranchID  uint        `json:"branch_id" gorm:"not null;index"`
	Number    int         `json:"number" gorm:"not null"`
	Seats     int         `json:"seats" gorm:"default:4"`
	Status    TableStatus `json:"status" gorm:"not null;default:'AVAILABLE'"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
