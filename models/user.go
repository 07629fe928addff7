package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleAdmin   UserRole = "admin"   // owner: staff/branch management + everything below
	RoleManager UserRole = "manager" // menu, inventory, procurement, reports
	RoleStaff   UserRole = "staff"   // tables, draft orders, checkout
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'staff'"`
	Phone        string    `json:"phone"`
	OwnerID      uint      `json:"owner_id"`  // admin account this user belongs to (self for admins)
	BranchID     uint      `json:"branch_id"` // branch the account works at (0 until assigned)
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
