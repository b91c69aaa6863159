package models

import (
	"time"
)

// UserRole controls access to the admin surfaces
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is the portal's own account record. The auth provider owns
// credentials; we only keep what the dashboard and certificates need.
// Email is the lookup key used by the auth callback (find-or-create).
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Role      UserRole  `json:"role" gorm:"type:varchar(16);default:'user'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
