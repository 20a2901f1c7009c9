package models

import (
	"time"

	"gorm.io/gorm"
)

// AppRole is the role a user acts under. Every mutating engine call carries
// an Actor with one of these roles.
type AppRole string

const (
	RoleAdmin  AppRole = "admin"
	RolePilot  AppRole = "pilot"
	RoleClient AppRole = "client"
)

type User struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;not null"`
	Password  string         `gorm:"not null;column:password"`
	FirstName string         `gorm:"not null;column:first_name"`
	LastName  string         `gorm:"not null;column:last_name"`
	Role      AppRole        `gorm:"type:varchar(10);default:client"`
	Active    bool           `gorm:"default:true;column:active"`
	PilotID   *uint          `gorm:"column:pilot_id"`
	ClientID  *uint          `gorm:"column:client_id"`
	CreatedAt time.Time      `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime;column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:deleted_at"`
}

func (User) TableName() string {
	return "users"
}

// Actor identifies who requested a mutation. It comes from the auth
// middleware and is logged with every state change.
type Actor struct {
	UserID uint
	Email  string
	Role   AppRole
}
