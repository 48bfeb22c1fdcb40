package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	Name                 string     `json:"name" gorm:"default:''"`
	Email                string     `json:"email" gorm:"uniqueIndex;not null"` // stored lowercase
	Password             string     `json:"-" gorm:"not null"`
	Role                 string     `json:"role" gorm:"default:'student'"` // student, admin
	Phone                string     `json:"phone"`
	Address              string     `json:"address"`
	City                 string     `json:"city"`
	Avatar               string     `json:"avatar"`
	IsActive             bool       `json:"is_active" gorm:"default:true"`
	MustChangePassword   bool       `json:"must_change_password" gorm:"default:false"`
	PasswordResetToken   string     `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
	InviteCode           string     `json:"invite_code"` // code consumed at registration
	IsDeleted            bool       `json:"-" gorm:"default:false"`
}
