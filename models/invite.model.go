package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	InviteStatusPending   = "PENDING"
	InviteStatusUsed      = "USED"
	InviteStatusCancelled = "CANCELLED"
	InviteStatusExpired   = "EXPIRED"
)

// Invite is a single-use registration code granting access to a set of courses.
// At most one PENDING invite may exist per email at a time.
type Invite struct {
	gorm.Model
	Code        string                    `json:"code" gorm:"uniqueIndex;not null"` // BASIC-XXXXXX
	Email       string                    `json:"email" gorm:"index;not null"`      // stored lowercase
	CourseIDs   datatypes.JSONSlice[uint] `json:"course_ids"`
	Status      string                    `json:"status" gorm:"default:'PENDING'"` // PENDING, USED, CANCELLED, EXPIRED
	CreatedByID uint                      `json:"created_by_id" gorm:"index"`
	UsedByID    *uint                     `json:"used_by_id"`
	UsedAt      *time.Time                `json:"used_at"`
	ExpiresAt   time.Time                 `json:"expires_at"`
}
