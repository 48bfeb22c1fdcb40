package models

import "gorm.io/gorm"

// Review is one user's rating of one course. A (user, course) pair may hold
// at most one review; course aggregates are recomputed on every mutation.
type Review struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_review_user_course"`
	CourseID    uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_review_user_course"`
	Rating      int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"` // 1 to 5
	Comment     string `json:"comment" gorm:"type:text;default:''"`
	IsAnonymous bool   `json:"is_anonymous" gorm:"default:false"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}
