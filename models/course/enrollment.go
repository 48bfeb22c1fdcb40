package course

import "gorm.io/gorm"

// Enrollment grants a user access to a course. A row exists only when a
// consumed invite granted the course or an admin explicitly added it.
// Progress is a last-write-wins percentage maintained independently of
// the completed-lesson set.
type Enrollment struct {
	gorm.Model
	UserID    uint    `json:"user_id" gorm:"index;not null"`
	CourseID  uint    `json:"course_id" gorm:"index;not null"`
	Progress  float64 `json:"progress" gorm:"default:0"` // Completion percentage (0-100)
	IsDeleted bool    `json:"-" gorm:"default:false"`
}

// LessonCompletion records that a user finished a lesson. The unique index
// on (user, lesson) makes completion idempotent.
type LessonCompletion struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_completion_user_lesson"`
	LessonID uint `json:"lesson_id" gorm:"index;not null;uniqueIndex:idx_completion_user_lesson"`
	CourseID uint `json:"course_id" gorm:"index;not null"`
}
