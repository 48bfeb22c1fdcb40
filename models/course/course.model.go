package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course represents a learning course. Rating fields are aggregates
// recomputed from reviews, not a source of truth.
type Course struct {
	gorm.Model
	Title         string         `json:"title"`
	Subtitle      string         `json:"subtitle"`
	Description   string         `json:"description" gorm:"type:text"`
	Instructor    string         `json:"instructor"`
	ImageURL      string         `json:"image_url"`
	ThumbnailURL  string         `json:"thumbnail_url"`
	Benefits      datatypes.JSON `json:"benefits"` // [{title, description}, ...]
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	AverageRating float64        `json:"average_rating" gorm:"default:0"`
	TotalReviews  int            `json:"total_reviews" gorm:"default:0"`
	TotalStudents int            `json:"total_students" gorm:"default:0"`
	IsDeleted     bool           `json:"-" gorm:"default:false"`
}
