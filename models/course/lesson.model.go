package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson is a single unit of content within a module. Lessons unlock
// sequentially: in the flattened module/lesson ordering of a course,
// lesson i is accessible only once lesson i-1 is completed.
type Lesson struct {
	gorm.Model
	CourseID              uint                        `json:"course_id" gorm:"index;not null"`
	ModuleID              uint                        `json:"module_id" gorm:"index;not null"`
	Title                 string                      `json:"title"`
	Description           string                      `json:"description"`
	ContentType           string                      `json:"content_type" gorm:"default:'VIDEO'"` // VIDEO, TEXT, QUIZ
	VideoURL              string                      `json:"video_url"`
	ThumbnailURL          string                      `json:"thumbnail_url"`
	Duration              int                         `json:"duration"` // minutes
	TextContent           string                      `json:"text_content" gorm:"type:text"`
	Quiz                  datatypes.JSON              `json:"quiz"` // {questions: [...], minPassScore}
	SupplementaryMaterial datatypes.JSONSlice[string] `json:"supplementary_material"`
	OrderIndex            int                         `json:"order_index" gorm:"default:0"` // Order within module
	IsDeleted             bool                        `json:"-" gorm:"default:false"`
}
