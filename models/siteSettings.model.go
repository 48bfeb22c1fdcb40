package models

import "gorm.io/gorm"

// SiteSettings holds the editable landing-page copy. A single row keyed
// "default" is created on first read and backfilled when fields are empty.
type SiteSettings struct {
	gorm.Model
	Key string `json:"key" gorm:"uniqueIndex;default:'default'"`

	AboutTag        string `json:"aboutTag"`
	AboutTitle      string `json:"aboutTitle"`
	AboutParagraph1 string `json:"aboutParagraph1" gorm:"type:text"`
	AboutParagraph2 string `json:"aboutParagraph2" gorm:"type:text"`
	AboutImageURL   string `json:"aboutImageUrl"`
	WelcomeImageURL string `json:"welcomeImageUrl"`

	ExperienceYears string `json:"experienceYears"`
	StudentsFormed  string `json:"studentsFormed"`
	AverageRating   string `json:"averageRating"`
	FounderName     string `json:"founderName"`

	CoursesTag         string `json:"coursesTag"`
	CoursesTitle       string `json:"coursesTitle"`
	CarouselButtonText string `json:"carouselButtonText"`

	PhilosophyTitle1 string `json:"philosophyTitle1"`
	PhilosophyDesc1  string `json:"philosophyDesc1"`
	PhilosophyTitle2 string `json:"philosophyTitle2"`
	PhilosophyDesc2  string `json:"philosophyDesc2"`
	PhilosophyTitle3 string `json:"philosophyTitle3"`
	PhilosophyDesc3  string `json:"philosophyDesc3"`
}
