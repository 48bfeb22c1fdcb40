package settingsController

import (
	"basic/database"
	"basic/middleware"
	"basic/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func defaultSettings() models.SiteSettings {
	return models.SiteSettings{
		Key:                "default",
		AboutTag:           "Sobre a Basic Studio",
		AboutTitle:         "Formando Nail Artists em Portugal",
		AboutParagraph1:    "A Basic nasceu do desejo de elevar o nível profissional do mercado de unhas.",
		AboutParagraph2:    "Nossos cursos não ensinam apenas a \"fazer unhas\". Ensinamos você a construir uma carreira sólida.",
		AboutImageURL:      "https://images.unsplash.com/photo-1580618672591-eb180b1a973f?auto=format&fit=crop&w=800&q=80",
		WelcomeImageURL:    "",
		ExperienceYears:    "10+",
		StudentsFormed:     "5k+",
		AverageRating:      "4.9",
		FounderName:        "Cris Souza",
		CoursesTag:         "MASTERCLASS SERIES",
		CoursesTitle:       "Formações de Elite",
		CarouselButtonText: "DESCUBRA O MODO BASIC",
		PhilosophyTitle1:   "EXCLUSIVIDADE",
		PhilosophyDesc1:    "Metodologias únicas desenhadas para elevar o seu padrão profissional.",
		PhilosophyTitle2:   "MAESTRIA",
		PhilosophyDesc2:    "O domínio técnico aliado ao olhar artístico.",
		PhilosophyTitle3:   "LEGADO",
		PhilosophyDesc3:    "Não formamos apenas técnicos, construímos carreiras sólidas.",
	}
}

// loadSettings fetches the default row, creating it on first access and
// filling any field an older row is missing.
func loadSettings(db *gorm.DB) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := db.Where("key = ?", "default").First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = defaultSettings()
		if err := db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}

	defaults := defaultSettings()
	changed := false
	backfill := func(field *string, value string) {
		if *field == "" {
			*field = value
			changed = true
		}
	}
	backfill(&settings.AboutTag, defaults.AboutTag)
	backfill(&settings.AboutTitle, defaults.AboutTitle)
	backfill(&settings.AboutParagraph1, defaults.AboutParagraph1)
	backfill(&settings.AboutParagraph2, defaults.AboutParagraph2)
	backfill(&settings.AboutImageURL, defaults.AboutImageURL)
	backfill(&settings.ExperienceYears, defaults.ExperienceYears)
	backfill(&settings.StudentsFormed, defaults.StudentsFormed)
	backfill(&settings.AverageRating, defaults.AverageRating)
	backfill(&settings.FounderName, defaults.FounderName)
	backfill(&settings.CoursesTag, defaults.CoursesTag)
	backfill(&settings.CoursesTitle, defaults.CoursesTitle)
	backfill(&settings.CarouselButtonText, defaults.CarouselButtonText)
	backfill(&settings.PhilosophyTitle1, defaults.PhilosophyTitle1)
	backfill(&settings.PhilosophyDesc1, defaults.PhilosophyDesc1)
	backfill(&settings.PhilosophyTitle2, defaults.PhilosophyTitle2)
	backfill(&settings.PhilosophyDesc2, defaults.PhilosophyDesc2)
	backfill(&settings.PhilosophyTitle3, defaults.PhilosophyTitle3)
	backfill(&settings.PhilosophyDesc3, defaults.PhilosophyDesc3)

	if changed {
		if err := db.Save(&settings).Error; err != nil {
			return nil, err
		}
	}

	return &settings, nil
}

func GetSettings(c *fiber.Ctx) error {
	settings, err := loadSettings(database.Database.Db)
	if err != nil {
		log.Printf("Error loading site settings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch settings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings fetched successfully.", settings)
}

// UpdateSettings applies a partial update to the default row. Unknown fields
// in the body are ignored.
func UpdateSettings(c *fiber.Ctx) error {
	var reqData map[string]interface{}
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	settings, err := loadSettings(db)
	if err != nil {
		log.Printf("Error loading site settings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update settings!", nil)
	}

	columns := map[string]string{
		"aboutTag":           "about_tag",
		"aboutTitle":         "about_title",
		"aboutParagraph1":    "about_paragraph1",
		"aboutParagraph2":    "about_paragraph2",
		"aboutImageUrl":      "about_image_url",
		"welcomeImageUrl":    "welcome_image_url",
		"experienceYears":    "experience_years",
		"studentsFormed":     "students_formed",
		"averageRating":      "average_rating",
		"founderName":        "founder_name",
		"coursesTag":         "courses_tag",
		"coursesTitle":       "courses_title",
		"carouselButtonText": "carousel_button_text",
		"philosophyTitle1":   "philosophy_title1",
		"philosophyDesc1":    "philosophy_desc1",
		"philosophyTitle2":   "philosophy_title2",
		"philosophyDesc2":    "philosophy_desc2",
		"philosophyTitle3":   "philosophy_title3",
		"philosophyDesc3":    "philosophy_desc3",
	}

	updates := make(map[string]interface{})
	for field, value := range reqData {
		column, known := columns[field]
		if !known {
			continue
		}
		text, isString := value.(string)
		if !isString {
			continue
		}
		updates[column] = text
	}

	if len(updates) > 0 {
		if err := db.Model(settings).Updates(updates).Error; err != nil {
			log.Printf("Error updating site settings: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update settings!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings updated successfully.", settings)
}

// ResetSettings drops the stored row and recreates it from the defaults.
func ResetSettings(c *fiber.Ctx) error {
	db := database.Database.Db

	if err := db.Unscoped().Where("key = ?", "default").Delete(&models.SiteSettings{}).Error; err != nil {
		log.Printf("Error resetting site settings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset settings!", nil)
	}

	settings, err := loadSettings(db)
	if err != nil {
		log.Printf("Error loading site settings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset settings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings reset successfully.", settings)
}
