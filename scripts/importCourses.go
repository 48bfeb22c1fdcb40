package main

import (
	"basic/config"
	"basic/database"
	courseModels "basic/models/course"
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"
)

// Bulk imports a course structure from Courses.csv. Expected columns:
// course_title, module_title, module_order, lesson_title, lesson_order,
// content_type, video_url, duration. Rows sharing a course/module title
// reuse the already created record.
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("Courses.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	field := func(row []string, name string) string {
		index, found := headerIndex[name]
		if !found || index >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[index])
	}

	db := database.Database.Db

	courseIDs := make(map[string]uint)
	moduleIDs := make(map[string]uint)

	inserted := 0
	skipped := 0

	for i, row := range records[1:] {
		courseTitle := field(row, "course_title")
		moduleTitle := field(row, "module_title")
		lessonTitle := field(row, "lesson_title")
		if courseTitle == "" || moduleTitle == "" || lessonTitle == "" {
			log.Printf("Skipping row %d: missing titles", i+1)
			skipped++
			continue
		}

		courseID, found := courseIDs[courseTitle]
		if !found {
			var course courseModels.Course
			err := db.Where("title = ? AND is_deleted = ?", courseTitle, false).First(&course).Error
			if err != nil {
				course = courseModels.Course{Title: courseTitle, IsActive: false}
				if err := db.Create(&course).Error; err != nil {
					log.Fatalf("Failed to create course %q: %v", courseTitle, err)
				}
				log.Printf("Created course %q (id %d)", courseTitle, course.ID)
			}
			courseID = course.ID
			courseIDs[courseTitle] = courseID
		}

		moduleKey := courseTitle + "/" + moduleTitle
		moduleID, found := moduleIDs[moduleKey]
		if !found {
			moduleOrder, _ := strconv.Atoi(field(row, "module_order"))
			var module courseModels.Module
			err := db.Where("course_id = ? AND title = ? AND is_deleted = ?", courseID, moduleTitle, false).First(&module).Error
			if err != nil {
				module = courseModels.Module{CourseID: courseID, Title: moduleTitle, OrderIndex: moduleOrder}
				if err := db.Create(&module).Error; err != nil {
					log.Fatalf("Failed to create module %q: %v", moduleTitle, err)
				}
			}
			moduleID = module.ID
			moduleIDs[moduleKey] = moduleID
		}

		var existing courseModels.Lesson
		if err := db.Where("module_id = ? AND title = ? AND is_deleted = ?", moduleID, lessonTitle, false).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		lessonOrder, _ := strconv.Atoi(field(row, "lesson_order"))
		duration, _ := strconv.Atoi(field(row, "duration"))
		contentType := field(row, "content_type")
		if contentType == "" {
			contentType = "VIDEO"
		}

		lesson := courseModels.Lesson{
			CourseID:    courseID,
			ModuleID:    moduleID,
			Title:       lessonTitle,
			ContentType: contentType,
			VideoURL:    field(row, "video_url"),
			Duration:    duration,
			OrderIndex:  lessonOrder,
		}
		if err := db.Create(&lesson).Error; err != nil {
			log.Fatalf("Failed to create lesson %q: %v", lessonTitle, err)
		}
		inserted++
	}

	log.Printf("Import finished: %d lessons inserted, %d skipped, %d courses touched",
		inserted, skipped, len(courseIDs))
}
