// Migration script to hash existing passwords
// cmd/migrate-passwords/main.go
package main

import (
	"log"
	"peer-review-api/config"
	"peer-review-api/models"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	// Get all students
	var students []models.Student
	if err := config.DB.Find(&students).Error; err != nil {
		log.Fatal("Failed to fetch students:", err)
	}

	// Update passwords
	for _, student := range students {
		// Skip if already hashed (bcrypt hashes start with $2)
		if strings.HasPrefix(student.Password, "$2") {
			log.Printf("Student %s already has hashed password, skipping\n", student.NetID)
			continue
		}

		// Registrar seeds plaintext UTD-IDs as initial passwords; hash them
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(student.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Failed to hash password for student %s: %v\n", student.NetID, err)
			continue
		}

		// Update in database
		if err := config.DB.Model(&student).Update("password", string(hashedPassword)).Error; err != nil {
			log.Printf("Failed to update password for student %s: %v\n", student.NetID, err)
			continue
		}

		log.Printf("Successfully updated password for student %s\n", student.NetID)
	}

	log.Println("Password migration completed!")
}
