package main

import (
	"log"
	"os"

	"realestate-chatbot-be/internal/model"
	"realestate-chatbot-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Feature Catalog...")

	features := []model.Feature{
		{Key: "chatbot", Name: "Website Chatbot", Description: "AI assistant embedded on the agency website", IsActive: true},
		{Key: "lead_capture", Name: "Lead Capture", Description: "Store visitor contact details gathered in chat", IsActive: true},
	}

	for _, f := range features {
		var existing model.Feature
		if err := db.Where("key = ?", f.Key).First(&existing).Error; err == nil {
			log.Printf("Feature '%s' already exists, skipping...", f.Key)
			continue
		}

		if err := db.Create(&f).Error; err != nil {
			log.Printf("Error creating feature '%s': %v", f.Key, err)
		} else {
			log.Printf("Created feature: %s (%s)", f.Name, f.Key)
		}
	}

	// Demo training data is opt-in per account
	if raw := os.Getenv("SEED_ACCOUNT_ID"); raw != "" {
		accountID, err := uuid.Parse(raw)
		if err != nil {
			log.Fatalf("Error: SEED_ACCOUNT_ID is not a uuid: %v", err)
		}
		SeedTrainingData(db, accountID)
	}

	log.Println("Seeding completed!")
}
