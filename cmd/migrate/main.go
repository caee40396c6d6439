package main

import (
	"log"
	"os"

	"realestate-chatbot-be/internal/model"
	"realestate-chatbot-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	// gen_random_uuid() lives in pgcrypto before Postgres 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		// Capability gate
		&model.Feature{},
		&model.AccountFeature{},
		// Training data
		&model.TrainingQA{},
		&model.FileContent{},
		&model.Property{},
		// Conversation log and leads
		&model.ConversationTurn{},
		&model.Lead{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Creating views...")
	postMigrationSQL := []string{
		`CREATE OR REPLACE VIEW lead_summary AS
		 SELECT l.account_id, count(*) AS leads,
		        count(*) FILTER (WHERE l.email <> '') AS with_email,
		        count(*) FILTER (WHERE l.phone <> '') AS with_phone,
		        max(l.updated_at) AS last_captured_at
		 FROM leads l
		 GROUP BY l.account_id;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed.")
}
