package main

import (
	"log"

	"realestate-chatbot-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func intPtr(v int) *int { return &v }

// SeedTrainingData grants the chatbot to an account and gives it a small
// knowledge base. Rows are only inserted when the account has none.
func SeedTrainingData(db *gorm.DB, accountID uuid.UUID) {
	grant := model.AccountFeature{AccountId: accountID, FeatureKey: "chatbot", Enabled: true}
	if err := db.Where(model.AccountFeature{AccountId: accountID, FeatureKey: "chatbot"}).
		FirstOrCreate(&grant).Error; err != nil {
		log.Printf("Error granting chatbot to %s: %v", accountID, err)
	}

	var count int64
	db.Model(&model.TrainingQA{}).Where("account_id = ?", accountID).Count(&count)
	if count > 0 {
		log.Printf("Account %s already has training data, skipping...", accountID)
		return
	}

	qa := []model.TrainingQA{
		{AccountId: accountID, Question: "What are your office hours?", Answer: "We're open Monday to Friday, 9am to 6pm, and Saturdays 10am to 2pm.", Category: "general", Priority: 5},
		{AccountId: accountID, Question: "Tell me about your agency", Answer: "Sunrise Realty is a family-owned brokerage founded in 2009, serving buyers, sellers and renters across the bay area.", Category: "about", Priority: 8},
		{AccountId: accountID, Question: "Do you charge buyers a fee?", Answer: "No, our buyer services are free. Sellers pay a commission agreed at listing.", Category: "fees", Priority: 3},
	}
	files := []model.FileContent{
		{AccountId: accountID, Content: "Our team of twelve licensed agents specializes in waterfront homes and first-time buyers. We also manage long-term rentals.", SourceLabel: "about-us.html", Category: "about", Priority: 4},
	}
	props := []model.Property{
		{AccountId: accountID, Title: "Harbor View Villa", Description: "Modern villa with ocean views", Price: 850000, Location: "Harbor Point", Bedrooms: intPtr(4), Bathrooms: intPtr(3), HasPool: true, Features: datatypes.JSONSlice[string]{"ocean view", "garage"}, URL: "/properties/harbor-view-villa", Priority: 5},
		{AccountId: accountID, Title: "Maple Street Cottage", Description: "Cozy starter home near schools", Price: 320000, Location: "Oakdale", Bedrooms: intPtr(2), Bathrooms: intPtr(1), Features: datatypes.JSONSlice[string]{"garden"}, URL: "/properties/maple-street-cottage", Priority: 2},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&qa).Error; err != nil {
			return err
		}
		if err := tx.Create(&files).Error; err != nil {
			return err
		}
		return tx.Create(&props).Error
	})
	if err != nil {
		log.Printf("Error seeding training data for %s: %v", accountID, err)
		return
	}
	log.Printf("Seeded %d Q&A pairs, %d documents, %d properties for %s", len(qa), len(files), len(props), accountID)
}
