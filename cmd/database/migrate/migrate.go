package migration

import (
	"fmt"
	"kitchenpal/entities"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserProfile{}); err != nil {
		log.Fatalf("Error migrating user profile database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PantryItem{}); err != nil {
		log.Fatalf("Error migrating pantry item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.SharedBundle{}); err != nil {
		log.Fatalf("Error migrating shared bundle database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.SharedBundleItem{}); err != nil {
		log.Fatalf("Error migrating shared bundle item database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
