package database

import (
	"fmt"
	"log"

	"github.com/ARYAMAN170/DontMessIt/config"
	"github.com/ARYAMAN170/DontMessIt/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	host := config.GetEnv("DB_HOST", "localhost")
	user := config.GetEnv("DB_USER", "postgres")
	password := config.GetEnv("DB_PASSWORD", "password")
	dbname := config.GetEnv("DB_NAME", "dontmessit")
	port := config.GetEnv("DB_PORT", "5432")
	sslmode := config.GetEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	log.Println("Database connection established")

	log.Println("Running migrations...")
	err = DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.FoodItem{},
		&models.DailyMenu{},
		&models.MealLog{},
	)
	if err != nil {
		log.Fatal("Migration failed: ", err)
	}
	log.Println("Migrations complete")
}
