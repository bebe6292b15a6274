package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tracker/src/config"
	"tracker/src/database"
)

// Usage: go run ./migrations [-dir ./migrations/sql] [up|down|status|version|reset]
func main() {
	dir := flag.String("dir", "./migrations/sql", "directory holding the SQL migrations")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	_ = godotenv.Load()
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Fatalf("Error loading config for environment: %v", err)
	}

	db, err := gorm.Open(postgres.Open(database.DSN(&cfg.Databases.SQL)), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB from GORM DB: %v", err)
	}
	defer sqlDB.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}
	if err := goose.RunContext(context.Background(), command, sqlDB, *dir, flag.Args()[min(1, flag.NArg()):]...); err != nil {
		log.Fatalf("goose %s failed: %v", command, err)
	}

	log.Printf("Database migration %q completed successfully", command)
}
