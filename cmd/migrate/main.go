package main

import (
	"log"
	"os"

	"ai-question-answer-be/internal/model"
	"ai-question-answer-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: no .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: failed to connect to database:", err)
	}

	log.Println("Starting GORM migration...")

	// Extensions first, AutoMigrate cannot create these
	log.Println("Step 1: setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: running AutoMigrate...")
	models := []interface{}{
		&model.Content{},
		&model.UserQuery{},
		&model.QueryResponse{},
		&model.QueryResponseError{},
		&model.Feedback{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// ANN index for cosine search, AutoMigrate only creates btree indexes
	log.Println("Step 3: creating vector index...")
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_contents_embedding
		ON contents USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100);`
	if err := db.Exec(indexSQL).Error; err != nil {
		log.Printf("Warn: failed to create ivfflat index: %v", err)
	}

	log.Println("Migration complete.")
}
