package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ai-question-answer-be/internal/config"
	"ai-question-answer-be/internal/entity"
	"ai-question-answer-be/internal/repository/unitofwork"
	"ai-question-answer-be/pkg/database"
	"ai-question-answer-be/pkg/embedding"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// seedContent is one entry of the seed file. The file is a JSON array
// so content sets can be exported from other deployments directly.
type seedContent struct {
	UserId   string                 `json:"user_id"`
	Title    string                 `json:"title"`
	Text     string                 `json:"text"`
	Language string                 `json:"language"`
	Metadata map[string]interface{} `json:"metadata"`
}

func main() {
	filePath := flag.String("file", "contents.json", "path to the seed JSON file")
	flag.Parse()

	cfg := config.Load()

	color.Cyan("Seeding contents from %s", *filePath)

	raw, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("failed to read seed file: %v", err)
	}
	var seeds []seedContent
	if err := json.Unmarshal(raw, &seeds); err != nil {
		log.Fatalf("failed to parse seed file: %v", err)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	uowFactory := unitofwork.NewRepositoryFactory(db)

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "openai" {
		provider = embedding.NewOpenAIProvider(cfg.Ai.EmbeddingAPIKey, cfg.Ai.EmbeddingModel, 768)
	} else {
		provider = embedding.NewOllamaProvider(cfg.Ai.EmbeddingBaseURL, cfg.Ai.EmbeddingModel, 768)
	}

	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	inserted := 0
	tenants := make(map[uuid.UUID]bool)
	for i, seed := range seeds {
		userId, err := uuid.Parse(seed.UserId)
		if err != nil {
			color.Red("[%d] invalid user_id %q: %v", i, seed.UserId, err)
			continue
		}

		document := fmt.Sprintf("%s\n%s", seed.Title, seed.Text)
		vector, err := provider.Generate(ctx, document)
		if err != nil {
			color.Red("[%d] embedding failed for %q: %v", i, seed.Title, err)
			continue
		}

		now := time.Now()
		content := entity.Content{
			Id:        uuid.New(),
			UserId:    userId,
			Title:     seed.Title,
			Text:      seed.Text,
			Language:  seed.Language,
			Metadata:  seed.Metadata,
			Embedding: vector,
			CreatedAt: now,
			UpdatedAt: &now,
		}
		if err := uow.ContentRepository().Upsert(ctx, &content); err != nil {
			color.Red("[%d] insert failed for %q: %v", i, seed.Title, err)
			continue
		}

		color.Green("[%d] seeded %q", i, seed.Title)
		inserted++
		tenants[userId] = true
	}

	color.Cyan("Done: %d/%d contents seeded", inserted, len(seeds))
	for userId := range tenants {
		total, err := uow.ContentRepository().Count(ctx, userId)
		if err != nil {
			color.Red("count failed for tenant %s: %v", userId, err)
			continue
		}
		color.Cyan("tenant %s now has %d contents", userId, total)
	}
}
