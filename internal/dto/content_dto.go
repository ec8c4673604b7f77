package dto

import (
	"github.com/google/uuid"
)

// ContentUpsertedMessage is the payload published by the external
// content-management collaborator when a content item is created or
// edited. The consumer embeds the text and refreshes the vector index.
type ContentUpsertedMessage struct {
	ContentId uuid.UUID              `json:"content_id"`
	UserId    uuid.UUID              `json:"user_id"`
	Title     string                 `json:"title"`
	Text      string                 `json:"text"`
	Language  string                 `json:"language"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type ContentDeletedMessage struct {
	ContentId uuid.UUID `json:"content_id"`
}
