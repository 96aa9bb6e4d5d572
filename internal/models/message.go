package models

import (
	"time"

	"github.com/google/uuid"
)

// Message - одно сообщение в ленте спарка. DisplayName уже разрешен
// на момент записи: ник, гостевая метка или анонимная метка.
type Message struct {
	ID          uuid.UUID `json:"id"`
	SparkID     uuid.UUID `json:"spark_id"`
	Text        string    `json:"text"`
	DisplayName string    `json:"display_name"`
	Anonymous   bool      `json:"anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}
