package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageSender string

const (
	SenderUser MessageSender = "user"
	SenderAI   MessageSender = "ai"
)

// Message belongs to exactly one conversation. For SenderAI the text is the
// already-formatted markup, never the raw model output.
type Message struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ConversationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"conversation_id"`
	Sender         MessageSender `gorm:"type:varchar(10);not null" json:"sender"`
	Text           string        `gorm:"type:text;not null" json:"text"`
	CreatedAt      time.Time     `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
