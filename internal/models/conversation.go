package models

import (
	"time"

	"github.com/google/uuid"
)

// ConversationState tracks conversation progress:
// new -> await_interest -> asked_subtopics -> detailed.
type ConversationState string

const (
	StateNew            ConversationState = "new"
	StateAwaitInterest  ConversationState = "await_interest"
	StateAskedSubtopics ConversationState = "asked_subtopics"
	StateDetailed       ConversationState = "detailed"
)

// MaxTitleLength caps the title taken from the first user turn.
const MaxTitleLength = 200

// Next returns the state a conversation moves to after one user turn.
// new and await_interest are equivalent entry points; detailed is terminal.
func (s ConversationState) Next() ConversationState {
	switch s {
	case StateNew, StateAwaitInterest:
		return StateAskedSubtopics
	default:
		return StateDetailed
	}
}

type Conversation struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title     string            `gorm:"type:varchar(200)" json:"title"`
	State     ConversationState `gorm:"type:varchar(30);not null;default:'new'" json:"state"`
	CreatedAt time.Time         `gorm:"type:timestamp;default:now()" json:"created_at"`

	// Relations
	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Conversation) TableName() string {
	return "conversations"
}
