package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/career-advisor/internal/models"
)

type ConversationRepository interface {
	Create(conversation *models.Conversation) error
	FindByID(id uuid.UUID) (*models.Conversation, error)
	SetTitle(id uuid.UUID, title string) error
	UpdateState(id uuid.UUID, state models.ConversationState) error
	DeleteAll() (int64, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Create implements ConversationRepository.
func (r *conversationRepository) Create(conversation *models.Conversation) error {
	if err := r.db.Create(conversation).Error; err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}

	return nil
}

// FindByID implements ConversationRepository.
func (r *conversationRepository) FindByID(id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.Where("id = ?", id).First(&conversation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("conversation not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}

	return &conversation, nil
}

// SetTitle implements ConversationRepository. The title is written once, from
// the first non-empty user turn.
func (r *conversationRepository) SetTitle(id uuid.UUID, title string) error {
	result := r.db.Model(&models.Conversation{}).
		Where("id = ? AND (title IS NULL OR title = '')", id).
		Update("title", title)

	if result.Error != nil {
		return fmt.Errorf("failed to set conversation title: %w", result.Error)
	}

	return nil
}

// UpdateState implements ConversationRepository.
func (r *conversationRepository) UpdateState(id uuid.UUID, state models.ConversationState) error {
	result := r.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("state", state)

	if result.Error != nil {
		return fmt.Errorf("failed to update conversation state: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("conversation not found")
	}

	return nil
}

// DeleteAll implements ConversationRepository. Messages go with their
// conversations via the cascade constraint.
func (r *conversationRepository) DeleteAll() (int64, error) {
	result := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Conversation{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete conversations: %w", result.Error)
	}

	return result.RowsAffected, nil
}
