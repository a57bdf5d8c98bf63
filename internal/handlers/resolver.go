package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"alfredoptarigan/career-advisor/internal/models"
	"alfredoptarigan/career-advisor/internal/repositories"
	"alfredoptarigan/career-advisor/internal/services"
)

const (
	sessionKeyConversation = "conversation_id"
	sessionKeyUser         = "user_id"
)

// conversationResolver pins the active conversation in the session and works
// out which conversation a request is about: an explicit conversation_id
// switches (and repins), a valid pin is reused, and anything else gets a
// fresh conversation.
type conversationResolver struct {
	convRepo repositories.ConversationRepository
	advisor  services.AdvisorService
	sessions *session.Store
}

func (r *conversationResolver) Resolve(c *fiber.Ctx, forceNew bool) (*models.Conversation, error) {
	sess, err := r.sessions.Get(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if idParam := c.Query("conversation_id"); idParam != "" && !forceNew {
		id, err := uuid.Parse(idParam)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid conversation_id")
		}

		conversation, err := r.convRepo.FindByID(id)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "conversation not found")
		}

		return conversation, r.pin(sess, conversation)
	}

	if !forceNew {
		if pinned, ok := sess.Get(sessionKeyConversation).(string); ok && pinned != "" {
			if id, err := uuid.Parse(pinned); err == nil {
				if conversation, err := r.convRepo.FindByID(id); err == nil {
					return conversation, nil
				}
			}
			// Stale pin: fall through to a fresh conversation.
		}
	}

	conversation, err := r.advisor.StartConversation(forceNew)
	if err != nil {
		return nil, err
	}

	return conversation, r.pin(sess, conversation)
}

func (r *conversationResolver) pin(sess *session.Session, conversation *models.Conversation) error {
	sess.Set(sessionKeyConversation, conversation.ID.String())
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *conversationResolver) Unpin(c *fiber.Ctx) error {
	sess, err := r.sessions.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	sess.Delete(sessionKeyConversation)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}
