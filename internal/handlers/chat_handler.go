package handlers

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"alfredoptarigan/career-advisor/internal/models"
	"alfredoptarigan/career-advisor/internal/repositories"
	"alfredoptarigan/career-advisor/internal/services"
)

type ChatHandler struct {
	convRepo repositories.ConversationRepository
	msgRepo  repositories.MessageRepository
	advisor  services.AdvisorService
	resolver *conversationResolver
}

func NewChatHandler(
	convRepo repositories.ConversationRepository,
	msgRepo repositories.MessageRepository,
	advisor services.AdvisorService,
	sessions *session.Store,
) *ChatHandler {
	return &ChatHandler{
		convRepo: convRepo,
		msgRepo:  msgRepo,
		advisor:  advisor,
		resolver: &conversationResolver{
			convRepo: convRepo,
			advisor:  advisor,
			sessions: sessions,
		},
	}
}

// HandleGetChat handles GET /chat. Query params: clear=1 deletes every
// conversation, new=1 starts a fresh greeted conversation, conversation_id
// switches. With none of those the session-pinned conversation is returned,
// created on demand.
func (h *ChatHandler) HandleGetChat(c *fiber.Ctx) error {
	if c.Query("clear") != "" {
		deleted, err := h.convRepo.DeleteAll()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to clear conversations",
			})
		}
		log.Printf("🧹 Cleared %d conversations\n", deleted)

		if err := h.resolver.Unpin(c); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to reset session",
			})
		}
	}

	conversation, err := h.resolver.Resolve(c, c.Query("new") != "")
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			return e
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to resolve conversation",
		})
	}

	messages, err := h.msgRepo.ListByConversation(conversation.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load messages",
		})
	}

	response := models.ConversationResponse{
		ID:       conversation.ID.String(),
		Title:    conversation.Title,
		State:    string(conversation.State),
		Messages: make([]models.MessageData, 0, len(messages)),
	}
	for _, m := range messages {
		response.Messages = append(response.Messages, models.MessageData{
			Sender:    string(m.Sender),
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
		})
	}

	return c.JSON(response)
}

// HandlePostChat handles POST /chat: one user turn against the current
// conversation.
func (h *ChatHandler) HandlePostChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.UserInput) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_input is required",
		})
	}

	conversation, err := h.resolver.Resolve(c, false)
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			return e
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to resolve conversation",
		})
	}

	reply, err := h.advisor.ProcessTurn(c.Context(), conversation, req.UserInput)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("Error: %v", err),
		})
	}

	return c.JSON(models.ChatResponse{
		Reply:          reply,
		ConversationID: conversation.ID.String(),
		State:          string(conversation.State),
	})
}
