package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/career-advisor/internal/models"
	"alfredoptarigan/career-advisor/internal/repositories"
)

// GreetingMessage seeds a fresh conversation requested with new=1. Stored as
// an ai message, so it is markup like every other stored reply.
const GreetingMessage = `<p>Hi! I'm your career advisor. Tell me an area you're interested in - for example AI, finance, design, healthcare or law - and we'll explore it together.</p>`

type AdvisorService interface {
	StartConversation(seedGreeting bool) (*models.Conversation, error)
	ProcessTurn(ctx context.Context, conversation *models.Conversation, userInput string) (string, error)
}

type advisorService struct {
	convRepo      repositories.ConversationRepository
	msgRepo       repositories.MessageRepository
	geminiService GeminiService
	formatter     ResponseFormatter
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewAdvisorService(
	convRepo repositories.ConversationRepository,
	msgRepo repositories.MessageRepository,
	geminiService GeminiService,
	formatter ResponseFormatter,
	maxRetries int,
) AdvisorService {
	return &advisorService{
		convRepo:      convRepo,
		msgRepo:       msgRepo,
		geminiService: geminiService,
		formatter:     formatter,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// StartConversation implements AdvisorService. An unseeded conversation starts
// in state new with no messages; a seeded one carries the greeting and waits
// for the user's interest.
func (s *advisorService) StartConversation(seedGreeting bool) (*models.Conversation, error) {
	conversation := &models.Conversation{
		ID:    uuid.New(),
		State: models.StateNew,
	}
	if seedGreeting {
		conversation.State = models.StateAwaitInterest
	}

	if err := s.convRepo.Create(conversation); err != nil {
		return nil, fmt.Errorf("failed to start conversation: %w", err)
	}

	if seedGreeting {
		greeting := &models.Message{
			ID:             uuid.New(),
			ConversationID: conversation.ID,
			Sender:         models.SenderAI,
			Text:           GreetingMessage,
		}
		if err := s.msgRepo.Create(greeting); err != nil {
			return nil, fmt.Errorf("failed to seed greeting: %w", err)
		}
	}

	return conversation, nil
}

// ProcessTurn implements AdvisorService. One synchronous turn: persist the
// user message, fix the title on the first non-empty turn, build the prompt
// the current state calls for, call the model, format and persist the reply,
// then advance the state. A failed model call leaves the conversation where
// it was so the same turn can be retried.
func (s *advisorService) ProcessTurn(ctx context.Context, conversation *models.Conversation, userInput string) (string, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return "", fmt.Errorf("empty user input")
	}

	userMessage := &models.Message{
		ID:             uuid.New(),
		ConversationID: conversation.ID,
		Sender:         models.SenderUser,
		Text:           userInput,
	}
	if err := s.msgRepo.Create(userMessage); err != nil {
		return "", fmt.Errorf("failed to save user message: %w", err)
	}

	if conversation.Title == "" {
		title := truncateRunes(userInput, models.MaxTitleLength)
		if err := s.convRepo.SetTitle(conversation.ID, title); err != nil {
			return "", fmt.Errorf("failed to set title: %w", err)
		}
		conversation.Title = title
	}

	prompt := s.promptBuilder.BuildPromptForTurn(conversation.State, conversation.Title, userInput)

	reply, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, s.maxRetries)
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}

	formatted := s.formatter.Format(reply)

	aiMessage := &models.Message{
		ID:             uuid.New(),
		ConversationID: conversation.ID,
		Sender:         models.SenderAI,
		Text:           formatted,
	}
	if err := s.msgRepo.Create(aiMessage); err != nil {
		return "", fmt.Errorf("failed to save reply: %w", err)
	}

	if next := conversation.State.Next(); next != conversation.State {
		if err := s.convRepo.UpdateState(conversation.ID, next); err != nil {
			return "", fmt.Errorf("failed to advance state: %w", err)
		}
		conversation.State = next
	}

	return formatted, nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}
