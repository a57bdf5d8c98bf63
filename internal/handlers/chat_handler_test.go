package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/career-advisor/internal/models"
	"alfredoptarigan/career-advisor/internal/services"
)

type fakeConvRepo struct {
	conversations map[uuid.UUID]*models.Conversation
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{conversations: make(map[uuid.UUID]*models.Conversation)}
}

func (r *fakeConvRepo) Create(conversation *models.Conversation) error {
	stored := *conversation
	r.conversations[conversation.ID] = &stored
	return nil
}

func (r *fakeConvRepo) FindByID(id uuid.UUID) (*models.Conversation, error) {
	stored, ok := r.conversations[id]
	if !ok {
		return nil, fmt.Errorf("conversation not found")
	}
	found := *stored
	return &found, nil
}

func (r *fakeConvRepo) SetTitle(id uuid.UUID, title string) error {
	if stored, ok := r.conversations[id]; ok && stored.Title == "" {
		stored.Title = title
	}
	return nil
}

func (r *fakeConvRepo) UpdateState(id uuid.UUID, state models.ConversationState) error {
	stored, ok := r.conversations[id]
	if !ok {
		return fmt.Errorf("conversation not found")
	}
	stored.State = state
	return nil
}

func (r *fakeConvRepo) DeleteAll() (int64, error) {
	n := int64(len(r.conversations))
	r.conversations = make(map[uuid.UUID]*models.Conversation)
	return n, nil
}

type fakeMsgRepo struct {
	messages []models.Message
}

func (r *fakeMsgRepo) Create(message *models.Message) error {
	stored := *message
	stored.CreatedAt = time.Now()
	r.messages = append(r.messages, stored)
	return nil
}

func (r *fakeMsgRepo) ListByConversation(conversationID uuid.UUID) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

type stubGemini struct {
	reply string
	err   error
}

func (s *stubGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func (s *stubGemini) GenerateTextWithRetry(ctx context.Context, prompt string, maxRetries int) (string, error) {
	return s.reply, s.err
}

type chatTestEnv struct {
	app      *fiber.App
	convRepo *fakeConvRepo
	msgRepo  *fakeMsgRepo
}

func newChatTestEnv(gemini services.GeminiService) *chatTestEnv {
	convRepo := newFakeConvRepo()
	msgRepo := &fakeMsgRepo{}
	advisor := services.NewAdvisorService(convRepo, msgRepo, gemini, services.NewResponseFormatter(), 1)
	sessions := session.New()

	handler := NewChatHandler(convRepo, msgRepo, advisor, sessions)

	app := fiber.New()
	app.Get("/api/v1/chat", handler.HandleGetChat)
	app.Post("/api/v1/chat", handler.HandlePostChat)

	return &chatTestEnv{app: app, convRepo: convRepo, msgRepo: msgRepo}
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestGetChatCreatesFreshConversation(t *testing.T) {
	env := newChatTestEnv(&stubGemini{reply: "ok"})

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/chat", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	conv := decodeJSON[models.ConversationResponse](t, resp)
	assert.Equal(t, string(models.StateNew), conv.State)
	assert.Empty(t, conv.Messages)
	assert.Len(t, env.convRepo.conversations, 1)
}

func TestGetChatNewSeedsGreeting(t *testing.T) {
	env := newChatTestEnv(&stubGemini{reply: "ok"})

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/chat?new=1", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	conv := decodeJSON[models.ConversationResponse](t, resp)
	assert.Equal(t, string(models.StateAwaitInterest), conv.State)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, string(models.SenderAI), conv.Messages[0].Sender)
	assert.Equal(t, services.GreetingMessage, conv.Messages[0].Text)
}

func TestGetChatClearDeletesEverything(t *testing.T) {
	env := newChatTestEnv(&stubGemini{reply: "ok"})

	for i := 0; i < 3; i++ {
		require.NoError(t, env.convRepo.Create(&models.Conversation{ID: uuid.New(), State: models.StateDetailed}))
	}

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/chat?clear=1&new=1", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	conv := decodeJSON[models.ConversationResponse](t, resp)
	assert.Equal(t, string(models.StateAwaitInterest), conv.State)
	require.Len(t, conv.Messages, 1)

	// Only the freshly greeted conversation is left.
	assert.Len(t, env.convRepo.conversations, 1)
}

func TestGetChatSwitchByID(t *testing.T) {
	env := newChatTestEnv(&stubGemini{reply: "ok"})

	existing := &models.Conversation{ID: uuid.New(), Title: "AI", State: models.StateDetailed}
	require.NoError(t, env.convRepo.Create(existing))

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/chat?conversation_id="+existing.ID.String(), nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	conv := decodeJSON[models.ConversationResponse](t, resp)
	assert.Equal(t, existing.ID.String(), conv.ID)
	assert.Equal(t, "AI", conv.Title)
}

func TestGetChatUnknownIDIsNotFound(t *testing.T) {
	env := newChatTestEnv(&stubGemini{reply: "ok"})

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/chat?conversation_id="+uuid.NewString(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostChatRunsOneTurn(t *testing.T) {
	env := newChatTestEnv(&stubGemini{reply: "Summary:\nGreat field.\n\nWhich subtopic?"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader([]byte(`{"user_input":"AI"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	chat := decodeJSON[models.ChatResponse](t, resp)
	assert.Equal(t, string(models.StateAskedSubtopics), chat.State)
	assert.Contains(t, chat.Reply, `<h4 class="reply-heading">Summary:</h4>`)

	id, err := uuid.Parse(chat.ConversationID)
	require.NoError(t, err)

	stored, err := env.convRepo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, "AI", stored.Title)
	assert.Equal(t, models.StateAskedSubtopics, stored.State)

	messages, err := env.msgRepo.ListByConversation(id)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, models.SenderUser, messages[0].Sender)
	assert.Equal(t, models.SenderAI, messages[1].Sender)
}

func TestPostChatEmptyInputRejected(t *testing.T) {
	env := newChatTestEnv(&stubGemini{reply: "ok"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader([]byte(`{"user_input":"  "}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostChatModelFailure(t *testing.T) {
	env := newChatTestEnv(&stubGemini{err: fmt.Errorf("upstream down")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader([]byte(`{"user_input":"AI"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	body := decodeJSON[map[string]string](t, resp)
	assert.Contains(t, body["error"], "Error: ")
	assert.Contains(t, body["error"], "upstream down")
}
