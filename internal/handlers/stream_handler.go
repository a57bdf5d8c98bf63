package handlers

import (
	"bufio"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/valyala/fasthttp"

	"alfredoptarigan/career-advisor/internal/models"
	"alfredoptarigan/career-advisor/internal/repositories"
	"alfredoptarigan/career-advisor/internal/services"
)

type StreamHandler struct {
	advisor   services.AdvisorService
	chunker   services.TextChunker
	resolver  *conversationResolver
	chunkSize int
	delay     time.Duration
}

func NewStreamHandler(
	convRepo repositories.ConversationRepository,
	advisor services.AdvisorService,
	chunker services.TextChunker,
	sessions *session.Store,
	chunkSize int,
	delay time.Duration,
) *StreamHandler {
	return &StreamHandler{
		advisor: advisor,
		chunker: chunker,
		resolver: &conversationResolver{
			convRepo: convRepo,
			advisor:  advisor,
			sessions: sessions,
		},
		chunkSize: chunkSize,
		delay:     delay,
	}
}

// HandleStreamChat handles POST /chat/stream. The turn runs synchronously and
// the finished reply is re-emitted over the response as server-sent events in
// fixed-size chunks, terminated by a done event. A failed turn becomes a
// single error event.
func (h *StreamHandler) HandleStreamChat(c *fiber.Ctx) error {
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

	reply, turnErr := h.advisor.ProcessTurn(c.Context(), conversation, req.UserInput)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	chunks := h.chunker.ChunkText(reply, h.chunkSize)
	delay := h.delay

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		if turnErr != nil {
			writeSSEEvent(w, "error", html.EscapeString(turnErr.Error()))
			return
		}

		for _, chunk := range chunks {
			writeSSEEvent(w, "", chunk)
			time.Sleep(delay)
		}

		writeSSEEvent(w, "done", "")
	}))

	return nil
}

// writeSSEEvent emits one server-sent event. Multi-line data becomes one
// data: line per input line, per the SSE framing rules.
func writeSSEEvent(w *bufio.Writer, event, data string) {
	if event != "" {
		fmt.Fprintf(w, "event: %s\n", event)
	}
	for _, line := range strings.Split(data, "\n") {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprint(w, "\n")
	w.Flush()
}
