package handler

import (
	"net/http"
	"time"

	"socialnet/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AssistantHandler serves the AI chat assistant.
type AssistantHandler struct {
	assistant *service.AssistantService
}

func NewAssistantHandler(assistant *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// region --- DTOs ---

// ChatInput defines the structure for one assistant message. An empty
// session_id starts a new session.
type ChatInput struct {
	SessionID string `json:"session_id" example:"b3e9..."`
	Message   string `json:"message" binding:"required" example:"What did my friends post today?"`
}

// ChatTurnResponse is one stored exchange of a session.
type ChatTurnResponse struct {
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	CreatedAt   time.Time `json:"created_at"`
}

// endregion

// Chat godoc
// @Summary      Talk to the assistant
// @Description  Sends one message and returns the assistant's reply with the session id.
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ChatInput true "Message"
// @Success      200  {object}  service.ChatReply
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /assistant/chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	reply, err := h.assistant.Chat(c.Request.Context(), currentUserID(c), input.SessionID, input.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// ListSessions godoc
// @Summary      List chat sessions
// @Tags         assistant
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  repository.ChatSession
// @Failure      401  {object}  ErrorResponse
// @Router       /assistant/sessions [get]
func (h *AssistantHandler) ListSessions(c *gin.Context) {
	sessions, err := h.assistant.Sessions(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GetSession godoc
// @Summary      Get one session's transcript
// @Tags         assistant
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Session ID"
// @Success      200  {array}  ChatTurnResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /assistant/sessions/{id} [get]
func (h *AssistantHandler) GetSession(c *gin.Context) {
	entries, err := h.assistant.SessionMessages(currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]ChatTurnResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ChatTurnResponse{
			UserMessage: entry.UserMessage,
			AIResponse:  entry.AIResponse,
			CreatedAt:   entry.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// DeleteSession godoc
// @Summary      Delete one chat session
// @Description  Removes the transcript and its stored memories.
// @Tags         assistant
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Session ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  ErrorResponse
// @Router       /assistant/sessions/{id} [delete]
func (h *AssistantHandler) DeleteSession(c *gin.Context) {
	if err := h.assistant.DeleteSession(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted"})
}

// DeleteAllSessions godoc
// @Summary      Delete the entire chat history
// @Tags         assistant
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  ErrorResponse
// @Router       /assistant/sessions [delete]
func (h *AssistantHandler) DeleteAllSessions(c *gin.Context) {
	if err := h.assistant.DeleteAll(c.Request.Context(), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat history deleted"})
}
