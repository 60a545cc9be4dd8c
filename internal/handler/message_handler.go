package handler

import (
	"net/http"
	"strconv"
	"time"

	"socialnet/backend/internal/models"
	"socialnet/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// MessageHandler serves direct messaging between friends.
type MessageHandler struct {
	messages *service.MessageService
}

func NewMessageHandler(messages *service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// region --- DTOs ---

// SendMessageInput defines the structure for sending a message.
type SendMessageInput struct {
	ReceiverID uint   `json:"receiver_id" binding:"required" example:"2"`
	Content    string `json:"content" binding:"required" example:"Hey!"`
}

// MessageResponse defines the structure for one message.
type MessageResponse struct {
	ID             uint      `json:"id"`
	SenderID       uint      `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	ReceiverID     uint      `json:"receiver_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// endregion

func newMessageResponse(message models.Message) MessageResponse {
	return MessageResponse{
		ID:             message.ID,
		SenderID:       message.SenderID,
		SenderUsername: message.Sender.Username,
		ReceiverID:     message.ReceiverID,
		Content:        message.Content,
		IsRead:         message.IsRead,
		CreatedAt:      message.CreatedAt,
	}
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Delivers a message to a friend. Non-friends cannot message each other.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendMessageInput true "Message"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /messages [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	message, err := h.messages.SendMessage(currentUserID(c), input.ReceiverID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message_id": message.ID, "created_at": message.CreatedAt})
}

// GetConversation godoc
// @Summary      Get a conversation
// @Description  Returns the thread with a friend, oldest first, and marks their messages read. Pass after_id to poll for new messages only.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id       path   int  true   "Friend's user ID"
// @Param        after_id query  int  false  "Return messages with a greater ID only"
// @Success      200  {array}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /messages/{id} [get]
func (h *MessageHandler) GetConversation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	afterID, err := strconv.ParseUint(c.DefaultQuery("after_id", "0"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid after_id"})
		return
	}

	messages, err := h.messages.Conversation(currentUserID(c), id, uint(afterID))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, newMessageResponse(message))
	}
	c.JSON(http.StatusOK, responses)
}

// UnreadCount godoc
// @Summary      Count unread messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int64
// @Failure      401  {object}  ErrorResponse
// @Router       /messages/unread [get]
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	count, err := h.messages.UnreadCount(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
