package handler

import (
	"net/http"
	"time"

	"socialnet/backend/internal/models"
	"socialnet/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// RelationHandler serves the friend request lifecycle and the friend list.
type RelationHandler struct {
	relationships *service.RelationshipService
}

func NewRelationHandler(relationships *service.RelationshipService) *RelationHandler {
	return &RelationHandler{relationships: relationships}
}

// region --- DTOs ---

// FriendRequestInput identifies the user to befriend.
type FriendRequestInput struct {
	ReceiverID uint `json:"receiver_id" binding:"required" example:"2"`
}

// RespondInput carries the receiver's decision on a pending request.
type RespondInput struct {
	Action string `json:"action" binding:"required,oneof=accept decline" example:"accept"`
}

// FriendRequestResponse describes a pending request awaiting the caller.
type FriendRequestResponse struct {
	ID             uint      `json:"id"`
	SenderID       uint      `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	CreatedAt      time.Time `json:"created_at"`
}

// FriendResponse is one entry of the friend list.
type FriendResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// endregion

// SendFriendRequest godoc
// @Summary      Send a friend request
// @Description  Creates a pending request. A crossing request from the receiver is accepted instead.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FriendRequestInput true "Receiver"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /friends/requests [post]
func (h *RelationHandler) SendFriendRequest(c *gin.Context) {
	var input FriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	req, accepted, err := h.relationships.SendFriendRequest(currentUserID(c), input.ReceiverID)
	if err != nil {
		respondError(c, err)
		return
	}

	if accepted {
		c.JSON(http.StatusCreated, gin.H{"message": "Friend request accepted", "request_id": req.ID, "accepted": true})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Friend request sent", "request_id": req.ID, "accepted": false})
}

// ListPendingRequests godoc
// @Summary      List pending friend requests
// @Description  Returns requests awaiting the caller's response, oldest first.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  FriendRequestResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friends/requests [get]
func (h *RelationHandler) ListPendingRequests(c *gin.Context) {
	requests, err := h.relationships.ListPendingRequests(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]FriendRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, FriendRequestResponse{
			ID:             req.ID,
			SenderID:       req.SenderID,
			SenderUsername: req.Sender.Username,
			CreatedAt:      req.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// RespondToFriendRequest godoc
// @Summary      Accept or decline a friend request
// @Description  Only the receiver may respond. Declining removes the request.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int           true  "Request ID"
// @Param        input body  RespondInput  true  "Decision"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /friends/requests/{id} [post]
func (h *RelationHandler) RespondToFriendRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	accept := input.Action == "accept"
	if err := h.relationships.RespondToFriendRequest(currentUserID(c), id, accept); err != nil {
		respondError(c, err)
		return
	}

	if accept {
		c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request declined"})
}

// ListFriends godoc
// @Summary      List friends
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  FriendResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friends [get]
func (h *RelationHandler) ListFriends(c *gin.Context) {
	friends, err := h.relationships.ListFriends(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]FriendResponse, 0, len(friends))
	for _, friend := range friends {
		responses = append(responses, newFriendResponse(friend))
	}
	c.JSON(http.StatusOK, responses)
}

// Unfriend godoc
// @Summary      Remove a friend
// @Description  Dissolves the friendship; either side may re-request later.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Friend's user ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friends/{id} [delete]
func (h *RelationHandler) Unfriend(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.relationships.Unfriend(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

func newFriendResponse(user models.User) FriendResponse {
	return FriendResponse{ID: user.ID, Username: user.Username, Name: user.Name}
}
