package handler

import (
	"net/http"
	"time"

	"socialnet/backend/internal/models"
	"socialnet/backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// ActivityHandler serves the audit trail to administrators.
type ActivityHandler struct {
	activities repository.ActivityRepository
}

func NewActivityHandler(activities repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// ActivityResponse is one audit row.
type ActivityResponse struct {
	ID             uint           `json:"id"`
	UserID         uint           `json:"user_id"`
	Username       string         `json:"username"`
	ActivityType   string         `json:"activity_type"`
	Description    string         `json:"description"`
	TargetUserID   *uint          `json:"target_user_id,omitempty"`
	TargetUsername string         `json:"target_username,omitempty"`
	ActivityData   models.JSONMap `json:"activity_data,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ListActivities godoc
// @Summary      List the audit trail
// @Description  Returns audit rows newest first. Admin only.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Page number" default(1)
// @Param        limit query  int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[ActivityResponse]
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	page, limit, offset := parsePagination(c)

	entries, total, err := h.activities.List(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		resp := ActivityResponse{
			ID:           entry.ID,
			UserID:       entry.UserID,
			Username:     entry.User.Username,
			ActivityType: entry.ActivityType,
			Description:  entry.Description,
			TargetUserID: entry.TargetUserID,
			ActivityData: entry.ActivityData,
			CreatedAt:    entry.CreatedAt,
		}
		if entry.TargetUser != nil {
			resp.TargetUsername = entry.TargetUser.Username
		}
		responses = append(responses, resp)
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(responses, total, page, limit))
}
