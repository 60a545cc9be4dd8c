package handler

import (
	"net/http"
	"time"

	"socialnet/backend/internal/models"
	"socialnet/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin panel's user oversight endpoints. All routes
// sit behind the admin role middleware.
type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// region --- DTOs ---

// AdminUserResponse is one row of the admin user listing.
type AdminUserResponse struct {
	ID        uint              `json:"id" example:"1"`
	Username  string            `json:"username" example:"testuser"`
	Email     string            `json:"email" example:"test@example.com"`
	Name      string            `json:"name" example:"Test User"`
	Role      string            `json:"role" example:"user"`
	CreatedAt time.Time         `json:"created_at"`
	Stats     service.UserStats `json:"stats"`
}

// AdminUserDetailResponse adds the user's profile when one exists.
type AdminUserDetailResponse struct {
	AdminUserResponse
	Profile *ProfileResponse `json:"profile"`
}

// endregion

func buildAdminUserResponse(user models.User, stats service.UserStats) AdminUserResponse {
	return AdminUserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		Stats:     stats,
	}
}

// ListUsers godoc
// @Summary      List all users
// @Description  Returns every user except the requesting admin, newest first, with usage statistics.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[AdminUserResponse]
// @Failure      403   {object}  ErrorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit, offset := parsePagination(c)

	overviews, total, err := h.admin.ListUsers(currentUserID(c), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]AdminUserResponse, 0, len(overviews))
	for _, overview := range overviews {
		responses = append(responses, buildAdminUserResponse(overview.User, overview.Stats))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(responses, total, page, limit))
}

// GetUser godoc
// @Summary      Inspect one user
// @Description  Returns the user's account, profile and usage statistics.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  AdminUserDetailResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, profile, stats, err := h.admin.InspectUser(id)
	if err != nil {
		respondError(c, err)
		return
	}

	response := AdminUserDetailResponse{AdminUserResponse: buildAdminUserResponse(*user, stats)}
	if profile != nil {
		p := newProfileResponse(profile)
		response.Profile = &p
	}
	c.JSON(http.StatusOK, response)
}

// DeleteUser godoc
// @Summary      Delete a user's account
// @Description  Removes the account and everything it owns. Admins cannot delete themselves here.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
