package handler

import (
	"net/http"

	"socialnet/backend/internal/models"
	"socialnet/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves accounts, authentication and profiles.
type UserHandler struct {
	users         *service.UserService
	relationships *service.RelationshipService
	accounts      *service.AccountService
}

func NewUserHandler(users *service.UserService, relationships *service.RelationshipService, accounts *service.AccountService) *UserHandler {
	return &UserHandler{users: users, relationships: relationships, accounts: accounts}
}

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username string `json:"username" binding:"required" example:"testuser"`
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Name     string `json:"name" binding:"required" example:"Test User"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Login    string `json:"login" binding:"required" example:"testuser"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// PublicUserResponse defines the structure for a user's public card.
type PublicUserResponse struct {
	ID           uint   `json:"id" example:"1"`
	Username     string `json:"username" example:"testuser"`
	Name         string `json:"name" example:"Test User"`
	FriendsCount int64  `json:"friends_count"`
	IsFriend     bool   `json:"is_friend"`
	HasPending   bool   `json:"has_pending_request"`
}

// PrivateUserResponse defines the structure for the authenticated user's own account.
type PrivateUserResponse struct {
	ID           uint   `json:"id" example:"1"`
	Username     string `json:"username" example:"testuser"`
	Email        string `json:"email" example:"test@example.com"`
	Name         string `json:"name" example:"Test User"`
	Role         string `json:"role" example:"user"`
	FriendsCount int64  `json:"friends_count"`
}

// ProfileResponse defines the structure for a user profile. The secret key
// is never included here; it has its own endpoint.
type ProfileResponse struct {
	Phone          string `json:"phone"`
	Education      string `json:"education"`
	Work           string `json:"work"`
	Website        string `json:"website"`
	Github         string `json:"github"`
	Linkedin       string `json:"linkedin"`
	ProfilePicture string `json:"profile_picture"`
}

// endregion

func newProfileResponse(profile *models.Profile) ProfileResponse {
	return ProfileResponse{
		Phone:          profile.Phone,
		Education:      profile.Education,
		Work:           profile.Work,
		Website:        profile.Website,
		Github:         profile.Github,
		Linkedin:       profile.Linkedin,
		ProfilePicture: profile.ProfilePicture,
	}
}

func (h *UserHandler) buildPublicUserResponse(user models.User, viewerID uint) PublicUserResponse {
	resp := PublicUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	}
	if count, err := h.relationships.CountFriends(user.ID); err == nil {
		resp.FriendsCount = count
	}
	if friends, err := h.relationships.AreFriends(viewerID, user.ID); err == nil {
		resp.IsFriend = friends
	}
	if pending, err := h.relationships.HasPendingRequest(viewerID, user.ID); err == nil {
		resp.HasPending = pending
	}
	return resp
}

// region --- Auth Handlers ---

// Register godoc
// @Summary      Register a new user
// @Description  Creates a new user and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, token, err := h.users.Register(input.Username, input.Email, input.Name, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user_id": user.ID})
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates a user with username/email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      403  {object}  ErrorResponse "Invalid credentials"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, token, err := h.users.Login(input.Login, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": user.ID})
}

// endregion

// region --- User Handlers ---

// GetMe godoc
// @Summary      Get own account
// @Description  Retrieves the authenticated user's own account details.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := currentUserID(c)
	user, err := h.users.GetUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	friendsCount, _ := h.relationships.CountFriends(userID)
	c.JSON(http.StatusOK, PrivateUserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		FriendsCount: friendsCount,
	})
}

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches for users by username or name with pagination.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Search query"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[PublicUserResponse]
// @Failure      401   {object}  ErrorResponse
// @Router       /users [get]
func (h *UserHandler) SearchUsers(c *gin.Context) {
	viewerID := currentUserID(c)
	page, limit, offset := parsePagination(c)

	users, total, err := h.users.Search(viewerID, c.Query("q"), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]PublicUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, h.buildPublicUserResponse(user, viewerID))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(responses, total, page, limit))
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Description  Retrieves the public card for a specific user. Relationship flags are filled in when a token is sent.
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.buildPublicUserResponse(*user, currentUserID(c)))
}

// DeleteAccount godoc
// @Summary      Delete own account
// @Description  Permanently removes the account and everything it owns.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me [delete]
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.accounts.DeleteAccount(c.Request.Context(), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// endregion

// region --- Profile Handlers ---

// GetProfile godoc
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.users.GetProfile(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(profile))
}

// SaveProfile godoc
// @Summary      Create or update own profile
// @Description  Creates the profile on first call, updates it afterwards.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body service.ProfileInput true "Profile fields"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /profile [put]
func (h *UserHandler) SaveProfile(c *gin.Context) {
	var input service.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := h.users.SaveProfile(currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(profile))
}

// GetSecretKey godoc
// @Summary      Show the profile's secret key
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /profile/secret-key [get]
func (h *UserHandler) GetSecretKey(c *gin.Context) {
	profile, err := h.users.GetProfile(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"secret_key": profile.SecretKey})
}

// RegenerateSecretKey godoc
// @Summary      Regenerate the profile's secret key
// @Description  Replaces the key; the previous one stops working immediately.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /profile/secret-key [post]
func (h *UserHandler) RegenerateSecretKey(c *gin.Context) {
	key, err := h.users.RegenerateSecretKey(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"secret_key": key})
}

// UploadProfilePicture godoc
// @Summary      Upload a profile picture
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        picture formData file true "Image file"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profile/picture [post]
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	file, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Image file is required"})
		return
	}

	url, err := h.users.UploadProfilePicture(c.Request.Context(), currentUserID(c), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile_picture": url})
}

// endregion
