package handler

import (
	"net/http"
	"time"

	"socialnet/backend/internal/models"
	"socialnet/backend/internal/repository"
	"socialnet/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// PostHandler serves posts, comments and votes.
type PostHandler struct {
	interactions *service.InteractionService
}

func NewPostHandler(interactions *service.InteractionService) *PostHandler {
	return &PostHandler{interactions: interactions}
}

// region --- DTOs ---

// CreatePostInput defines the structure for creating a post.
type CreatePostInput struct {
	Content  string `json:"content" binding:"required" example:"Hello world"`
	Category string `json:"category" binding:"required,oneof=personal professional" example:"personal"`
	UseAI    bool   `json:"use_ai" example:"false"`
}

// CommentInput defines the structure for adding a comment.
type CommentInput struct {
	Content string `json:"content" binding:"required" example:"Nice post!"`
}

// VoteInput selects like or dislike.
type VoteInput struct {
	VoteType int `json:"vote_type" binding:"required,oneof=1 -1" example:"1"`
}

// PostResponse defines the structure for a post with its tallies.
type PostResponse struct {
	ID             uint      `json:"id"`
	AuthorID       uint      `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	Category       string    `json:"category"`
	AIAnalysis     string    `json:"ai_analysis,omitempty"`
	IsAIGenerated  bool      `json:"is_ai_generated"`
	Likes          int64     `json:"likes"`
	Dislikes       int64     `json:"dislikes"`
	UserVoteType   int       `json:"user_vote_type"`
	CommentCount   int64     `json:"comment_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// CommentResponse defines the structure for a comment. Author fields are
// empty for assistant-written comments.
type CommentResponse struct {
	ID             uint      `json:"id"`
	PostID         uint      `json:"post_id"`
	AuthorID       *uint     `json:"author_id"`
	AuthorUsername string    `json:"author_username,omitempty"`
	Content        string    `json:"content"`
	IsAIComment    bool      `json:"is_ai_comment"`
	Likes          int64     `json:"likes"`
	Dislikes       int64     `json:"dislikes"`
	UserVoteType   int       `json:"user_vote_type"`
	CreatedAt      time.Time `json:"created_at"`
}

// PostDetailResponse bundles a post with its comments.
type PostDetailResponse struct {
	Post     PostResponse      `json:"post"`
	Comments []CommentResponse `json:"comments"`
}

// endregion

func (h *PostHandler) buildPostResponse(post models.Post, viewerID uint) PostResponse {
	resp := PostResponse{
		ID:             post.ID,
		AuthorID:       post.AuthorID,
		AuthorUsername: post.Author.Username,
		Content:        post.Content,
		Category:       post.Category,
		AIAnalysis:     post.AIAnalysis,
		IsAIGenerated:  post.IsAIGenerated,
		CreatedAt:      post.CreatedAt,
	}
	if likes, dislikes, err := h.interactions.VoteCounts(repository.VoteTargetPost, post.ID); err == nil {
		resp.Likes, resp.Dislikes = likes, dislikes
	}
	resp.UserVoteType = h.interactions.ActorVote(repository.VoteTargetPost, post.ID, viewerID)
	if count, err := h.interactions.CommentCount(post.ID); err == nil {
		resp.CommentCount = count
	}
	return resp
}

func (h *PostHandler) buildCommentResponse(comment models.Comment, viewerID uint) CommentResponse {
	resp := CommentResponse{
		ID:          comment.ID,
		PostID:      comment.PostID,
		AuthorID:    comment.AuthorID,
		Content:     comment.Content,
		IsAIComment: comment.IsAIComment,
		CreatedAt:   comment.CreatedAt,
	}
	if comment.Author != nil {
		resp.AuthorUsername = comment.Author.Username
	}
	if likes, dislikes, err := h.interactions.VoteCounts(repository.VoteTargetComment, comment.ID); err == nil {
		resp.Likes, resp.Dislikes = likes, dislikes
	}
	resp.UserVoteType = h.interactions.ActorVote(repository.VoteTargetComment, comment.ID, viewerID)
	return resp
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post, optionally letting the assistant rewrite it first.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreatePostInput true "Post"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	userID := currentUserID(c)
	post, err := h.interactions.CreatePost(c.Request.Context(), userID, input.Content, input.Category, input.UseAI)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.buildPostResponse(*post, userID))
}

// Feed godoc
// @Summary      Get the feed
// @Description  Returns posts by the caller and the caller's friends, newest first.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Page number" default(1)
// @Param        limit query  int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /posts/feed [get]
func (h *PostHandler) Feed(c *gin.Context) {
	userID := currentUserID(c)
	page, limit, offset := parsePagination(c)

	posts, total, err := h.interactions.Feed(userID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, h.buildPostResponse(post, userID))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(responses, total, page, limit))
}

// GetPost godoc
// @Summary      Get a post with its comments
// @Description  Only the author and the author's friends may view a post.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      200  {object}  PostDetailResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := currentUserID(c)
	post, comments, err := h.interactions.GetPost(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	commentResponses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentResponses = append(commentResponses, h.buildCommentResponse(comment, userID))
	}
	c.JSON(http.StatusOK, PostDetailResponse{
		Post:     h.buildPostResponse(*post, userID),
		Comments: commentResponses,
	})
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Removes the post, its comments and all votes. Author only.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.interactions.DeletePost(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// VotePost godoc
// @Summary      Like or dislike a post
// @Description  Same vote twice removes it, the opposite vote flips it.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int        true  "Post ID"
// @Param        input body  VoteInput  true  "Vote"
// @Success      200  {object}  service.VoteResult
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/vote [post]
func (h *PostHandler) VotePost(c *gin.Context) {
	h.vote(c, repository.VoteTargetPost)
}

// VoteComment godoc
// @Summary      Like or dislike a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int        true  "Comment ID"
// @Param        input body  VoteInput  true  "Vote"
// @Success      200  {object}  service.VoteResult
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id}/vote [post]
func (h *PostHandler) VoteComment(c *gin.Context) {
	h.vote(c, repository.VoteTargetComment)
}

func (h *PostHandler) vote(c *gin.Context, target repository.VoteTarget) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.interactions.CastVote(currentUserID(c), target, id, input.VoteType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int           true  "Post ID"
// @Param        input body  CommentInput  true  "Comment"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	userID := currentUserID(c)
	comment, err := h.interactions.AddComment(userID, id, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.buildCommentResponse(*comment, userID))
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Allowed for the comment's author and the post's author.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id} [delete]
func (h *PostHandler) DeleteComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.interactions.DeleteComment(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
