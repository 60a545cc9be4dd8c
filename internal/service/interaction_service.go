package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"socialnet/backend/internal/apperr"
	"socialnet/backend/internal/assistant"
	"socialnet/backend/internal/models"
	"socialnet/backend/internal/repository"
)

// Vote toggle outcomes.
const (
	VoteAdded   = "added"
	VoteChanged = "changed"
	VoteRemoved = "removed"
)

// VoteResult reports the outcome of a vote toggle together with the fresh
// tallies. ActorVote is 0 when the actor no longer has a vote on the target.
type VoteResult struct {
	Action    string `json:"action"`
	Likes     int64  `json:"likes"`
	Dislikes  int64  `json:"dislikes"`
	ActorVote int    `json:"user_vote_type"`
}

// InteractionService owns posts, comments and votes, including the
// friendship-gated visibility rule.
type InteractionService struct {
	posts    repository.PostRepository
	votes    repository.VoteRepository
	friends  repository.FriendRepository
	gen      assistant.TextGenerator
	activity *ActivityLogger
	logger   *slog.Logger
}

// NewInteractionService builds the service. gen may be nil; post creation
// then skips every AI step.
func NewInteractionService(posts repository.PostRepository, votes repository.VoteRepository,
	friends repository.FriendRepository, gen assistant.TextGenerator, activity *ActivityLogger) *InteractionService {
	return &InteractionService{
		posts:    posts,
		votes:    votes,
		friends:  friends,
		gen:      gen,
		activity: activity,
		logger:   slog.Default().With("component", "interaction"),
	}
}

// CanView reports whether the viewer may see the post: its author always,
// otherwise friends of the author only.
func (s *InteractionService) CanView(viewerID uint, post *models.Post) (bool, error) {
	if post.AuthorID == viewerID {
		return true, nil
	}
	return s.friends.AreFriends(viewerID, post.AuthorID)
}

func (s *InteractionService) visiblePost(viewerID, postID uint) (*models.Post, error) {
	post, err := s.posts.GetWithAuthor(postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("post not found")
		}
		return nil, err
	}
	ok, err := s.CanView(viewerID, post)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Unauthorizedf("you are not allowed to view this post")
	}
	return post, nil
}

// CreatePost stores a new post. With useAI set, the content is first passed
// through the model for a rewrite; a rewrite failure falls back to the
// original text. Analysis and the assistant's welcome comment are best
// effort and never fail the request.
func (s *InteractionService) CreatePost(ctx context.Context, authorID uint, content, category string, useAI bool) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Invalidf("post content cannot be empty")
	}
	if category != models.CategoryPersonal && category != models.CategoryProfessional {
		return nil, apperr.Invalidf("category must be %q or %q", models.CategoryPersonal, models.CategoryProfessional)
	}

	post := &models.Post{
		AuthorID: authorID,
		Content:  content,
		Category: category,
	}

	if useAI && s.gen != nil {
		rewritten, err := s.gen.Rewrite(ctx, content)
		if err != nil {
			s.logger.Warn("post rewrite failed, keeping original text", "error", err)
		} else if strings.TrimSpace(rewritten) != "" {
			post.Content = strings.TrimSpace(rewritten)
			post.IsAIGenerated = true
		}
	}

	if s.gen != nil {
		if analysis, err := s.gen.Analyze(ctx, post.Content); err != nil {
			s.logger.Warn("post analysis failed", "error", err)
		} else {
			post.AIAnalysis = strings.TrimSpace(analysis)
		}
	}

	if err := s.posts.Create(post); err != nil {
		return nil, err
	}

	if s.gen != nil {
		if reply, err := s.gen.Comment(ctx, post.Content); err != nil {
			s.logger.Warn("assistant comment failed", "post_id", post.ID, "error", err)
		} else if strings.TrimSpace(reply) != "" {
			comment := &models.Comment{
				PostID:      post.ID,
				AuthorID:    nil,
				Content:     strings.TrimSpace(reply),
				IsAIComment: true,
			}
			if err := s.posts.CreateComment(comment); err != nil {
				s.logger.Warn("failed to store assistant comment", "post_id", post.ID, "error", err)
			}
		}
	}

	s.activity.Log(authorID, models.ActivityCreatePost,
		fmt.Sprintf("Created a %s post", post.Category),
		nil, models.JSONMap{"post_id": post.ID, "ai_generated": post.IsAIGenerated})

	return post, nil
}

// GetPost returns the post with its comments, gated by visibility.
func (s *InteractionService) GetPost(viewerID, postID uint) (*models.Post, []models.Comment, error) {
	post, err := s.visiblePost(viewerID, postID)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.posts.ListComments(postID)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

// Feed returns posts by the viewer and the viewer's friends, newest first.
func (s *InteractionService) Feed(viewerID uint, offset, limit int) ([]models.Post, int64, error) {
	friendIDs, err := s.friends.FriendIDs(viewerID)
	if err != nil {
		return nil, 0, err
	}
	return s.posts.ListByAuthors(append(friendIDs, viewerID), offset, limit)
}

// DeletePost removes the post, its comments and every vote row attached to
// them. Only the author may delete.
func (s *InteractionService) DeletePost(actorID, postID uint) error {
	post, err := s.posts.Get(postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFoundf("post not found")
		}
		return err
	}
	if post.AuthorID != actorID {
		return apperr.Unauthorizedf("only the author can delete this post")
	}
	if err := s.posts.Delete(postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFoundf("post not found")
		}
		return err
	}
	s.activity.Log(actorID, models.ActivityDeletePost,
		"Deleted a post", nil, models.JSONMap{"post_id": postID})
	return nil
}

// AddComment attaches a comment to a visible post.
func (s *InteractionService) AddComment(viewerID, postID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Invalidf("comment cannot be empty")
	}

	post, err := s.visiblePost(viewerID, postID)
	if err != nil {
		return nil, err
	}

	authorID := viewerID
	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: &authorID,
		Content:  content,
	}
	if err := s.posts.CreateComment(comment); err != nil {
		return nil, err
	}

	s.activity.Log(viewerID, models.ActivityCreateComment,
		"Commented on a post",
		&post.AuthorID, models.JSONMap{"post_id": post.ID, "comment_id": comment.ID})
	return comment, nil
}

// DeleteComment removes a comment. Allowed for the comment's author and for
// the author of the post it sits on.
func (s *InteractionService) DeleteComment(actorID, commentID uint) error {
	comment, err := s.posts.GetComment(commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFoundf("comment not found")
		}
		return err
	}

	allowed := comment.AuthorID != nil && *comment.AuthorID == actorID
	if !allowed {
		post, err := s.posts.Get(comment.PostID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		allowed = err == nil && post.AuthorID == actorID
	}
	if !allowed {
		return apperr.Unauthorizedf("you cannot delete this comment")
	}

	if err := s.posts.DeleteComment(commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFoundf("comment not found")
		}
		return err
	}
	s.activity.Log(actorID, models.ActivityDeleteComment,
		"Deleted a comment", nil, models.JSONMap{"comment_id": commentID})
	return nil
}

// VoteCounts returns the current tallies for a post or comment.
func (s *InteractionService) VoteCounts(target repository.VoteTarget, targetID uint) (likes, dislikes int64, err error) {
	return s.votes.Counts(target, targetID)
}

// ActorVote returns the actor's current vote on the target, 0 when none.
func (s *InteractionService) ActorVote(target repository.VoteTarget, targetID, actorID uint) int {
	voteType, found, err := s.votes.Find(target, targetID, actorID)
	if err != nil || !found {
		return 0
	}
	return voteType
}

// CommentCount returns how many comments sit on the post.
func (s *InteractionService) CommentCount(postID uint) (int64, error) {
	return s.posts.CountComments(postID)
}

// CastVote applies the like/dislike toggle on a post or comment. Voting the
// same way twice removes the vote, voting the other way flips it, and a
// first vote inserts it. The result carries the new tallies so clients can
// render without a second read.
func (s *InteractionService) CastVote(actorID uint, target repository.VoteTarget, targetID uint, voteType int) (*VoteResult, error) {
	if voteType != models.VoteLike && voteType != models.VoteDislike {
		return nil, apperr.Invalidf("vote type must be %d or %d", models.VoteLike, models.VoteDislike)
	}

	postAuthorID, err := s.checkVoteTarget(actorID, target, targetID)
	if err != nil {
		return nil, err
	}

	current, found, err := s.votes.Find(target, targetID, actorID)
	if err != nil {
		return nil, err
	}

	result := &VoteResult{}
	switch {
	case !found:
		if err := s.votes.Insert(target, targetID, actorID, voteType); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, apperr.Conflictf("vote already recorded")
			}
			return nil, err
		}
		result.Action = VoteAdded
		result.ActorVote = voteType
	case current == voteType:
		if err := s.votes.Delete(target, targetID, actorID); err != nil {
			return nil, err
		}
		result.Action = VoteRemoved
		result.ActorVote = 0
	default:
		if err := s.votes.UpdateType(target, targetID, actorID, voteType); err != nil {
			return nil, err
		}
		result.Action = VoteChanged
		result.ActorVote = voteType
	}

	result.Likes, result.Dislikes, err = s.votes.Counts(target, targetID)
	if err != nil {
		return nil, err
	}

	if result.Action != VoteRemoved {
		s.activity.Log(actorID, voteActivityKind(target, voteType),
			fmt.Sprintf("Voted on a %s", target),
			postAuthorID, models.JSONMap{"target_id": targetID, "vote_type": voteType})
	}
	return result, nil
}

// checkVoteTarget verifies the target exists and is visible to the actor,
// returning the owning post's author for the audit entry.
func (s *InteractionService) checkVoteTarget(actorID uint, target repository.VoteTarget, targetID uint) (*uint, error) {
	switch target {
	case repository.VoteTargetPost:
		post, err := s.visiblePost(actorID, targetID)
		if err != nil {
			return nil, err
		}
		return &post.AuthorID, nil
	case repository.VoteTargetComment:
		comment, err := s.posts.GetComment(targetID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperr.NotFoundf("comment not found")
			}
			return nil, err
		}
		if _, err := s.visiblePost(actorID, comment.PostID); err != nil {
			return nil, err
		}
		return comment.AuthorID, nil
	default:
		return nil, apperr.Invalidf("unknown vote target %q", target)
	}
}

func voteActivityKind(target repository.VoteTarget, voteType int) string {
	switch {
	case target == repository.VoteTargetPost && voteType == models.VoteLike:
		return models.ActivityLikePost
	case target == repository.VoteTargetPost:
		return models.ActivityDislikePost
	case voteType == models.VoteLike:
		return models.ActivityLikeComment
	default:
		return models.ActivityDislikeComment
	}
}
