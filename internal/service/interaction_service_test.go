package service

import (
	"context"
	"errors"
	"testing"

	"socialnet/backend/internal/apperr"
	"socialnet/backend/internal/models"
	"socialnet/backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type interactionFixture struct {
	svc           *InteractionService
	relationships *RelationshipService
	users         *fakeUserRepo
	posts         *fakePostRepo
	votes         *fakeVoteRepo
	activities    *fakeActivityRepo
	gen           *fakeGenerator
}

func newInteractionFixture(t *testing.T, gen *fakeGenerator) *interactionFixture {
	t.Helper()
	users := newFakeUserRepo()
	friends := newFakeFriendRepo()
	posts := newFakePostRepo(users)
	votes := newFakeVoteRepo()
	logger, activities := newTestLogger()

	var textGen *fakeGenerator
	if gen != nil {
		textGen = gen
	}

	fixture := &interactionFixture{
		relationships: NewRelationshipService(friends, users, logger),
		users:         users,
		posts:         posts,
		votes:         votes,
		activities:    activities,
		gen:           textGen,
	}
	if textGen != nil {
		fixture.svc = NewInteractionService(posts, votes, friends, textGen, logger)
	} else {
		fixture.svc = NewInteractionService(posts, votes, friends, nil, logger)
	}
	return fixture
}

func (f *interactionFixture) post(t *testing.T, authorID uint, content string) *models.Post {
	t.Helper()
	post, err := f.svc.CreatePost(context.Background(), authorID, content, models.CategoryPersonal, false)
	require.NoError(t, err)
	return post
}

func TestCreatePost(t *testing.T) {
	t.Run("rejects empty content", func(t *testing.T) {
		f := newInteractionFixture(t, nil)
		alice := f.users.addUser("alice")

		_, err := f.svc.CreatePost(context.Background(), alice.ID, "   ", models.CategoryPersonal, false)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		f := newInteractionFixture(t, nil)
		alice := f.users.addUser("alice")

		_, err := f.svc.CreatePost(context.Background(), alice.ID, "hi", "random", false)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
	})

	t.Run("rewrites with the assistant when asked", func(t *testing.T) {
		gen := &fakeGenerator{rewrite: "polished text", analysis: "upbeat", comment: "nice!"}
		f := newInteractionFixture(t, gen)
		alice := f.users.addUser("alice")

		post, err := f.svc.CreatePost(context.Background(), alice.ID, "raw text", models.CategoryPersonal, true)
		require.NoError(t, err)
		assert.Equal(t, "polished text", post.Content)
		assert.True(t, post.IsAIGenerated)
		assert.Equal(t, "upbeat", post.AIAnalysis)

		comments, err := f.posts.ListComments(post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.True(t, comments[0].IsAIComment)
		assert.Nil(t, comments[0].AuthorID)
	})

	t.Run("keeps the original text when the rewrite fails", func(t *testing.T) {
		gen := &fakeGenerator{
			rewriteErr:  errors.New("model down"),
			analysisErr: errors.New("model down"),
			commentErr:  errors.New("model down"),
		}
		f := newInteractionFixture(t, gen)
		alice := f.users.addUser("alice")

		post, err := f.svc.CreatePost(context.Background(), alice.ID, "raw text", models.CategoryPersonal, true)
		require.NoError(t, err)
		assert.Equal(t, "raw text", post.Content)
		assert.False(t, post.IsAIGenerated)
		assert.Empty(t, post.AIAnalysis)
	})
}

func TestPostVisibility(t *testing.T) {
	f := newInteractionFixture(t, nil)
	alice := f.users.addUser("alice")
	bob := f.users.addUser("bob")
	carol := f.users.addUser("carol")
	makeFriends(t, f.relationships, alice.ID, bob.ID)

	post := f.post(t, alice.ID, "hello friends")

	t.Run("author sees own post", func(t *testing.T) {
		got, _, err := f.svc.GetPost(alice.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, got.ID)
	})

	t.Run("friend sees the post", func(t *testing.T) {
		_, _, err := f.svc.GetPost(bob.ID, post.ID)
		assert.NoError(t, err)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, _, err := f.svc.GetPost(carol.ID, post.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
	})

	t.Run("missing post is not found", func(t *testing.T) {
		_, _, err := f.svc.GetPost(alice.ID, 999)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestFeed(t *testing.T) {
	f := newInteractionFixture(t, nil)
	alice := f.users.addUser("alice")
	bob := f.users.addUser("bob")
	carol := f.users.addUser("carol")
	makeFriends(t, f.relationships, alice.ID, bob.ID)

	f.post(t, alice.ID, "mine")
	f.post(t, bob.ID, "friend post")
	f.post(t, carol.ID, "stranger post")

	feed, total, err := f.svc.Feed(alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, post := range feed {
		assert.NotEqual(t, carol.ID, post.AuthorID)
	}
}

func TestCastVote(t *testing.T) {
	setup := func(t *testing.T) (*interactionFixture, *models.Post, uint) {
		f := newInteractionFixture(t, nil)
		alice := f.users.addUser("alice")
		bob := f.users.addUser("bob")
		makeFriends(t, f.relationships, alice.ID, bob.ID)
		post := f.post(t, alice.ID, "vote on me")
		return f, post, bob.ID
	}

	t.Run("first vote adds", func(t *testing.T) {
		f, post, voter := setup(t)

		result, err := f.svc.CastVote(voter, repository.VoteTargetPost, post.ID, models.VoteLike)
		require.NoError(t, err)
		assert.Equal(t, VoteAdded, result.Action)
		assert.Equal(t, int64(1), result.Likes)
		assert.Equal(t, int64(0), result.Dislikes)
		assert.Equal(t, models.VoteLike, result.ActorVote)
	})

	t.Run("same vote twice removes it", func(t *testing.T) {
		f, post, voter := setup(t)

		_, err := f.svc.CastVote(voter, repository.VoteTargetPost, post.ID, models.VoteLike)
		require.NoError(t, err)
		result, err := f.svc.CastVote(voter, repository.VoteTargetPost, post.ID, models.VoteLike)
		require.NoError(t, err)
		assert.Equal(t, VoteRemoved, result.Action)
		assert.Equal(t, int64(0), result.Likes)
		assert.Equal(t, 0, result.ActorVote)
	})

	t.Run("opposite vote flips", func(t *testing.T) {
		f, post, voter := setup(t)

		_, err := f.svc.CastVote(voter, repository.VoteTargetPost, post.ID, models.VoteLike)
		require.NoError(t, err)
		result, err := f.svc.CastVote(voter, repository.VoteTargetPost, post.ID, models.VoteDislike)
		require.NoError(t, err)
		assert.Equal(t, VoteChanged, result.Action)
		assert.Equal(t, int64(0), result.Likes)
		assert.Equal(t, int64(1), result.Dislikes)
		assert.Equal(t, models.VoteDislike, result.ActorVote)
	})

	t.Run("rejects invalid vote values", func(t *testing.T) {
		f, post, voter := setup(t)

		_, err := f.svc.CastVote(voter, repository.VoteTargetPost, post.ID, 5)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
	})

	t.Run("stranger cannot vote", func(t *testing.T) {
		f, post, _ := setup(t)
		dave := f.users.addUser("dave")

		_, err := f.svc.CastVote(dave.ID, repository.VoteTargetPost, post.ID, models.VoteLike)
		assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
	})

	t.Run("comments share the toggle", func(t *testing.T) {
		f, post, voter := setup(t)
		comment, err := f.svc.AddComment(voter, post.ID, "first!")
		require.NoError(t, err)

		result, err := f.svc.CastVote(voter, repository.VoteTargetComment, comment.ID, models.VoteDislike)
		require.NoError(t, err)
		assert.Equal(t, VoteAdded, result.Action)
		assert.Equal(t, int64(1), result.Dislikes)

		result, err = f.svc.CastVote(voter, repository.VoteTargetComment, comment.ID, models.VoteDislike)
		require.NoError(t, err)
		assert.Equal(t, VoteRemoved, result.Action)
		assert.Equal(t, 0, result.ActorVote)
	})
}

func TestComments(t *testing.T) {
	t.Run("stranger cannot comment", func(t *testing.T) {
		f := newInteractionFixture(t, nil)
		alice := f.users.addUser("alice")
		carol := f.users.addUser("carol")
		post := f.post(t, alice.ID, "hello")

		_, err := f.svc.AddComment(carol.ID, post.ID, "hi")
		assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
	})

	t.Run("empty comment is invalid", func(t *testing.T) {
		f := newInteractionFixture(t, nil)
		alice := f.users.addUser("alice")
		post := f.post(t, alice.ID, "hello")

		_, err := f.svc.AddComment(alice.ID, post.ID, "  ")
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
	})

	t.Run("post author may delete another user's comment", func(t *testing.T) {
		f := newInteractionFixture(t, nil)
		alice := f.users.addUser("alice")
		bob := f.users.addUser("bob")
		makeFriends(t, f.relationships, alice.ID, bob.ID)
		post := f.post(t, alice.ID, "hello")

		comment, err := f.svc.AddComment(bob.ID, post.ID, "spam")
		require.NoError(t, err)
		assert.NoError(t, f.svc.DeleteComment(alice.ID, comment.ID))
	})

	t.Run("third party cannot delete a comment", func(t *testing.T) {
		f := newInteractionFixture(t, nil)
		alice := f.users.addUser("alice")
		bob := f.users.addUser("bob")
		carol := f.users.addUser("carol")
		makeFriends(t, f.relationships, alice.ID, bob.ID)
		post := f.post(t, alice.ID, "hello")

		comment, err := f.svc.AddComment(bob.ID, post.ID, "fine comment")
		require.NoError(t, err)
		err = f.svc.DeleteComment(carol.ID, comment.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("author deletes, comments go with it", func(t *testing.T) {
		f := newInteractionFixture(t, nil)
		alice := f.users.addUser("alice")
		post := f.post(t, alice.ID, "bye")
		_, err := f.svc.AddComment(alice.ID, post.ID, "self comment")
		require.NoError(t, err)

		require.NoError(t, f.svc.DeletePost(alice.ID, post.ID))
		_, err = f.posts.Get(post.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		count, _ := f.posts.CountComments(post.ID)
		assert.Zero(t, count)
	})

	t.Run("non-author is rejected", func(t *testing.T) {
		f := newInteractionFixture(t, nil)
		alice := f.users.addUser("alice")
		bob := f.users.addUser("bob")
		post := f.post(t, alice.ID, "mine")

		err := f.svc.DeletePost(bob.ID, post.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
	})
}
