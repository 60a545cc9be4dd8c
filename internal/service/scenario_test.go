package service

import (
	"context"
	"testing"

	"socialnet/backend/internal/apperr"
	"socialnet/backend/internal/models"
	"socialnet/backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Walks the whole social flow across services sharing one set of stores:
// befriending, posting, voting, messaging, and the walls a stranger hits.
func TestSocialFlow(t *testing.T) {
	users := newFakeUserRepo()
	friends := newFakeFriendRepo()
	posts := newFakePostRepo(users)
	votes := newFakeVoteRepo()
	messages := newFakeMessageRepo()
	logger, _ := newTestLogger()

	relationships := NewRelationshipService(friends, users, logger)
	interactions := NewInteractionService(posts, votes, friends, nil, logger)
	messaging := NewMessageService(messages, friends, users, logger)

	alice := users.addUser("alice")
	bob := users.addUser("bob")
	carol := users.addUser("carol")

	// Alice and Bob become friends; Carol stays a stranger.
	req, accepted, err := relationships.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, accepted)
	require.NoError(t, relationships.RespondToFriendRequest(bob.ID, req.ID, true))

	post, err := interactions.CreatePost(context.Background(), alice.ID, "weekend plans", models.CategoryPersonal, false)
	require.NoError(t, err)

	// Bob interacts freely.
	result, err := interactions.CastVote(bob.ID, repository.VoteTargetPost, post.ID, models.VoteLike)
	require.NoError(t, err)
	assert.Equal(t, VoteAdded, result.Action)

	comment, err := interactions.AddComment(bob.ID, post.ID, "count me in")
	require.NoError(t, err)

	_, err = messaging.SendMessage(bob.ID, alice.ID, "see you saturday")
	require.NoError(t, err)

	// Carol hits the friendship gate everywhere.
	_, _, err = interactions.GetPost(carol.ID, post.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	_, err = interactions.CastVote(carol.ID, repository.VoteTargetPost, post.ID, models.VoteLike)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	_, err = interactions.AddComment(carol.ID, post.ID, "invite me?")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	_, err = messaging.SendMessage(carol.ID, alice.ID, "hello stranger")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	// Carol's feed stays empty, Bob's carries Alice's post.
	feed, total, err := interactions.Feed(carol.ID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, feed)

	_, total, err = interactions.Feed(bob.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Unfriending closes the gate for Bob too.
	require.NoError(t, relationships.Unfriend(alice.ID, bob.ID))

	_, _, err = interactions.GetPost(bob.ID, post.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	_, err = messaging.Conversation(bob.ID, alice.ID, 0)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	// The comment still exists on the post; Alice still sees it.
	_, remaining, err := interactions.GetPost(alice.ID, post.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, comment.ID, remaining[0].ID)
}
