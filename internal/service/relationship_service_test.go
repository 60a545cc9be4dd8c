package service

import (
	"testing"

	"socialnet/backend/internal/apperr"
	"socialnet/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRelationshipFixture(t *testing.T) (*RelationshipService, *fakeUserRepo, *fakeFriendRepo, *fakeActivityRepo) {
	t.Helper()
	users := newFakeUserRepo()
	friends := newFakeFriendRepo()
	logger, activities := newTestLogger()
	return NewRelationshipService(friends, users, logger), users, friends, activities
}

func TestSendFriendRequest(t *testing.T) {
	t.Run("creates a pending request and audits both sides", func(t *testing.T) {
		svc, users, _, activities := newRelationshipFixture(t)
		alice := users.addUser("alice")
		bob := users.addUser("bob")

		req, accepted, err := svc.SendFriendRequest(alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, accepted)
		assert.Equal(t, models.RequestPending, req.Status)

		assert.Len(t, activities.byType(models.ActivityFriendRequestSent), 1)
		assert.Len(t, activities.byType(models.ActivityFriendRequestReceived), 1)
	})

	t.Run("rejects self requests with a conflict", func(t *testing.T) {
		svc, users, _, _ := newRelationshipFixture(t)
		alice := users.addUser("alice")

		_, _, err := svc.SendFriendRequest(alice.ID, alice.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	t.Run("rejects unknown receivers", func(t *testing.T) {
		svc, users, _, _ := newRelationshipFixture(t)
		alice := users.addUser("alice")

		_, _, err := svc.SendFriendRequest(alice.ID, 999)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("rejects a duplicate pending request", func(t *testing.T) {
		svc, users, _, _ := newRelationshipFixture(t)
		alice := users.addUser("alice")
		bob := users.addUser("bob")

		_, _, err := svc.SendFriendRequest(alice.ID, bob.ID)
		require.NoError(t, err)
		_, _, err = svc.SendFriendRequest(alice.ID, bob.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	t.Run("rejects requests between existing friends", func(t *testing.T) {
		svc, users, _, _ := newRelationshipFixture(t)
		alice := users.addUser("alice")
		bob := users.addUser("bob")
		makeFriends(t, svc, alice.ID, bob.ID)

		_, _, err := svc.SendFriendRequest(alice.ID, bob.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	t.Run("accepts a crossing request instead of stacking one", func(t *testing.T) {
		svc, users, _, _ := newRelationshipFixture(t)
		alice := users.addUser("alice")
		bob := users.addUser("bob")

		_, _, err := svc.SendFriendRequest(bob.ID, alice.ID)
		require.NoError(t, err)

		_, accepted, err := svc.SendFriendRequest(alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, accepted)

		friends, err := svc.AreFriends(alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, friends)
	})
}

func TestRespondToFriendRequest(t *testing.T) {
	t.Run("accept creates exactly one symmetric friendship", func(t *testing.T) {
		svc, users, friends, activities := newRelationshipFixture(t)
		alice := users.addUser("alice")
		bob := users.addUser("bob")

		req, _, err := svc.SendFriendRequest(alice.ID, bob.ID)
		require.NoError(t, err)
		require.NoError(t, svc.RespondToFriendRequest(bob.ID, req.ID, true))

		fromAlice, _ := svc.AreFriends(alice.ID, bob.ID)
		fromBob, _ := svc.AreFriends(bob.ID, alice.ID)
		assert.True(t, fromAlice)
		assert.True(t, fromBob)
		assert.Len(t, friends.friendships, 1)
		assert.Len(t, activities.byType(models.ActivityFriendRequestAccepted), 2)
	})

	t.Run("only the receiver may respond", func(t *testing.T) {
		svc, users, _, _ := newRelationshipFixture(t)
		alice := users.addUser("alice")
		bob := users.addUser("bob")

		req, _, err := svc.SendFriendRequest(alice.ID, bob.ID)
		require.NoError(t, err)

		err = svc.RespondToFriendRequest(alice.ID, req.ID, true)
		assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
	})

	t.Run("decline removes the row so the sender can retry", func(t *testing.T) {
		svc, users, _, _ := newRelationshipFixture(t)
		alice := users.addUser("alice")
		bob := users.addUser("bob")

		req, _, err := svc.SendFriendRequest(alice.ID, bob.ID)
		require.NoError(t, err)
		require.NoError(t, svc.RespondToFriendRequest(bob.ID, req.ID, false))

		friends, _ := svc.AreFriends(alice.ID, bob.ID)
		assert.False(t, friends)

		// Second attempt goes through.
		_, _, err = svc.SendFriendRequest(alice.ID, bob.ID)
		assert.NoError(t, err)
	})

	t.Run("responding to a settled request conflicts", func(t *testing.T) {
		svc, users, _, _ := newRelationshipFixture(t)
		alice := users.addUser("alice")
		bob := users.addUser("bob")

		req, _, err := svc.SendFriendRequest(alice.ID, bob.ID)
		require.NoError(t, err)
		require.NoError(t, svc.RespondToFriendRequest(bob.ID, req.ID, true))

		err = svc.RespondToFriendRequest(bob.ID, req.ID, true)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	t.Run("missing request is not found", func(t *testing.T) {
		svc, users, _, _ := newRelationshipFixture(t)
		bob := users.addUser("bob")

		err := svc.RespondToFriendRequest(bob.ID, 42, true)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestUnfriend(t *testing.T) {
	t.Run("dissolves the friendship and allows a fresh request", func(t *testing.T) {
		svc, users, _, _ := newRelationshipFixture(t)
		alice := users.addUser("alice")
		bob := users.addUser("bob")
		makeFriends(t, svc, alice.ID, bob.ID)

		require.NoError(t, svc.Unfriend(alice.ID, bob.ID))

		friends, _ := svc.AreFriends(alice.ID, bob.ID)
		assert.False(t, friends)

		_, _, err := svc.SendFriendRequest(bob.ID, alice.ID)
		assert.NoError(t, err)
	})

	t.Run("non-friends get not found", func(t *testing.T) {
		svc, users, _, _ := newRelationshipFixture(t)
		alice := users.addUser("alice")
		bob := users.addUser("bob")

		err := svc.Unfriend(alice.ID, bob.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestListPendingRequests(t *testing.T) {
	svc, users, _, _ := newRelationshipFixture(t)
	alice := users.addUser("alice")
	bob := users.addUser("bob")
	carol := users.addUser("carol")

	_, _, err := svc.SendFriendRequest(alice.ID, carol.ID)
	require.NoError(t, err)
	_, _, err = svc.SendFriendRequest(bob.ID, carol.ID)
	require.NoError(t, err)

	pending, err := svc.ListPendingRequests(carol.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, alice.ID, pending[0].SenderID, "oldest request first")
}

func TestPurgeDeclinedRequests(t *testing.T) {
	svc, _, friends, _ := newRelationshipFixture(t)

	// Legacy rows written before declines were deleted outright.
	friends.requests[77] = &models.FriendRequest{ID: 77, SenderID: 1, ReceiverID: 2, Status: models.RequestDeclined}
	friends.requests[78] = &models.FriendRequest{ID: 78, SenderID: 3, ReceiverID: 4, Status: models.RequestPending}

	purged, err := svc.PurgeDeclinedRequests()
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
	assert.Contains(t, friends.requests, uint(78))
}

// makeFriends walks the full request/accept handshake.
func makeFriends(t *testing.T, svc *RelationshipService, a, b uint) {
	t.Helper()
	req, accepted, err := svc.SendFriendRequest(a, b)
	require.NoError(t, err)
	if !accepted {
		require.NoError(t, svc.RespondToFriendRequest(b, req.ID, true))
	}
}
