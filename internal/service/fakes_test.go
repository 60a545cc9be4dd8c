package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"socialnet/backend/internal/assistant"
	"socialnet/backend/internal/models"
	"socialnet/backend/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	nextID   uint
	users    map[uint]*models.User
	profiles map[uint]*models.Profile
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		nextID:   1,
		users:    map[uint]*models.User{},
		profiles: map[uint]*models.Profile{},
	}
}

func (r *fakeUserRepo) addUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		Name:         username + " name",
		PasswordHash: "x",
		Role:         models.RoleUser,
	}
	_ = r.Create(user)
	return user
}

func (r *fakeUserRepo) Create(user *models.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByLogin(login string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == login || user.Email == login {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ExistsByUsername(username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Search(query string, excludeID uint, offset, limit int) ([]models.User, int64, error) {
	var matched []models.User
	for _, user := range r.users {
		if user.ID == excludeID {
			continue
		}
		if query == "" || strings.Contains(user.Username, query) || strings.Contains(user.Name, query) {
			matched = append(matched, *user)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeUserRepo) List(excludeID uint, offset, limit int) ([]models.User, int64, error) {
	var matched []models.User
	for _, user := range r.users {
		if user.ID != excludeID {
			matched = append(matched, *user)
		}
	}
	// Newest first, matching the production ordering.
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeUserRepo) GetProfile(userID uint) (*models.Profile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeUserRepo) SaveProfile(profile *models.Profile) error {
	if profile.ID == 0 {
		profile.ID = uint(len(r.profiles) + 1)
	}
	copied := *profile
	r.profiles[profile.UserID] = &copied
	return nil
}

type fakeFriendRepo struct {
	nextID      uint
	requests    map[uint]*models.FriendRequest
	friendships map[[2]uint]bool
}

func newFakeFriendRepo() *fakeFriendRepo {
	return &fakeFriendRepo{
		nextID:      1,
		requests:    map[uint]*models.FriendRequest{},
		friendships: map[[2]uint]bool{},
	}
}

func (r *fakeFriendRepo) pairKey(a, b uint) [2]uint {
	u1, u2 := models.CanonicalPair(a, b)
	return [2]uint{u1, u2}
}

func (r *fakeFriendRepo) CreateRequest(req *models.FriendRequest) error {
	for _, existing := range r.requests {
		if existing.SenderID == req.SenderID && existing.ReceiverID == req.ReceiverID {
			return repository.ErrDuplicate
		}
	}
	req.ID = r.nextID
	r.nextID++
	req.CreatedAt = time.Now()
	r.requests[req.ID] = req
	return nil
}

func (r *fakeFriendRepo) GetRequest(id uint) (*models.FriendRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *fakeFriendRepo) FindPendingRequest(senderID, receiverID uint) (*models.FriendRequest, error) {
	for _, req := range r.requests {
		if req.SenderID == senderID && req.ReceiverID == receiverID && req.Status == models.RequestPending {
			copied := *req
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeFriendRepo) ListPendingForReceiver(receiverID uint) ([]models.FriendRequest, error) {
	var pending []models.FriendRequest
	for _, req := range r.requests {
		if req.ReceiverID == receiverID && req.Status == models.RequestPending {
			pending = append(pending, *req)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	return pending, nil
}

func (r *fakeFriendRepo) CountPendingForReceiver(receiverID uint) (int64, error) {
	pending, _ := r.ListPendingForReceiver(receiverID)
	return int64(len(pending)), nil
}

func (r *fakeFriendRepo) CountPendingForSender(senderID uint) (int64, error) {
	var count int64
	for _, req := range r.requests {
		if req.SenderID == senderID && req.Status == models.RequestPending {
			count++
		}
	}
	return count, nil
}

func (r *fakeFriendRepo) AcceptRequest(req *models.FriendRequest) error {
	key := r.pairKey(req.SenderID, req.ReceiverID)
	if r.friendships[key] {
		return repository.ErrDuplicate
	}
	r.friendships[key] = true
	if stored, ok := r.requests[req.ID]; ok {
		stored.Status = models.RequestAccepted
	}
	return nil
}

func (r *fakeFriendRepo) DeleteRequest(id uint) error {
	if _, ok := r.requests[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *fakeFriendRepo) PurgeDeclined() (int64, error) {
	var purged int64
	for id, req := range r.requests {
		if req.Status == models.RequestDeclined {
			delete(r.requests, id)
			purged++
		}
	}
	return purged, nil
}

func (r *fakeFriendRepo) AreFriends(a, b uint) (bool, error) {
	return r.friendships[r.pairKey(a, b)], nil
}

func (r *fakeFriendRepo) FriendIDs(userID uint) ([]uint, error) {
	var ids []uint
	for key := range r.friendships {
		if key[0] == userID {
			ids = append(ids, key[1])
		} else if key[1] == userID {
			ids = append(ids, key[0])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeFriendRepo) CountFriends(userID uint) (int64, error) {
	ids, _ := r.FriendIDs(userID)
	return int64(len(ids)), nil
}

func (r *fakeFriendRepo) DeleteFriendship(a, b uint) error {
	key := r.pairKey(a, b)
	if !r.friendships[key] {
		return repository.ErrNotFound
	}
	delete(r.friendships, key)
	for id, req := range r.requests {
		sameA := req.SenderID == a && req.ReceiverID == b
		sameB := req.SenderID == b && req.ReceiverID == a
		if (sameA || sameB) && req.Status == models.RequestAccepted {
			delete(r.requests, id)
		}
	}
	return nil
}

type fakePostRepo struct {
	nextPostID    uint
	nextCommentID uint
	posts         map[uint]*models.Post
	comments      map[uint]*models.Comment
	users         *fakeUserRepo
}

func newFakePostRepo(users *fakeUserRepo) *fakePostRepo {
	return &fakePostRepo{
		nextPostID:    1,
		nextCommentID: 1,
		posts:         map[uint]*models.Post{},
		comments:      map[uint]*models.Comment{},
		users:         users,
	}
}

func (r *fakePostRepo) Create(post *models.Post) error {
	post.ID = r.nextPostID
	r.nextPostID++
	post.CreatedAt = time.Now()
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) Get(id uint) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) GetWithAuthor(id uint) (*models.Post, error) {
	post, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if author, err := r.users.GetByID(post.AuthorID); err == nil {
		post.Author = *author
	}
	return post, nil
}

func (r *fakePostRepo) Save(post *models.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepo) Delete(id uint) error {
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	for commentID, comment := range r.comments {
		if comment.PostID == id {
			delete(r.comments, commentID)
		}
	}
	return nil
}

func (r *fakePostRepo) ListByAuthors(authorIDs []uint, offset, limit int) ([]models.Post, int64, error) {
	matched := r.byAuthors(authorIDs)
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakePostRepo) RecentByAuthors(authorIDs []uint, limit int) ([]models.Post, error) {
	matched := r.byAuthors(authorIDs)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakePostRepo) Recent(limit int) ([]models.Post, error) {
	var all []uint
	for id := range r.posts {
		all = append(all, r.posts[id].AuthorID)
	}
	return r.RecentByAuthors(all, limit)
}

func (r *fakePostRepo) byAuthors(authorIDs []uint) []models.Post {
	allowed := map[uint]bool{}
	for _, id := range authorIDs {
		allowed[id] = true
	}
	var matched []models.Post
	for _, post := range r.posts {
		if allowed[post.AuthorID] {
			copied := *post
			if author, err := r.users.GetByID(post.AuthorID); err == nil {
				copied.Author = *author
			}
			matched = append(matched, copied)
		}
	}
	// Newest first, matching the production ordering.
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return matched
}

func (r *fakePostRepo) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	for _, post := range r.posts {
		if post.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (r *fakePostRepo) CountCommentsByAuthor(authorID uint) (int64, error) {
	var count int64
	for _, comment := range r.comments {
		if comment.AuthorID != nil && *comment.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (r *fakePostRepo) CreateComment(comment *models.Comment) error {
	comment.ID = r.nextCommentID
	r.nextCommentID++
	comment.CreatedAt = time.Now()
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakePostRepo) GetComment(id uint) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

func (r *fakePostRepo) DeleteComment(id uint) error {
	if _, ok := r.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *fakePostRepo) ListComments(postID uint) ([]models.Comment, error) {
	var matched []models.Comment
	for _, comment := range r.comments {
		if comment.PostID == postID {
			matched = append(matched, *comment)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (r *fakePostRepo) CountComments(postID uint) (int64, error) {
	comments, _ := r.ListComments(postID)
	return int64(len(comments)), nil
}

type voteKey struct {
	target   repository.VoteTarget
	targetID uint
	userID   uint
}

type fakeVoteRepo struct {
	votes map[voteKey]int
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: map[voteKey]int{}}
}

func (r *fakeVoteRepo) Find(target repository.VoteTarget, targetID, userID uint) (int, bool, error) {
	voteType, ok := r.votes[voteKey{target, targetID, userID}]
	return voteType, ok, nil
}

func (r *fakeVoteRepo) Insert(target repository.VoteTarget, targetID, userID uint, voteType int) error {
	key := voteKey{target, targetID, userID}
	if _, ok := r.votes[key]; ok {
		return repository.ErrDuplicate
	}
	r.votes[key] = voteType
	return nil
}

func (r *fakeVoteRepo) UpdateType(target repository.VoteTarget, targetID, userID uint, voteType int) error {
	r.votes[voteKey{target, targetID, userID}] = voteType
	return nil
}

func (r *fakeVoteRepo) Delete(target repository.VoteTarget, targetID, userID uint) error {
	delete(r.votes, voteKey{target, targetID, userID})
	return nil
}

func (r *fakeVoteRepo) Counts(target repository.VoteTarget, targetID uint) (int64, int64, error) {
	var likes, dislikes int64
	for key, voteType := range r.votes {
		if key.target == target && key.targetID == targetID {
			if voteType == models.VoteLike {
				likes++
			} else {
				dislikes++
			}
		}
	}
	return likes, dislikes, nil
}

type fakeMessageRepo struct {
	nextID   uint
	messages []*models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1}
}

func (r *fakeMessageRepo) Create(message *models.Message) error {
	message.ID = r.nextID
	r.nextID++
	message.CreatedAt = time.Now()
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) Conversation(a, b, afterID uint) ([]models.Message, error) {
	var matched []models.Message
	for _, m := range r.messages {
		between := (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
		if between && m.ID > afterID {
			matched = append(matched, *m)
		}
	}
	return matched, nil
}

func (r *fakeMessageRepo) MarkRead(readerID, otherID uint) error {
	for _, m := range r.messages {
		if m.ReceiverID == readerID && m.SenderID == otherID {
			m.IsRead = true
		}
	}
	return nil
}

func (r *fakeMessageRepo) UnreadCount(userID uint) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.ReceiverID == userID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) CountSent(userID uint) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.SenderID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) CountReceived(userID uint) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.ReceiverID == userID {
			count++
		}
	}
	return count, nil
}

type fakeChatRepo struct {
	nextID  uint
	entries map[uint]*models.ChatHistory
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{nextID: 1, entries: map[uint]*models.ChatHistory{}}
}

func (r *fakeChatRepo) Create(entry *models.ChatHistory) error {
	entry.ID = r.nextID
	r.nextID++
	entry.CreatedAt = time.Now()
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeChatRepo) SetMemoryID(id uint, memoryID string) error {
	if entry, ok := r.entries[id]; ok {
		entry.MemoryID = memoryID
	}
	return nil
}

func (r *fakeChatRepo) SessionMessages(userID uint, sessionID string) ([]models.ChatHistory, error) {
	var matched []models.ChatHistory
	for _, entry := range r.entries {
		if entry.UserID == userID && entry.SessionID == sessionID {
			matched = append(matched, *entry)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (r *fakeChatRepo) Sessions(userID uint) ([]repository.ChatSession, error) {
	seen := map[string]repository.ChatSession{}
	lastID := map[string]uint{}
	for _, entry := range r.entries {
		if entry.UserID != userID {
			continue
		}
		session := seen[entry.SessionID]
		session.SessionID = entry.SessionID
		// Ties on created_at resolve to the newest row, as in production.
		if entry.ID > lastID[entry.SessionID] {
			lastID[entry.SessionID] = entry.ID
			session.LastAt = entry.CreatedAt
			session.LastMessage = entry.UserMessage
		}
		seen[entry.SessionID] = session
	}
	var sessions []repository.ChatSession
	for _, session := range seen {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].LastAt.After(sessions[j].LastAt) })
	return sessions, nil
}

func (r *fakeChatRepo) CountSessions(userID uint) (int64, error) {
	seen := map[string]bool{}
	for _, entry := range r.entries {
		if entry.UserID == userID {
			seen[entry.SessionID] = true
		}
	}
	return int64(len(seen)), nil
}

func (r *fakeChatRepo) MemoryIDs(userID uint, sessionID string) ([]string, error) {
	var ids []string
	for _, entry := range r.entries {
		if entry.UserID != userID || entry.MemoryID == "" {
			continue
		}
		if sessionID != "" && entry.SessionID != sessionID {
			continue
		}
		ids = append(ids, entry.MemoryID)
	}
	return ids, nil
}

func (r *fakeChatRepo) DeleteSession(userID uint, sessionID string) error {
	for id, entry := range r.entries {
		if entry.UserID == userID && entry.SessionID == sessionID {
			delete(r.entries, id)
		}
	}
	return nil
}

func (r *fakeChatRepo) DeleteAll(userID uint) error {
	for id, entry := range r.entries {
		if entry.UserID == userID {
			delete(r.entries, id)
		}
	}
	return nil
}

type fakeActivityRepo struct {
	entries []models.ActivityLog
}

func (r *fakeActivityRepo) Append(entry *models.ActivityLog) error {
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeActivityRepo) List(offset, limit int) ([]models.ActivityLog, int64, error) {
	total := int64(len(r.entries))
	if offset >= len(r.entries) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(r.entries) {
		end = len(r.entries)
	}
	return r.entries[offset:end], total, nil
}

func (r *fakeActivityRepo) byType(activityType string) []models.ActivityLog {
	var matched []models.ActivityLog
	for _, entry := range r.entries {
		if entry.ActivityType == activityType {
			matched = append(matched, entry)
		}
	}
	return matched
}

func newTestLogger() (*ActivityLogger, *fakeActivityRepo) {
	repo := &fakeActivityRepo{}
	return NewActivityLogger(repo, nil, ""), repo
}

// fakeGenerator scripts the text generator's answers and failures.
type fakeGenerator struct {
	response    string
	generateErr error
	rewrite     string
	rewriteErr  error
	analysis    string
	analysisErr error
	comment     string
	commentErr  error

	lastSystemPrompt string
	generateCalls    int
}

func (g *fakeGenerator) Generate(_ context.Context, systemPrompt string, _ []assistant.ChatTurn, _ string) (string, error) {
	g.generateCalls++
	g.lastSystemPrompt = systemPrompt
	if g.generateErr != nil {
		return "", g.generateErr
	}
	return g.response, nil
}

func (g *fakeGenerator) Rewrite(_ context.Context, _ string) (string, error) {
	return g.rewrite, g.rewriteErr
}

func (g *fakeGenerator) Analyze(_ context.Context, _ string) (string, error) {
	return g.analysis, g.analysisErr
}

func (g *fakeGenerator) Comment(_ context.Context, _ string) (string, error) {
	return g.comment, g.commentErr
}

// fakeMemory scripts the vector memory store.
type fakeMemory struct {
	recalled    []string
	recallErr   error
	rememberErr error
	forgetErr   error

	nextID    int
	stored    map[string]string
	forgotten []string
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{stored: map[string]string{}}
}

func (m *fakeMemory) Recall(_ context.Context, _ uint, _ string, _ int) ([]string, error) {
	if m.recallErr != nil {
		return nil, m.recallErr
	}
	return m.recalled, nil
}

func (m *fakeMemory) Remember(_ context.Context, _ uint, _ string, text string) (string, error) {
	if m.rememberErr != nil {
		return "", m.rememberErr
	}
	m.nextID++
	id := fmt.Sprintf("mem-%d", m.nextID)
	m.stored[id] = text
	return id, nil
}

func (m *fakeMemory) Forget(_ context.Context, memoryIDs []string) error {
	if m.forgetErr != nil {
		return m.forgetErr
	}
	for _, id := range memoryIDs {
		delete(m.stored, id)
		m.forgotten = append(m.forgotten, id)
	}
	return nil
}
