package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/anonto42/curious/backend/internal/apperrors"
	"github.com/anonto42/curious/backend/internal/models"
	"github.com/anonto42/curious/backend/internal/repositories"
)

// memStore is an in-memory stand-in for every repository the services use
type memStore struct {
	mu            sync.Mutex
	users         []models.User
	prompts       []models.Prompt
	contents      []models.Content
	links         []models.ResponseLink
	follows       []models.Follow
	notifications []models.Notification

	// saveErr, when set, is consulted before each SaveSubjectContents call
	saveErr func(subject models.Subject) error
}

var (
	_ repositories.UserRepository         = (*memStore)(nil)
	_ repositories.PromptRepository       = (*memStore)(nil)
	_ repositories.ContentRepository      = (*memStore)(nil)
	_ repositories.ResponseLinkRepository = (*memStore)(nil)
	_ repositories.FollowRepository       = (*memStore)(nil)
	_ repositories.NotificationRepository = (*memStore)(nil)
)

func newMemStore() *memStore { return &memStore{} }

func notFound(what string) error { return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what) }

// users

func (m *memStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperrors.ErrConflict
		}
	}
	user.ID = uint(len(m.users) + 1)
	m.users = append(m.users, *user)
	return nil
}

func (m *memStore) addUser(username string) *models.User {
	u := &models.User{Username: username, Email: username + "@example.com", FullName: username}
	_ = m.CreateUser(context.Background(), u)
	return u
}

func (m *memStore) findUser(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, notFound("user")
}

func (m *memStore) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.ID == id })
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Username == username })
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Email == email })
}

func (m *memStore) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.FirebaseUID != nil && *u.FirebaseUID == uid })
}

func (m *memStore) GetUsers(_ context.Context, offset, limit int) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return page(m.users, offset, limit), nil
}

func (m *memStore) UpdateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == user.ID {
			m.users[i] = *user
			return nil
		}
	}
	return notFound("user")
}

func (m *memStore) SearchUsers(context.Context, string, int) ([]models.User, error) {
	return nil, nil
}

// prompts

func (m *memStore) CreatePrompt(_ context.Context, prompt *models.Prompt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prompt.ID = uint(len(m.prompts) + 1)
	m.prompts = append(m.prompts, *prompt)
	return nil
}

func (m *memStore) addPrompt(userID uint, title string, private bool) *models.Prompt {
	p := &models.Prompt{Title: title, Keywords: title, UserID: userID, IsPrivate: private}
	_ = m.CreatePrompt(context.Background(), p)
	return p
}

func (m *memStore) GetPromptByID(_ context.Context, id uint) (*models.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.prompts {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, notFound("prompt")
}

func (m *memStore) GetPromptsByUser(ctx context.Context, userID uint) ([]models.Prompt, error) {
	return m.GetLatestPrompts(ctx, userID, len(m.prompts), false)
}

func (m *memStore) GetLatestPrompts(_ context.Context, userID uint, limit int, publicOnly bool) ([]models.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Prompt
	for i := len(m.prompts) - 1; i >= 0 && len(out) < limit; i-- {
		p := m.prompts[i]
		if p.UserID != userID || (publicOnly && p.IsPrivate) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) UpdateVisibility(_ context.Context, id uint, isPrivate bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.prompts {
		if m.prompts[i].ID == id {
			m.prompts[i].IsPrivate = isPrivate
			return nil
		}
	}
	return notFound("prompt")
}

// contents and links

func (m *memStore) GetContentByID(_ context.Context, id uint) (*models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.contents {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, notFound("content")
}

func (m *memStore) GetContents(_ context.Context, offset, limit int) ([]models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return page(m.contents, offset, limit), nil
}

func (m *memStore) GetContentsByIDs(_ context.Context, ids []uint) ([]models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []models.Content{}
	for _, c := range m.contents {
		if want[c.ID] {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) addContent(title string) models.Content {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := models.Content{ID: uint(len(m.contents) + 1), Title: title, Link: "https://example.com/" + title, Source: "youtube", Active: true}
	m.contents = append(m.contents, c)
	return c
}

func (m *memStore) addLink(promptID, contentID uint, subject, description string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = append(m.links, models.ResponseLink{
		ID:                 uint(len(m.links) + 1),
		PromptID:           promptID,
		ContentID:          contentID,
		Subject:            subject,
		SubjectDescription: description,
	})
}

func (m *memStore) SaveSubjectContents(_ context.Context, promptID uint, subject models.Subject, candidates []models.ContentCandidate) ([]models.Content, error) {
	if m.saveErr != nil {
		if err := m.saveErr(subject); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	created := make([]models.Content, 0, len(candidates))
	for _, cand := range candidates {
		c := cand.ToContent()
		c.ID = uint(len(m.contents) + 1)
		m.contents = append(m.contents, c)
		m.links = append(m.links, models.ResponseLink{
			ID:                 uint(len(m.links) + 1),
			PromptID:           promptID,
			ContentID:          c.ID,
			Subject:            subject.Name,
			SubjectDescription: subject.Description,
		})
		created = append(created, c)
	}
	return created, nil
}

func (m *memStore) GetFirstLinks(_ context.Context, promptID uint, limit int) ([]models.ResponseLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ResponseLink
	for _, l := range m.links {
		if l.PromptID == promptID && len(out) < limit {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) GetLinksByPrompt(ctx context.Context, promptID uint) ([]models.ResponseLink, error) {
	return m.GetFirstLinks(ctx, promptID, len(m.links))
}

func (m *memStore) GetContentsBySubject(_ context.Context, subject string) ([]models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Content
	for _, l := range m.links {
		if l.Subject != subject {
			continue
		}
		for _, c := range m.contents {
			if c.ID == l.ContentID {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

// follows

func (m *memStore) CreateFollow(_ context.Context, follow *models.Follow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.follows {
		if f.FollowerID == follow.FollowerID && f.FollowingID == follow.FollowingID {
			return apperrors.ErrConflict
		}
	}
	follow.ID = uint(len(m.follows) + 1)
	m.follows = append(m.follows, *follow)
	return nil
}

func (m *memStore) DeleteFollow(_ context.Context, followerID, followingID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, f := range m.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			m.follows = append(m.follows[:i], m.follows[i+1:]...)
			return nil
		}
	}
	return notFound("follow relationship")
}

func (m *memStore) IsFollowing(_ context.Context, followerID, followingID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) edgeUsers(match func(models.Follow) (uint, bool)) []models.User {
	m.mu.Lock()
	var ids []uint
	for _, f := range m.follows {
		if id, ok := match(f); ok {
			ids = append(ids, id)
		}
	}
	m.mu.Unlock()

	var out []models.User
	for _, id := range ids {
		if u, err := m.GetUserByID(context.Background(), id); err == nil {
			out = append(out, *u)
		}
	}
	return out
}

func (m *memStore) GetFollowers(_ context.Context, userID uint) ([]models.User, error) {
	return m.edgeUsers(func(f models.Follow) (uint, bool) { return f.FollowerID, f.FollowingID == userID }), nil
}

func (m *memStore) GetFollowing(_ context.Context, userID uint) ([]models.User, error) {
	return m.edgeUsers(func(f models.Follow) (uint, bool) { return f.FollowingID, f.FollowerID == userID }), nil
}

func (m *memStore) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	users, _ := m.GetFollowers(ctx, userID)
	return int64(len(users)), nil
}

func (m *memStore) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	users, _ := m.GetFollowing(ctx, userID)
	return int64(len(users)), nil
}

// notifications

func (m *memStore) CreateNotification(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = uint(len(m.notifications) + 1)
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *memStore) GetByRecipientID(_ context.Context, recipientID uint, _, _ int) ([]models.Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memStore) GetUnreadCount(context.Context, uint) (int64, error) { return 0, nil }

func (m *memStore) MarkAsRead(context.Context, uint, uint) error { return nil }

func (m *memStore) MarkAllAsRead(context.Context, uint) error { return nil }

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return append([]T(nil), items[offset:end]...)
}

// fakeSearcher answers every query with the same per-source results
type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]models.ContentCandidate
	queries []string
}

func (f *fakeSearcher) SearchAll(_ context.Context, query string) map[string][]models.ContentCandidate {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	out := make(map[string][]models.ContentCandidate, 3)
	for _, name := range f.SourceNames() {
		out[name] = append([]models.ContentCandidate{}, f.results[name]...)
	}
	return out
}

func (f *fakeSearcher) SourceNames() []string { return []string{"youtube", "reddit", "twitter"} }

type fakeResolver struct {
	res   *models.Resolution
	err   error
	calls int
}

func (f *fakeResolver) Resolve(context.Context, string) (*models.Resolution, error) {
	f.calls++
	return f.res, f.err
}
