package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/anonto42/curious/backend/internal/apperrors"
	"github.com/anonto42/curious/backend/internal/models"
	"github.com/anonto42/curious/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSocial serves a fixed follow graph keyed by user id
type stubSocial struct {
	services.SocialService

	following map[uint][]models.User
	followers map[uint][]models.User
}

func (s *stubSocial) ListFollowing(_ context.Context, userID uint) ([]models.User, error) {
	users, ok := s.following[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, apperrors.ErrNotFound)
	}
	return users, nil
}

func (s *stubSocial) ListFollowers(_ context.Context, userID uint) ([]models.User, error) {
	users, ok := s.followers[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, apperrors.ErrNotFound)
	}
	return users, nil
}

func newStubSocial() *stubSocial {
	ada := models.User{ID: 1, Username: "ada"}
	grace := models.User{ID: 2, Username: "grace"}
	linus := models.User{ID: 3, Username: "linus"}
	return &stubSocial{
		following: map[uint][]models.User{1: {grace}, 2: {}, 3: {ada, grace}},
		followers: map[uint][]models.User{1: {linus}, 2: {ada, linus}, 3: {}},
	}
}

func TestListFollowsOfAnyUser(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{"followers of another user", "/api/v1/users/2/followers", []string{"ada", "linus"}},
		{"following of another user", "/api/v1/users/3/following", []string{"ada", "grace"}},
		{"own followers by id", "/api/v1/users/1/followers", []string{"linus"}},
		{"nobody followed", "/api/v1/users/2/following", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the caller is ada (1); the path decides whose edges are listed
			rec := serve(t, NewFollowHandler(newStubSocial()).RegisterFollowRoutes, 1, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code)

			var users []models.User
			decode(t, rec, &users)
			names := make([]string, 0, len(users))
			for _, u := range users {
				names = append(names, u.Username)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestListFollowsOfAnyUser_Errors(t *testing.T) {
	routes := NewFollowHandler(newStubSocial()).RegisterFollowRoutes

	assert.Equal(t, http.StatusNotFound, serve(t, routes, 1, http.MethodGet, "/api/v1/users/99/followers", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, routes, 1, http.MethodGet, "/api/v1/users/99/following", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, routes, 1, http.MethodGet, "/api/v1/users/ada/followers", "").Code)
}

func TestListOwnFollows(t *testing.T) {
	routes := NewFollowHandler(newStubSocial()).RegisterFollowRoutes

	rec := serve(t, routes, 3, http.MethodGet, "/api/v1/follows/following", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users []models.User
	decode(t, rec, &users)
	assert.Len(t, users, 2)

	assert.Equal(t, http.StatusUnauthorized, serve(t, routes, 0, http.MethodGet, "/api/v1/follows/followers", "").Code)
}
