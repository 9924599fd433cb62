package controllers

import (
	"net/http"
	"testing"

	"Yatube/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) countFollows(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, s.DB.Model(&models.Follow{}).Count(&count).Error)
	return count
}

func TestFollowFeed(t *testing.T) {
	s := setupServer(t)
	ivan := s.createUser(t, "ivan")
	nikolay := s.createUser(t, "nikolay")
	outsider := s.createUser(t, "outsider")

	w := s.get(t, "/profile/ivan/follow/", nikolay)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/follow/", w.Header().Get("Location"))
	assert.Equal(t, int64(1), s.countFollows(t))

	s.createPost(t, ivan, nil, "Fresh from ivan")

	w = s.get(t, "/follow/", nikolay)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, countPostCards(w.Body.String()))
	assert.Contains(t, w.Body.String(), "Fresh from ivan")

	w = s.get(t, "/follow/", outsider)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, countPostCards(w.Body.String()))
}

func TestFollowTwiceKeepsOneEdge(t *testing.T) {
	s := setupServer(t)
	s.createUser(t, "ivan")
	nikolay := s.createUser(t, "nikolay")

	s.get(t, "/profile/ivan/follow/", nikolay)
	w := s.get(t, "/profile/ivan/follow/", nikolay)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, int64(1), s.countFollows(t))
}

func TestSelfFollowIsIgnored(t *testing.T) {
	s := setupServer(t)
	ivan := s.createUser(t, "ivan")

	w := s.get(t, "/profile/ivan/follow/", ivan)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Zero(t, s.countFollows(t))
}

func TestFollowUnknownAuthor(t *testing.T) {
	s := setupServer(t)
	nikolay := s.createUser(t, "nikolay")

	w := s.get(t, "/profile/ghost/follow/", nikolay)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnfollow(t *testing.T) {
	s := setupServer(t)
	s.createUser(t, "ivan")
	nikolay := s.createUser(t, "nikolay")
	s.get(t, "/profile/ivan/follow/", nikolay)

	w := s.get(t, "/profile/ivan/", nikolay)
	assert.Contains(t, w.Body.String(), "/profile/ivan/unfollow/")

	w = s.get(t, "/profile/ivan/unfollow/", nikolay)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/ivan/", w.Header().Get("Location"))
	assert.Zero(t, s.countFollows(t))

	w = s.get(t, "/profile/ivan/", nikolay)
	assert.Contains(t, w.Body.String(), "/profile/ivan/follow/")

	w = s.get(t, "/profile/ivan/unfollow/", nikolay)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowRoutesRequireLogin(t *testing.T) {
	s := setupServer(t)
	s.createUser(t, "ivan")

	for path, next := range map[string]string{
		"/follow/":                "%2Ffollow%2F",
		"/profile/ivan/follow/":   "%2Fprofile%2Fivan%2Ffollow%2F",
		"/profile/ivan/unfollow/": "%2Fprofile%2Fivan%2Funfollow%2F",
	} {
		w := s.get(t, path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/auth/login/?next="+next, w.Header().Get("Location"), path)
	}
	assert.Zero(t, s.countFollows(t))
}
