package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"Yatube/api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearIndexCache(t *testing.T) {
	s := setupServer(t)
	admin := s.createUser(t, "root")
	require.NoError(t, s.DB.Model(admin).Update("is_admin", true).Error)
	author := s.createUser(t, "no_name")
	s.createPost(t, author, nil, "Cached text")

	s.get(t, "/", nil)
	w := s.get(t, "/", nil)
	require.Equal(t, "HIT", w.Header().Get("X-Cache"))

	w = s.do(t, httptest.NewRequest(http.MethodPost, "/admin/cache/clear/", nil), author)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, httptest.NewRequest(http.MethodPost, "/admin/cache/clear/", nil), nil)
	assert.Equal(t, http.StatusFound, w.Code)

	w = s.do(t, httptest.NewRequest(http.MethodPost, "/admin/cache/clear/", nil), admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cleared": 1}`, w.Body.String())

	w = s.get(t, "/", nil)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
}

func TestMetricsEndpoint(t *testing.T) {
	s := setupServer(t)
	s.get(t, "/", nil)

	w := s.get(t, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "yatube_http_requests_total")
	assert.Contains(t, w.Body.String(), "yatube_index_cache_misses_total")
}

func TestSeedAdmin(t *testing.T) {
	s := setupServer(t)
	cfg := config.Config{AdminUsername: "boss", AdminEmail: "boss@example.com", AdminPassword: "password123"}

	require.NoError(t, seedAdmin(s.DB, cfg))
	require.NoError(t, seedAdmin(s.DB, cfg))

	var admins int64
	require.NoError(t, s.DB.Table("users").Where("username = ? AND is_admin = ?", "boss", true).Count(&admins).Error)
	assert.Equal(t, int64(1), admins)

	require.NoError(t, seedAdmin(s.DB, config.Config{}))
}
