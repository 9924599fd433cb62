package controllers

import (
	"bytes"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"Yatube/api/auth"
	"Yatube/api/cache"
	"Yatube/api/config"
	"Yatube/api/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testServer struct {
	*Server
	redis *miniredis.Miniredis
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	server := &Server{
		DB: db,
		Config: config.Config{
			APISecret:     "test-secret",
			SessionTTL:    time.Hour,
			PostsPerPage:  10,
			IndexCacheTTL: 20 * time.Second,
			MediaRoot:     t.TempDir(),
			MediaURL:      "/media/",
		},
		Cache: cache.New(client),
	}
	server.Setup()
	return &testServer{Server: server, redis: mr}
}

func (s *testServer) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "password123"}
	saved, err := user.SaveUser(s.DB)
	require.NoError(t, err)
	return saved
}

func (s *testServer) createGroup(t *testing.T, slug string) *models.Group {
	t.Helper()
	group := models.Group{Title: "Group " + slug, Slug: slug, Description: "Test description"}
	saved, err := group.SaveGroup(s.DB)
	require.NoError(t, err)
	return saved
}

func (s *testServer) createPost(t *testing.T, author *models.User, group *models.Group, text string) *models.Post {
	t.Helper()
	post := models.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		post.GroupID = &group.ID
	}
	saved, err := post.SavePost(s.DB)
	require.NoError(t, err)
	return saved
}

func (s *testServer) countPosts(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, s.DB.Model(&models.Post{}).Count(&count).Error)
	return count
}

// do runs req, authenticated as user when user is not nil.
func (s *testServer) do(t *testing.T, req *http.Request, user *models.User) *httptest.ResponseRecorder {
	t.Helper()
	if user != nil {
		token, err := s.Tokens.CreateToken(user.ID)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(t *testing.T, path string, user *models.User) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, httptest.NewRequest(http.MethodGet, path, nil), user)
}

func (s *testServer) postForm(t *testing.T, path string, values url.Values, user *models.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(t, req, user)
}

// multipartPost sends fields plus an "image" file when image is not nil.
func (s *testServer) multipartPost(t *testing.T, path string, fields map[string]string, image []byte, user *models.User) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "small.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(t, req, user)
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	img := imaging.New(4, 4, color.NRGBA{R: 10, G: 120, B: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func renderedTemplate(body string) string {
	const marker = `data-template="`
	i := strings.Index(body, marker)
	if i < 0 {
		return ""
	}
	rest := body[i+len(marker):]
	return rest[:strings.Index(rest, `"`)]
}

func countPostCards(body string) int {
	return strings.Count(body, `<article class="post"`)
}
