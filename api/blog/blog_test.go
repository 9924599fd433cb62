package blog

import (
	"fmt"
	"strconv"
	"testing"

	"Yatube/api/forms"
	"Yatube/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return NewService(db, 10)
}

func createUser(t *testing.T, s *Service, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "password123"}
	user.Prepare()
	saved, err := user.SaveUser(s.DB)
	require.NoError(t, err)
	return saved
}

func createGroup(t *testing.T, s *Service, slug string) *models.Group {
	t.Helper()
	group := models.Group{Title: "Group " + slug, Slug: slug, Description: "Test description"}
	saved, err := group.SaveGroup(s.DB)
	require.NoError(t, err)
	return saved
}

func createPost(t *testing.T, s *Service, author *models.User, group *models.Group, text string) *models.Post {
	t.Helper()
	form := forms.PostForm{Text: text}
	if group != nil {
		form.Group = strconv.FormatUint(uint64(group.ID), 10)
	}
	post, err := s.CreatePost(author.ID, &form, "")
	require.NoError(t, err)
	return post
}

func TestGroupPostsPagination(t *testing.T) {
	s := setupService(t)
	author := createUser(t, s, "no_name")
	group := createGroup(t, s, "test-slug")
	for i := 1; i <= 17; i++ {
		createPost(t, s, author, group, fmt.Sprintf("Test text %d", i))
	}

	gotGroup, first, err := s.GroupPosts("test-slug", "")
	require.NoError(t, err)
	assert.Equal(t, group.ID, gotGroup.ID)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 2, first.NumPages)

	_, second, err := s.GroupPosts("test-slug", "2")
	require.NoError(t, err)
	assert.Len(t, second.Items, 7)
}

func TestListingsAreNewestFirst(t *testing.T) {
	s := setupService(t)
	author := createUser(t, s, "writer")
	older := createPost(t, s, author, nil, "older")
	newer := createPost(t, s, author, nil, "newer")

	page, err := s.IndexPosts("")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, newer.ID, page.Items[0].ID)
	assert.Equal(t, older.ID, page.Items[1].ID)
	assert.Equal(t, "writer", page.Items[0].Author.Username)
}

func TestPostAppearsOnlyInItsGroup(t *testing.T) {
	s := setupService(t)
	author := createUser(t, s, "no_name")
	group := createGroup(t, s, "test-slug")
	other := createGroup(t, s, "test-other-slug")
	post := createPost(t, s, author, group, "grouped")

	_, inGroup, err := s.GroupPosts(group.Slug, "")
	require.NoError(t, err)
	require.Len(t, inGroup.Items, 1)
	assert.Equal(t, post.ID, inGroup.Items[0].ID)
	require.NotNil(t, inGroup.Items[0].Group)
	assert.Equal(t, group.Slug, inGroup.Items[0].Group.Slug)

	_, inOther, err := s.GroupPosts(other.Slug, "")
	require.NoError(t, err)
	assert.Empty(t, inOther.Items)
}

func TestUnknownGroupAndProfile(t *testing.T) {
	s := setupService(t)

	_, _, err := s.GroupPosts("missing", "")
	assert.True(t, IsNotFound(err))

	_, _, err = s.ProfilePosts("ghost", "")
	assert.True(t, IsNotFound(err))
}

func TestProfilePostsOnlyAuthor(t *testing.T) {
	s := setupService(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")
	createPost(t, s, alice, nil, "from alice")
	createPost(t, s, bob, nil, "from bob")

	author, page, err := s.ProfilePosts("alice", "")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, author.ID)
	require.Len(t, page.Items, 1)
	assert.Equal(t, alice.ID, page.Items[0].AuthorID)
}

func TestValidatePostFormUnknownGroup(t *testing.T) {
	s := setupService(t)
	form := forms.PostForm{Text: "hello", Group: "999"}
	errs, err := s.ValidatePostForm(&form)
	require.NoError(t, err)
	assert.Contains(t, errs, "group")
}

func TestEditByNonAuthorIsRejected(t *testing.T) {
	s := setupService(t)
	author := createUser(t, s, "no_name")
	intruder := createUser(t, s, "ivan")
	post := createPost(t, s, author, nil, "original")

	loaded, err := s.PostForEdit(post.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrNotAuthor)
	require.NotNil(t, loaded)
	assert.Equal(t, post.ID, loaded.ID)

	_, err = s.UpdatePost(loaded, intruder.ID, &forms.PostForm{Text: "hijacked"}, "")
	assert.ErrorIs(t, err, ErrNotAuthor)

	_, comments, err := s.PostDetail(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
	reloaded, err := (&models.Post{}).FindPostByID(s.DB, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", reloaded.Text)
}

func TestEditByAuthorKeepsAuthor(t *testing.T) {
	s := setupService(t)
	author := createUser(t, s, "no_name")
	group := createGroup(t, s, "test-slug")
	post := createPost(t, s, author, nil, "original")

	loaded, err := s.PostForEdit(post.ID, author.ID)
	require.NoError(t, err)

	form := forms.PostForm{Text: "edited", Group: strconv.FormatUint(uint64(group.ID), 10)}
	updated, err := s.UpdatePost(loaded, author.ID, &form, "")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, author.ID, updated.AuthorID)
	require.NotNil(t, updated.GroupID)
	assert.Equal(t, group.ID, *updated.GroupID)
}

func TestAddCommentAndThreadOrder(t *testing.T) {
	s := setupService(t)
	author := createUser(t, s, "no_name")
	reader := createUser(t, s, "reader")
	post := createPost(t, s, author, nil, "post")

	_, err := s.AddComment(post.ID, reader.ID, &forms.CommentForm{Text: "first"})
	require.NoError(t, err)
	_, err = s.AddComment(post.ID, author.ID, &forms.CommentForm{Text: "second"})
	require.NoError(t, err)

	_, comments, err := s.PostDetail(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "reader", comments[0].Author.Username)
	assert.Equal(t, "second", comments[1].Text)

	_, err = s.AddComment(9999, reader.ID, &forms.CommentForm{Text: "orphan"})
	assert.True(t, IsNotFound(err))
}

func TestFeedFollowsAuthors(t *testing.T) {
	s := setupService(t)
	a := createUser(t, s, "ivan")
	b := createUser(t, s, "nikolay")
	c := createUser(t, s, "outsider")

	_, created, err := s.Follow(b.ID, a.Username)
	require.NoError(t, err)
	assert.True(t, created)

	before, err := s.FeedPosts(b.ID, "")
	require.NoError(t, err)
	outsiderBefore, err := s.FeedPosts(c.ID, "")
	require.NoError(t, err)

	createPost(t, s, a, nil, "new text")

	after, err := s.FeedPosts(b.ID, "")
	require.NoError(t, err)
	assert.Equal(t, before.Count+1, after.Count)

	outsiderAfter, err := s.FeedPosts(c.ID, "")
	require.NoError(t, err)
	assert.Equal(t, outsiderBefore.Count, outsiderAfter.Count)
}

func TestFollowIsIdempotent(t *testing.T) {
	s := setupService(t)
	a := createUser(t, s, "ivan")
	b := createUser(t, s, "nikolay")

	_, created, err := s.Follow(b.ID, a.Username)
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = s.Follow(b.ID, a.Username)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, s.DB.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	following, err := s.IsFollowing(b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestSelfFollowIsRefused(t *testing.T) {
	s := setupService(t)
	a := createUser(t, s, "ivan")

	_, created, err := s.Follow(a.ID, a.Username)
	assert.ErrorIs(t, err, ErrSelfFollow)
	assert.False(t, created)

	var count int64
	require.NoError(t, s.DB.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUnfollow(t *testing.T) {
	s := setupService(t)
	a := createUser(t, s, "ivan")
	b := createUser(t, s, "nikolay")
	createPost(t, s, a, nil, "by ivan")

	_, _, err := s.Follow(b.ID, a.Username)
	require.NoError(t, err)
	feed, err := s.FeedPosts(b.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), feed.Count)

	require.NoError(t, s.Unfollow(b.ID, a.Username))

	feed, err = s.FeedPosts(b.ID, "")
	require.NoError(t, err)
	assert.Zero(t, feed.Count)

	err = s.Unfollow(b.ID, a.Username)
	assert.ErrorIs(t, err, ErrFollowNotFound)
	assert.True(t, IsNotFound(err))

	assert.ErrorIs(t, s.Unfollow(b.ID, "ghost"), ErrFollowNotFound)
}
