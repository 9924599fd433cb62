// Package blog composes the queries and enforces the ownership rules behind
// every page: listings, the follow feed, post detail, authoring and the
// follow graph.
package blog

import (
	"Yatube/api/config"
	"Yatube/api/models"
	"Yatube/api/paginator"

	"gorm.io/gorm"
)

type PostPage = paginator.Page[models.Post]

type Service struct {
	DB      *gorm.DB
	PerPage int
}

func NewService(db *gorm.DB, perPage int) *Service {
	if perPage < 1 {
		perPage = config.DefaultPostsPerPage
	}
	return &Service{DB: db, PerPage: perPage}
}

func (s *Service) posts() *gorm.DB {
	return s.DB.Model(&models.Post{}).Order(models.PostOrder)
}

func withPostRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Group")
}

func (s *Service) paginate(query *gorm.DB, rawPage string) (*PostPage, error) {
	return paginator.Paginate[models.Post](query, rawPage, s.PerPage, withPostRelations)
}

// IndexPosts lists every post.
func (s *Service) IndexPosts(rawPage string) (*PostPage, error) {
	return s.paginate(s.posts(), rawPage)
}

// GroupPosts lists the posts of the group with the given slug.
func (s *Service) GroupPosts(slug, rawPage string) (*models.Group, *PostPage, error) {
	group, err := (&models.Group{}).FindGroupBySlug(s.DB, slug)
	if err != nil {
		return nil, nil, err
	}
	page, err := s.paginate(s.posts().Where("posts.group_id = ?", group.ID), rawPage)
	if err != nil {
		return nil, nil, err
	}
	return group, page, nil
}

// ProfilePosts lists the posts written by username.
func (s *Service) ProfilePosts(username, rawPage string) (*models.User, *PostPage, error) {
	author, err := (&models.User{}).FindUserByUsername(s.DB, username)
	if err != nil {
		return nil, nil, err
	}
	page, err := s.paginate(s.posts().Where("posts.author_id = ?", author.ID), rawPage)
	if err != nil {
		return nil, nil, err
	}
	return author, page, nil
}

// FeedPosts lists posts by every author viewerID follows.
func (s *Service) FeedPosts(viewerID uint, rawPage string) (*PostPage, error) {
	followed := s.DB.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ? AND author_id IS NOT NULL", viewerID)
	return s.paginate(s.posts().Where("posts.author_id IN (?)", followed), rawPage)
}

func (s *Service) Post(postID uint) (*models.Post, error) {
	return (&models.Post{}).FindPostByID(s.DB, postID)
}

// PostDetail loads a post with its comment thread.
func (s *Service) PostDetail(postID uint) (*models.Post, []models.Comment, error) {
	post, err := (&models.Post{}).FindPostByID(s.DB, postID)
	if err != nil {
		return nil, nil, err
	}
	comments, err := (&models.Comment{}).GetComments(s.DB, post.ID)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

func (s *Service) Groups() ([]models.Group, error) {
	return (&models.Group{}).FindAllGroups(s.DB)
}

// AuthorPostCount is shown next to the author on detail pages.
func (s *Service) AuthorPostCount(authorID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}
