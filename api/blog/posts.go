package blog

import (
	"log"

	"Yatube/api/forms"
	"Yatube/api/models"
)

// ValidatePostForm runs the field checks and confirms the chosen group exists.
func (s *Service) ValidatePostForm(form *forms.PostForm) (forms.Errors, error) {
	errs := form.Validate()
	if gid := form.GroupID(); gid != nil && !errs.Any() {
		var count int64
		if err := s.DB.Model(&models.Group{}).Where("id = ?", *gid).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			errs.Add("group", "Select a valid choice. That choice is not one of the available choices.")
		}
	}
	return errs, nil
}

// CreatePost stores a validated form as a new post by authorID.
func (s *Service) CreatePost(authorID uint, form *forms.PostForm, image string) (*models.Post, error) {
	if form.HasUnmappedValues() {
		log.Printf("[posts] author %d submitted %v; posts have no such column, value dropped", authorID, forms.PostFormUnmappedFields)
	}
	post := models.Post{
		Text:     form.Text,
		AuthorID: authorID,
		GroupID:  form.GroupID(),
		Image:    image,
	}
	return post.SavePost(s.DB)
}

// PostForEdit loads a post for its author. Anyone else gets ErrNotAuthor
// together with the post so the caller can redirect to it.
func (s *Service) PostForEdit(postID, editorID uint) (*models.Post, error) {
	post, err := (&models.Post{}).FindPostByID(s.DB, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != editorID {
		return post, ErrNotAuthor
	}
	return post, nil
}

// UpdatePost applies a validated form. An empty image keeps the current one.
func (s *Service) UpdatePost(post *models.Post, editorID uint, form *forms.PostForm, image string) (*models.Post, error) {
	if post.AuthorID != editorID {
		return post, ErrNotAuthor
	}
	if form.HasUnmappedValues() {
		log.Printf("[posts] post %d edit submitted %v; posts have no such column, value dropped", post.ID, forms.PostFormUnmappedFields)
	}
	post.Text = form.Text
	post.GroupID = form.GroupID()
	if image != "" {
		post.Image = image
	}
	return post.UpdatePost(s.DB)
}

// AddComment attaches a validated comment to an existing post.
func (s *Service) AddComment(postID, authorID uint, form *forms.CommentForm) (*models.Comment, error) {
	var post models.Post
	if err := s.DB.Select("id").Where("id = ?", postID).Take(&post).Error; err != nil {
		return nil, err
	}
	comment := models.Comment{
		PostID:   &post.ID,
		AuthorID: &authorID,
		Text:     form.Text,
	}
	return comment.SaveComment(s.DB)
}
