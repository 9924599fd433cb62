// Package forms declares the user-editable fields of each page form and
// their field-level validation. Errors are keyed by field name so templates
// can print them next to the matching input.
package forms

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"Yatube/api/models"
)

type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e Errors) Any() bool { return len(e) > 0 }

// PostFormUnmappedFields lists post form fields with no Post column. The
// values are accepted and discarded; product has to decide whether posts
// get a title.
var PostFormUnmappedFields = []string{"title"}

type PostForm struct {
	Title string `form:"title"`
	Text  string `form:"text"`
	Group string `form:"group"`
}

func NewPostForm(post *models.Post) PostForm {
	form := PostForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = strconv.FormatUint(uint64(*post.GroupID), 10)
	}
	return form
}

func (f *PostForm) Prepare() {
	f.Title = strings.TrimSpace(f.Title)
	f.Text = strings.TrimSpace(f.Text)
	f.Group = strings.TrimSpace(f.Group)
}

// Validate checks the fields that do not need the database. Group
// existence is checked by the blog service.
func (f *PostForm) Validate() Errors {
	errs := Errors{}
	if f.Text == "" {
		errs.Add("text", "This field is required.")
	} else if n := utf8.RuneCountInString(f.Text); n > models.PostTextMaxLength {
		errs.Add("text", fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", models.PostTextMaxLength, n))
	}
	if f.Group != "" {
		if _, err := strconv.ParseUint(f.Group, 10, 32); err != nil {
			errs.Add("group", "Select a valid choice.")
		}
	}
	return errs
}

// GroupID is nil for "no group" and for values Validate rejects.
func (f *PostForm) GroupID() *uint {
	if f.Group == "" {
		return nil
	}
	id, err := strconv.ParseUint(f.Group, 10, 32)
	if err != nil || id == 0 {
		return nil
	}
	gid := uint(id)
	return &gid
}

// HasUnmappedValues reports whether the submitter filled in a field that
// will not be stored.
func (f *PostForm) HasUnmappedValues() bool {
	return f.Title != ""
}

type CommentForm struct {
	Text string `form:"text"`
}

func (f *CommentForm) Prepare() {
	f.Text = strings.TrimSpace(f.Text)
}

func (f *CommentForm) Validate() Errors {
	errs := Errors{}
	if f.Text == "" {
		errs.Add("text", "This field is required.")
	} else if n := utf8.RuneCountInString(f.Text); n > models.CommentTextMaxLength {
		errs.Add("text", fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", models.CommentTextMaxLength, n))
	}
	return errs
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

type SignupForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password1"`
	PasswordConfirm string `form:"password2"`
}

func (f *SignupForm) Validate(user *models.User) Errors {
	errs := Errors{}
	for field, message := range user.Validate("") {
		if field == "password" {
			field = "password1"
		}
		errs.Add(field, message)
	}
	if f.Password != f.PasswordConfirm {
		errs.Add("password2", "The two password fields didn't match.")
	}
	return errs
}
