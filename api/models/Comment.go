package models

import (
	"time"

	"gorm.io/gorm"
)

const CommentTextMaxLength = 400

// Comment is append-only; Created is written on insert and never updated.
type Comment struct {
	ID       uint      `gorm:"primary_key;autoIncrement" json:"id"`
	PostID   *uint     `gorm:"index" json:"post_id"`
	Post     *Post     `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	AuthorID *uint     `gorm:"index" json:"author_id"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"author,omitempty"`
	Text     string    `gorm:"type:text" json:"text"`
	Created  time.Time `gorm:"<-:create;autoCreateTime" json:"created"`
}

func (c *Comment) SaveComment(db *gorm.DB) (*Comment, error) {
	if err := db.Omit("Post", "Author").Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetComments returns the thread of a post in chronological order.
func (c *Comment) GetComments(db *gorm.DB, postID uint) ([]Comment, error) {
	comments := []Comment{}
	err := db.Preload("Author").Where("post_id = ?", postID).
		Order("created ASC, id ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
