package models

import (
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

const (
	PostTextMaxLength = 400
	postStringLength  = 15
)

// CreatedModel carries the publication timestamp shared by published content.
type CreatedModel struct {
	PubDate time.Time `gorm:"column:pub_date;autoCreateTime;index" json:"pub_date"`
}

// Post has no title column. The post form still declares one; see
// forms.PostFormUnmappedFields.
type Post struct {
	ID uint `gorm:"primary_key;autoIncrement" json:"id"`
	CreatedModel
	Text      string    `gorm:"type:text" json:"text"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group,omitempty"`
	Image     string    `gorm:"size:255" json:"image"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostOrder is the default listing order: newest first.
const PostOrder = "posts.pub_date DESC, posts.id DESC"

func (p *Post) String() string {
	if utf8.RuneCountInString(p.Text) <= postStringLength {
		return p.Text
	}
	return string([]rune(p.Text)[:postStringLength])
}

func (p *Post) SavePost(db *gorm.DB) (*Post, error) {
	if err := db.Omit("Author", "Group").Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) FindPostByID(db *gorm.DB, id uint) (*Post, error) {
	var post Post
	if err := db.Preload("Author").Preload("Group").Where("id = ?", id).Take(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost writes the editable columns only. The author is never touched.
func (p *Post) UpdatePost(db *gorm.DB) (*Post, error) {
	err := db.Model(&Post{}).Where("id = ?", p.ID).
		Select("text", "group_id", "image", "updated_at").
		Updates(map[string]interface{}{
			"text":       p.Text,
			"group_id":   p.GroupID,
			"image":      p.Image,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return p.FindPostByID(db, p.ID)
}
