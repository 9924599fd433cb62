package models

import (
	"strings"

	"gorm.io/gorm"
)

// Group is a topic board. Groups are created by administrators or the seeder.
type Group struct {
	ID          uint   `gorm:"primary_key;autoIncrement" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"size:200;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
}

func (g *Group) String() string {
	return g.Title
}

func (g *Group) Prepare() {
	g.Title = strings.TrimSpace(g.Title)
	g.Slug = strings.TrimSpace(g.Slug)
	g.Description = strings.TrimSpace(g.Description)
}

func (g *Group) Validate() map[string]string {
	errorMessages := make(map[string]string)
	if g.Title == "" {
		errorMessages["title"] = "Required title"
	}
	if g.Slug == "" {
		errorMessages["slug"] = "Required slug"
	}
	return errorMessages
}

func (g *Group) SaveGroup(db *gorm.DB) (*Group, error) {
	if err := db.Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Group) FindGroupBySlug(db *gorm.DB, slug string) (*Group, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var group Group
	if err := db.Where("slug = ?", slug).Take(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (g *Group) FindAllGroups(db *gorm.DB) ([]Group, error) {
	groups := []Group{}
	if err := db.Order("title ASC, id ASC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}
