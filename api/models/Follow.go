package models

import "time"

// Follow is a directed edge: User follows Author. Both ends are cleared,
// not cascaded, when a user row goes away.
type Follow struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    *uint     `gorm:"index;uniqueIndex:idx_follows_unique,priority:1" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	AuthorID  *uint     `gorm:"index;uniqueIndex:idx_follows_unique,priority:2" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	}
}
