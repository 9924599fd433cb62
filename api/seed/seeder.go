package seed

import (
	"fmt"
	"log"

	"Yatube/api/models"

	"gorm.io/gorm"
)

var users = []models.User{
	{
		Username: "leo",
		Email:    "leo@example.com",
		Password: "password123",
	},
	{
		Username: "anna",
		Email:    "anna@example.com",
		Password: "password123",
	},
}

var groups = []models.Group{
	{
		Title:       "Cats",
		Slug:        "cats",
		Description: "Everything about cats.",
	},
	{
		Title:       "Travel",
		Slug:        "travel",
		Description: "Notes from the road.",
	},
}

const lorem = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."

// Load drops the blog tables and fills them with a small demo data set.
func Load(db *gorm.DB) error {
	all := models.All()
	// reverse dependency order
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("cannot drop table: %w", err)
		}
	}
	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("cannot migrate table: %w", err)
	}

	saved := make([]*models.User, 0, len(users))
	for i := range users {
		user := users[i]
		u, err := user.SaveUser(db)
		if err != nil {
			return fmt.Errorf("cannot seed users table: %w", err)
		}
		saved = append(saved, u)
	}

	savedGroups := make([]*models.Group, 0, len(groups))
	for i := range groups {
		group := groups[i]
		g, err := group.SaveGroup(db)
		if err != nil {
			return fmt.Errorf("cannot seed groups table: %w", err)
		}
		savedGroups = append(savedGroups, g)
	}

	for i := 0; i < 12; i++ {
		author := saved[i%len(saved)]
		post := models.Post{
			Text:     fmt.Sprintf("Post %d. %s", i+1, lorem),
			AuthorID: author.ID,
		}
		if i%3 != 2 {
			post.GroupID = &savedGroups[i%len(savedGroups)].ID
		}
		p, err := post.SavePost(db)
		if err != nil {
			return fmt.Errorf("cannot seed posts table: %w", err)
		}

		reader := saved[(i+1)%len(saved)]
		comment := models.Comment{PostID: &p.ID, AuthorID: &reader.ID, Text: "Nice one!"}
		if _, err := comment.SaveComment(db); err != nil {
			return fmt.Errorf("cannot seed comments table: %w", err)
		}
	}

	follow := models.Follow{UserID: &saved[1].ID, AuthorID: &saved[0].ID}
	if err := db.Omit("User", "Author").Create(&follow).Error; err != nil {
		return fmt.Errorf("cannot seed follows table: %w", err)
	}

	log.Printf("[seed] loaded %d users, %d groups, 12 posts", len(saved), len(savedGroups))
	return nil
}
