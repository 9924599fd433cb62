package blog

import (
	"Yatube/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Follow creates the edge userID -> username if it does not exist yet.
// created is false when the edge was already there. The unique index on
// (user_id, author_id) makes concurrent calls collapse into one row.
func (s *Service) Follow(userID uint, username string) (author *models.User, created bool, err error) {
	author, err = (&models.User{}).FindUserByUsername(s.DB, username)
	if err != nil {
		return nil, false, err
	}
	if author.ID == userID {
		return author, false, ErrSelfFollow
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		follow := models.Follow{UserID: &userID, AuthorID: &author.ID}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit("User", "Author").Create(&follow)
		if result.Error != nil {
			return result.Error
		}
		created = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return author, created, nil
}

// Unfollow removes the edge userID -> username. A missing author or a
// missing edge yields ErrFollowNotFound.
func (s *Service) Unfollow(userID uint, username string) error {
	author, err := (&models.User{}).FindUserByUsername(s.DB, username)
	if err != nil {
		return ErrFollowNotFound
	}
	result := s.DB.Where("user_id = ? AND author_id = ?", userID, author.ID).Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

func (s *Service) IsFollowing(userID, authorID uint) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
