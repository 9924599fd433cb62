package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"Yatube/api/security"

	"github.com/badoux/checkmail"
	"gorm.io/gorm"
)

type User struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Username  string    `gorm:"size:150;not null;unique" json:"username"`
	Email     string    `gorm:"size:254;not null;default:''" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Letters, digits and @/./+/-/_ only; the value is also a URL path segment.
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func (u *User) String() string {
	return u.Username
}

func (u *User) HashPassword() error {
	hashedPassword, err := security.Hash(u.Password)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) Prepare() {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
}

func (u *User) Validate(action string) map[string]string {
	var errorMessages = make(map[string]string)

	switch strings.ToLower(action) {
	case "login":
		if u.Username == "" {
			errorMessages["username"] = "Required Username"
		}
		if u.Password == "" {
			errorMessages["password"] = "Required Password"
		}
	default:
		if u.Username == "" {
			errorMessages["username"] = "Required Username"
		} else if len(u.Username) > 150 || !usernamePattern.MatchString(u.Username) {
			errorMessages["username"] = "Username may contain only letters, digits and @/./+/-/_"
		}
		if u.Password == "" {
			errorMessages["password"] = "Required Password"
		} else if len(u.Password) < 8 {
			errorMessages["password"] = "Password should be at least 8 characters"
		}
		if u.Email != "" {
			if err := checkmail.ValidateFormat(u.Email); err != nil {
				errorMessages["email"] = "Invalid Email"
			}
		}
	}
	return errorMessages
}

// SaveUser hashes the plain-text password and inserts the row.
func (u *User) SaveUser(db *gorm.DB) (*User, error) {
	if err := u.HashPassword(); err != nil {
		return nil, err
	}
	if err := db.Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) FindUserByID(db *gorm.DB, uid uint) (*User, error) {
	var user User
	err := db.Where("id = ?", uid).Take(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *User) FindUserByUsername(db *gorm.DB, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var user User
	if err := db.Where("username = ?", username).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

var ErrUsernameTaken = errors.New("username already taken")

func (u *User) UsernameTaken(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
