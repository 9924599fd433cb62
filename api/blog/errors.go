package blog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotAuthor is an authorization outcome, not a failure: the page
	// redirects the viewer to the post instead of showing an error.
	ErrNotAuthor = errors.New("blog: viewer is not the post author")

	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("blog: cannot follow yourself")

	// ErrFollowNotFound wraps gorm.ErrRecordNotFound so callers that only
	// check for a missing record still map it to 404.
	ErrFollowNotFound = fmt.Errorf("blog: follow edge not found: %w", gorm.ErrRecordNotFound)
)

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
