package formaterror

import (
	"strings"
)

// FormatError maps storage errors to field messages for the forms.
func FormatError(err string) map[string]string {
	errList := make(map[string]string)
	lower := strings.ToLower(err)

	switch {
	case strings.Contains(lower, "username") &&
		(strings.Contains(lower, "unique") || strings.Contains(lower, "duplicate")):
		errList["username"] = "A user with that username already exists."
	case strings.Contains(lower, "slug") &&
		(strings.Contains(lower, "unique") || strings.Contains(lower, "duplicate")):
		errList["slug"] = "A group with that slug already exists."
	case strings.Contains(lower, "hashedpassword") || strings.Contains(lower, "mismatched"):
		errList["password"] = "Please enter a correct username and password."
	case strings.Contains(lower, "record not found"):
		errList["username"] = "Please enter a correct username and password."
	}

	if len(errList) == 0 {
		errList["error"] = "Something went wrong. Please try again."
	}
	return errList
}
