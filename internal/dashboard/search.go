package dashboard

import (
	"strings"
	"unicode/utf8"

	"github.com/wuwenbin0122/userdash/internal/models"
)

// minVisibleSearch is the shortest search string that switches the card list
// to the filtered view.
const minVisibleSearch = 2

// Filter returns the users with at least one primitive field containing search,
// compared case-insensitively. Address and company are not searched.
func Filter(users []models.User, search string) []models.User {
	needle := strings.ToLower(search)
	result := make([]models.User, 0, len(users))
	for _, u := range users {
		if matches(u, needle) {
			result = append(result, u)
		}
	}
	return result
}

func matches(u models.User, needle string) bool {
	if needle == "" {
		return true
	}
	for _, field := range u.Fields() {
		if strings.Contains(strings.ToLower(field.Value), needle) {
			return true
		}
	}
	return false
}

// SearchSource picks the list that backs the display after the search input
// changes: the filtered list while there is any search text, else all users.
func SearchSource(search string, filtered, all []models.User) []models.User {
	if search != "" {
		return filtered
	}
	return all
}

// VisibleUsers decides which list is rendered. Searches shorter than two
// characters show every user.
func VisibleUsers(all, filtered []models.User, search string) []models.User {
	if utf8.RuneCountInString(search) >= minVisibleSearch {
		return filtered
	}
	return all
}
