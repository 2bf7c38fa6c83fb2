package dashboard

import (
	"slices"
	"strings"

	"github.com/wuwenbin0122/userdash/internal/models"
)

// Sort returns a copy of users ordered by the category field. Comparison is
// byte-wise and case-sensitive; equal values keep their input order. The
// descending order is the exact reverse of the ascending one.
func Sort(users []models.User, category Category, ascending bool) []models.User {
	sorted := slices.Clone(users)
	if sorted == nil {
		sorted = []models.User{}
	}

	slices.SortStableFunc(sorted, func(a, b models.User) int {
		return strings.Compare(category.value(a), category.value(b))
	})

	if !ascending {
		slices.Reverse(sorted)
	}
	return sorted
}
