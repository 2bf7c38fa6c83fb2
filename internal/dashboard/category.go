package dashboard

import (
	"slices"

	"github.com/wuwenbin0122/userdash/internal/models"
)

// DefaultSortLabel is shown on the dropdown head while no category is selected.
const DefaultSortLabel = "Sort by"

// AcceptedCategories lists the user fields that can be sorted on.
var AcceptedCategories = []string{"name", "email"}

// Category is a sortable user field.
type Category int

const (
	// CategoryNone means no sort has been chosen.
	CategoryNone Category = iota
	// CategoryName sorts by the user's name.
	CategoryName
	// CategoryEmail sorts by the user's email address.
	CategoryEmail
)

// ParseCategory maps a field key ("name", "email") or its label ("Name",
// "Email") to a Category.
func ParseCategory(key string) (Category, bool) {
	switch key {
	case "name", "Name":
		return CategoryName, true
	case "email", "Email":
		return CategoryEmail, true
	default:
		return CategoryNone, false
	}
}

// Key returns the record field name of c.
func (c Category) Key() string {
	switch c {
	case CategoryName:
		return "name"
	case CategoryEmail:
		return "email"
	default:
		return ""
	}
}

// Label returns the capitalized field name of c.
func (c Category) Label() string {
	return Capitalize(c.Key())
}

func (c Category) String() string {
	return c.Label()
}

func (c Category) value(u models.User) string {
	switch c {
	case CategoryName:
		return u.Name
	case CategoryEmail:
		return u.Email
	default:
		return ""
	}
}

// ResolveCategory returns the capitalized key when it is accepted and an
// empty string otherwise.
func ResolveCategory(key string, accepted []string) string {
	if !slices.Contains(accepted, key) {
		return ""
	}
	return Capitalize(key)
}

// Categories resolves every key of the user record against accepted and
// returns the non-empty labels in record order.
func Categories(accepted []string) []string {
	var labels []string
	for _, key := range (models.User{}).Keys() {
		if label := ResolveCategory(key, accepted); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
