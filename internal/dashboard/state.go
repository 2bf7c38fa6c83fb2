package dashboard

import (
	"slices"

	"github.com/wuwenbin0122/userdash/internal/models"
)

// State is the data behind one dashboard page. Every transition returns a new
// State; the receiver is never modified.
type State struct {
	All       []models.User
	Displayed []models.User
	Search    string
	Error     string
	Open      bool
	Label     string
	Category  Category
	Ascending bool
}

func NewState() State {
	return State{Label: DefaultSortLabel, Ascending: true}
}

// Loaded seeds both the full and the displayed list from a fresh fetch.
func (s State) Loaded(users []models.User) State {
	s.All = slices.Clone(users)
	s.Displayed = slices.Clone(users)
	s.Error = ""
	if s.Category != CategoryNone {
		s.All = Sort(s.All, s.Category, s.Ascending)
		s.Displayed = Sort(s.Displayed, s.Category, s.Ascending)
	}
	return s
}

// Failed records a fetch error and leaves both user lists untouched.
func (s State) Failed(err error) State {
	if err != nil {
		s.Error = err.Error()
	}
	return s
}

// WithSearch stores the input text and swaps the displayed list to match it.
func (s State) WithSearch(text string) State {
	s.Search = text
	s.Displayed = SearchSource(text, Filter(s.All, text), s.All)
	return s
}

// ApplySearch filters the full list by the current search text.
func (s State) ApplySearch() State {
	s.Displayed = Filter(s.All, s.Search)
	return s
}

// ToggleDropdown opens or closes the category dropdown. Opening it clears the
// selected category back to the default label.
func (s State) ToggleDropdown() State {
	if label, ok := DefaultLabel(s.Open, s.Label, DefaultSortLabel); ok {
		s.Label = label
		s.Category = CategoryNone
	}
	s.Open = !s.Open
	return s
}

// DefaultLabel returns fallback when the dropdown is closed and label differs
// from it. The second result is false when the label should stay as is.
func DefaultLabel(open bool, label, fallback string) (string, bool) {
	if open || label == fallback {
		return "", false
	}
	return fallback, true
}

// SelectCategory sorts both lists by c in the current direction and closes the
// dropdown.
func (s State) SelectCategory(c Category) State {
	s.Category = c
	s.Label = c.Label()
	s.All = Sort(s.All, c, s.Ascending)
	s.Displayed = Sort(s.Displayed, c, s.Ascending)
	s.Open = false
	return s
}

// ToggleOrder flips the sort direction and re-sorts when a category is selected.
func (s State) ToggleOrder() State {
	s.Ascending = !s.Ascending
	if s.Category == CategoryNone {
		return s
	}
	s.All = Sort(s.All, s.Category, s.Ascending)
	s.Displayed = Sort(s.Displayed, s.Category, s.Ascending)
	return s
}

// CloseOnOutside closes the dropdown when evt happened outside container.
func (s State) CloseOnOutside(evt PointerEvent, container Node) State {
	HandleClickOutside(evt, container, func(open bool) {
		s.Open = open
	})
	return s
}

// Visible returns the users the card list shows.
func (s State) Visible() []models.User {
	return VisibleUsers(s.All, s.Displayed, s.Search)
}
