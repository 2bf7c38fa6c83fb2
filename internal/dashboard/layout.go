package dashboard

import "strings"

// Element ids of the dashboard layout.
const (
	ElementBody          = "body"
	ElementSearchBox     = "search-box"
	ElementSearchInput   = "search-input"
	ElementSearchButton  = "search-button"
	ElementSortContainer = "sort-container"
	ElementDropdown      = "dropdown"
	ElementDropdownHead  = "dropdown-head"
	ElementDropdownList  = "dropdown-list"
	ElementOrderButton   = "order-button"
	ElementCards         = "card-container"

	dropdownItemPrefix = "dropdown-item-"
)

// Layout is the element tree of one dashboard page.
type Layout struct {
	Body     *Element
	Dropdown *Element
}

// NewLayout builds the page tree with one dropdown item per accepted category.
func NewLayout(accepted []string) *Layout {
	body := NewElement(ElementBody)

	searchBox := body.AppendChild(NewElement(ElementSearchBox))
	searchBox.AppendChild(NewElement(ElementSearchInput))
	searchBox.AppendChild(NewElement(ElementSearchButton))

	sortContainer := body.AppendChild(NewElement(ElementSortContainer))
	dropdown := sortContainer.AppendChild(NewElement(ElementDropdown))
	dropdown.AppendChild(NewElement(ElementDropdownHead))
	list := dropdown.AppendChild(NewElement(ElementDropdownList))
	for _, label := range Categories(accepted) {
		list.AppendChild(NewElement(DropdownItemID(label)))
	}
	sortContainer.AppendChild(NewElement(ElementOrderButton))

	body.AppendChild(NewElement(ElementCards))

	return &Layout{Body: body, Dropdown: dropdown}
}

// DropdownItemID returns the element id of the dropdown entry for label.
func DropdownItemID(label string) string {
	return dropdownItemPrefix + label
}

// Resolve returns the element with id, falling back to the body for unknown ids.
func (l *Layout) Resolve(id string) *Element {
	if el := l.Body.Find(id); el != nil {
		return el
	}
	return l.Body
}

// ItemCategory returns the category of a dropdown item element.
func ItemCategory(el *Element) (Category, bool) {
	if el == nil {
		return CategoryNone, false
	}
	label, ok := strings.CutPrefix(el.ID, dropdownItemPrefix)
	if !ok {
		return CategoryNone, false
	}
	return ParseCategory(label)
}
