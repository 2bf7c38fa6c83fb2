package dashboard

// Node is an element of the dashboard layout tree.
type Node interface {
	ParentNode() Node
}

// Element is a layout node addressed by id.
type Element struct {
	ID       string
	parent   *Element
	children []*Element
}

// NewElement returns a detached element with the given id.
func NewElement(id string) *Element {
	return &Element{ID: id}
}

// ParentNode returns the parent element, or nil for a detached or root element.
func (e *Element) ParentNode() Node {
	if e == nil || e.parent == nil {
		return nil
	}
	return e.parent
}

// AppendChild attaches child under e, detaching it from any previous parent.
func (e *Element) AppendChild(child *Element) *Element {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	return child
}

// Find returns the element with the given id in the subtree rooted at e.
func (e *Element) Find(id string) *Element {
	if e == nil {
		return nil
	}
	if e.ID == id {
		return e
	}
	for _, child := range e.children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

func (e *Element) removeChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

// PointerEvent is a pointer-down or mouse-down on Target.
type PointerEvent struct {
	Type   string
	Target Node
}

// Contains reports whether target is container or one of its descendants.
func Contains(container, target Node) bool {
	if isNilNode(container) {
		return false
	}
	for node := target; !isNilNode(node); node = node.ParentNode() {
		if node == container {
			return true
		}
	}
	return false
}

// HandleClickOutside calls setOpen(false) when container is set and the event
// originated outside of it.
func HandleClickOutside(evt PointerEvent, container Node, setOpen func(bool)) {
	if isNilNode(container) {
		return
	}
	if !Contains(container, evt.Target) {
		setOpen(false)
	}
}

func isNilNode(n Node) bool {
	if n == nil {
		return true
	}
	e, ok := n.(*Element)
	return ok && e == nil
}
