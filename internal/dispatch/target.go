package dispatch

// Target is the element a key event was delivered to.
// Scopes are found by walking Parent links toward the root.
type Target interface {
	// AcceptsText reports whether the target is a text-entry surface.
	AcceptsText() bool
	// Parent returns the enclosing target, or nil at the root.
	Parent() Target
	// Scope returns the context marker carried by this target, or "".
	Scope() string
}

// Node is a focus-tree element implementing Target.
type Node struct {
	editable bool
	name     string
	parent   *Node
	scope    string
}

// NewRoot creates the root of a focus tree.
func NewRoot(name string) *Node {
	return &Node{name: name}
}

// Child creates a plain child element.
func (n *Node) Child(name string) *Node {
	return &Node{name: name, parent: n}
}

// Scoped creates a child element carrying a context marker.
func (n *Node) Scoped(name, scope string) *Node {
	return &Node{name: name, parent: n, scope: scope}
}

// Editable creates a child text-entry element.
func (n *Node) Editable(name string) *Node {
	return &Node{name: name, parent: n, editable: true}
}

// Name returns the element name.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	return n.name
}

// AcceptsText reports whether the element takes typed text. A nil node does not.
func (n *Node) AcceptsText() bool {
	return n != nil && n.editable
}

// Parent returns the enclosing element, or nil at the root.
func (n *Node) Parent() Target {
	// Avoid returning a typed nil inside the interface.
	if n == nil || n.parent == nil {
		return nil
	}
	return n.parent
}

// Scope returns the element's context marker, or "" when it has none.
func (n *Node) Scope() string {
	if n == nil {
		return ""
	}
	return n.scope
}

// ScopeOf walks from target toward the root and returns the nearest scope marker.
// An empty result means the global context.
func ScopeOf(target Target) string {
	for t := target; t != nil; t = t.Parent() {
		if scope := t.Scope(); scope != "" {
			return scope
		}
	}
	return ""
}
