package dom

import (
	"strings"
)

// Node represents a node in the document tree. Element and Document are
// defined on the same underlying struct so a *Node can be viewed as either
// without copying.
type Node struct {
	nodeType   NodeType
	nodeName   string
	ownerDoc   *Document
	parentNode *Node

	// First/last child and sibling pointers for efficient traversal
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// Type-specific data (only one will be non-nil based on nodeType)
	elementData  *elementData
	textData     *string
	documentData *documentData
}

// elementData holds data specific to Element nodes.
type elementData struct {
	tagName    string
	attributes *NamedNodeMap
	control    *controlState
	handlers   map[string]*AttributeEventHandler
}

// documentData holds data specific to Document nodes.
type documentData struct {
	documentElement *Node
	handlerPrefix   string
}

// newNode creates a new node with the given type and name.
func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	return &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node.
// For elements, this is the tag name in uppercase.
// For text nodes, this is "#text".
// For documents, this is "#document".
func (n *Node) NodeName() string {
	return n.nodeName
}

// NodeValue returns the character data of a text node and "" for every
// other node type.
func (n *Node) NodeValue() string {
	if n.textData != nil {
		return *n.textData
	}
	return ""
}

// SetNodeValue sets the character data of a text node.
// For other node types, this is a no-op.
func (n *Node) SetNodeValue(value string) {
	if n.nodeType == TextNode {
		n.textData = &value
	}
}

// OwnerDocument returns the Document that owns this node.
// For Document nodes, this returns nil.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// document returns the document that scopes this node, which for a Document
// is the document itself.
func (n *Node) document() *Document {
	if n.nodeType == DocumentNode {
		return (*Document)(n)
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent Element, or nil if the parent is not an element.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// ChildNodes returns a snapshot of the child nodes in order.
func (n *Node) ChildNodes() []*Node {
	var children []*Node
	for child := n.firstChild; child != nil; child = child.nextSibling {
		children = append(children, child)
	}
	return children
}

// FirstChild returns the first child node, or nil if there are no children.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node, or nil if there are no children.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PreviousSibling returns the previous sibling node, or nil if this is the first child.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling node, or nil if this is the last child.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// HasChildNodes returns true if this node has any child nodes.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// AsElement returns the node viewed as an Element, or nil for other node types.
func (n *Node) AsElement() *Element {
	if n == nil || n.nodeType != ElementNode {
		return nil
	}
	return (*Element)(n)
}

// ScriptHandle returns the object handed to a scripting engine for this
// node: the Element or Document view when the node is one, the node itself
// otherwise.
func (n *Node) ScriptHandle() any {
	switch n.nodeType {
	case ElementNode:
		return (*Element)(n)
	case DocumentNode:
		return (*Document)(n)
	default:
		return n
	}
}

// TextContent returns the text content of the node and its descendants.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case DocumentNode:
		return ""
	case TextNode:
		return n.NodeValue()
	default:
		var sb strings.Builder
		n.collectTextContent(&sb)
		return sb.String()
	}
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		switch child.nodeType {
		case TextNode:
			sb.WriteString(child.NodeValue())
		case ElementNode:
			child.collectTextContent(sb)
		}
	}
}

// SetTextContent sets the text content of the node.
// For elements, this replaces all children with a single text node.
func (n *Node) SetTextContent(value string) {
	switch n.nodeType {
	case DocumentNode:
		return
	case TextNode:
		n.SetNodeValue(value)
	default:
		for n.firstChild != nil {
			n.removeChildInternal(n.firstChild)
		}
		if value != "" {
			n.insertBeforeInternal(n.ownerDoc.CreateTextNode(value), nil)
		}
	}
}

// AppendChild adds a node to the end of the list of children of this node.
// A node that already has a parent is moved. Appending an element to a
// Document sets its document element, which can happen only once.
func (n *Node) AppendChild(child *Node) (*Node, error) {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts a node before a reference child node.
// If refChild is nil, the node is appended to the end.
func (n *Node) InsertBefore(newChild, refChild *Node) (*Node, error) {
	if err := n.validatePreInsertion(newChild, refChild); err != nil {
		return nil, err
	}
	if newChild.parentNode != nil {
		newChild.parentNode.removeChildInternal(newChild)
	}
	n.insertBeforeInternal(newChild, refChild)
	if n.nodeType == DocumentNode && newChild.nodeType == ElementNode {
		n.documentData.documentElement = newChild
	}
	return newChild, nil
}

// validatePreInsertion checks the hierarchy, ownership and root constraints
// for inserting node into n before child.
func (n *Node) validatePreInsertion(node, child *Node) error {
	if node == nil {
		return ErrHierarchyRequest("The node to be inserted is null.")
	}
	if !n.canHaveChildren() {
		return ErrHierarchyRequest("The operation would yield an incorrect node tree.")
	}
	if node.document() != n.document() {
		return ErrWrongDocument("The node was created by a different document; import it first.")
	}
	if n.isInclusiveAncestor(node) {
		return ErrHierarchyRequest("The new child element contains the parent.")
	}
	if node.parentNode != nil && node.parentNode.nodeType == DocumentNode {
		return ErrInvalidState("The document element cannot be moved.")
	}
	if child != nil && child.parentNode != n {
		return ErrNotFound("The node before which the new node is to be inserted is not a child of this node.")
	}
	switch node.nodeType {
	case ElementNode, TextNode:
	default:
		return ErrHierarchyRequest("Nodes of type " + node.nodeType.String() + " cannot be inserted.")
	}
	if n.nodeType == DocumentNode {
		if node.nodeType == TextNode {
			return ErrHierarchyRequest("Cannot insert Text node as a direct child of Document.")
		}
		if n.documentData.documentElement != nil {
			return ErrInvalidState("The document already has a document element.")
		}
	}
	return nil
}

// canHaveChildren returns true if this node can have child nodes.
func (n *Node) canHaveChildren() bool {
	switch n.nodeType {
	case DocumentNode, ElementNode:
		return true
	default:
		return false
	}
}

// isInclusiveAncestor returns true if node is this node or an ancestor of this node.
func (n *Node) isInclusiveAncestor(node *Node) bool {
	if node == nil {
		return false
	}
	for current := n; current != nil; current = current.parentNode {
		if current == node {
			return true
		}
	}
	return false
}

// RemoveChild removes a child node from this node.
// Returns NotFoundError if child is not a child of this node. The document
// element of a Document cannot be removed since the root slot is set once.
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	if child == nil || child.parentNode != n {
		return nil, ErrNotFound("The node to be removed is not a child of this node.")
	}
	if n.nodeType == DocumentNode && n.documentData.documentElement == child {
		return nil, ErrInvalidState("The document element cannot be removed.")
	}
	n.removeChildInternal(child)
	return child, nil
}

// removeChildInternal removes a child from this node's children list.
// This is the internal implementation that does not check if child is actually a child.
func (n *Node) removeChildInternal(child *Node) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}

	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}

	// Clear the removed node's pointers
	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// insertBeforeInternal inserts a node before a reference child without validation.
// If refChild is nil, appends to the end.
func (n *Node) insertBeforeInternal(newChild, refChild *Node) {
	newChild.parentNode = n

	if refChild == nil {
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
		return
	}

	newChild.prevSibling = refChild.prevSibling
	newChild.nextSibling = refChild
	if refChild.prevSibling != nil {
		refChild.prevSibling.nextSibling = newChild
	} else {
		n.firstChild = newChild
	}
	refChild.prevSibling = newChild
}

// CloneNode creates a copy of this node owned by the same document.
// If deep is true, all descendants are also cloned.
func (n *Node) CloneNode(deep bool) (*Node, error) {
	if n.nodeType == DocumentNode {
		return nil, ErrNotSupported("Cloning a Document is not supported.")
	}
	return n.ownerDoc.ImportNode(n, deep)
}

// Contains returns true if the given node is an inclusive descendant of this node.
func (n *Node) Contains(other *Node) bool {
	if other == nil {
		return false
	}
	return other.isInclusiveAncestor(n)
}

// walkElements calls fn for every descendant element of n in document order
// until fn returns false.
func (n *Node) walkElements(fn func(*Element) bool) bool {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType != ElementNode {
			continue
		}
		if !fn((*Element)(child)) {
			return false
		}
		if !child.walkElements(fn) {
			return false
		}
	}
	return true
}

// elementsByTagName collects descendant elements of n whose tag name matches
// name after upper-casing, or all descendants for "*".
func (n *Node) elementsByTagName(name string) []*Element {
	name = strings.ToUpper(name)
	var result []*Element
	n.walkElements(func(el *Element) bool {
		if name == "*" || el.TagName() == name {
			result = append(result, el)
		}
		return true
	})
	return result
}
