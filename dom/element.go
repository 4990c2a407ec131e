package dom

import (
	"fmt"
	"strconv"
	"strings"
)

// Element represents an element in the DOM tree.
// Element inherits from Node and provides element-specific properties and methods.
type Element Node

// Noder is implemented by every view of a tree node so that operations can
// accept an *Element or *Document wherever a *Node is meant.
type Noder interface {
	AsNode() *Node
}

// AsNode returns the node itself.
func (n *Node) AsNode() *Node {
	return n
}

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// NodeType returns ElementNode (1).
func (e *Element) NodeType() NodeType {
	return ElementNode
}

// NodeName returns the tag name.
func (e *Element) NodeName() string {
	return e.TagName()
}

// TagName returns the tag name in uppercase.
func (e *Element) TagName() string {
	return e.AsNode().elementData.tagName
}

// OwnerDocument returns the Document that created this element.
func (e *Element) OwnerDocument() *Document {
	return e.AsNode().ownerDoc
}

// ParentNode returns the parent of this element.
func (e *Element) ParentNode() *Node {
	return e.AsNode().parentNode
}

// FirstChild returns the first child node, or nil if there are no children.
func (e *Element) FirstChild() *Node {
	return e.AsNode().firstChild
}

// NextSibling returns the next sibling node, or nil if this is the last child.
func (e *Element) NextSibling() *Node {
	return e.AsNode().nextSibling
}

// ChildNodes returns a snapshot of the child nodes in order.
func (e *Element) ChildNodes() []*Node {
	return e.AsNode().ChildNodes()
}

// Children returns the child elements in order.
func (e *Element) Children() []*Element {
	var children []*Element
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			children = append(children, (*Element)(child))
		}
	}
	return children
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}

// SetTextContent replaces all children with a single text node.
func (e *Element) SetTextContent(value string) {
	e.AsNode().SetTextContent(value)
}

// AppendChild appends child to this element's children.
func (e *Element) AppendChild(child Noder) (*Node, error) {
	if child == nil {
		return nil, ErrHierarchyRequest("The node to be inserted is null.")
	}
	return e.AsNode().AppendChild(child.AsNode())
}

// InsertBefore inserts newChild before refChild, or appends it when refChild is nil.
func (e *Element) InsertBefore(newChild, refChild Noder) (*Node, error) {
	if newChild == nil {
		return nil, ErrHierarchyRequest("The node to be inserted is null.")
	}
	var ref *Node
	if refChild != nil {
		ref = refChild.AsNode()
	}
	return e.AsNode().InsertBefore(newChild.AsNode(), ref)
}

// RemoveChild removes child from this element's children.
func (e *Element) RemoveChild(child Noder) (*Node, error) {
	if child == nil {
		return nil, ErrNotFound("The node to be removed is not a child of this node.")
	}
	return e.AsNode().RemoveChild(child.AsNode())
}

// CloneNode creates a copy of this element owned by the same document.
func (e *Element) CloneNode(deep bool) (*Element, error) {
	clone, err := e.AsNode().CloneNode(deep)
	if err != nil {
		return nil, err
	}
	return (*Element)(clone), nil
}

// ID returns the id attribute value.
func (e *Element) ID() string {
	return e.GetAttribute("id")
}

// SetID sets the id attribute value.
func (e *Element) SetID(id string) error {
	return e.SetAttribute("id", id)
}

// Name returns the name attribute value.
func (e *Element) Name() string {
	return e.GetAttribute("name")
}

// Attributes returns the NamedNodeMap of attributes.
func (e *Element) Attributes() *NamedNodeMap {
	return e.AsNode().elementData.attributes
}

// AttributeNames returns the attribute names in insertion order.
func (e *Element) AttributeNames() []string {
	return e.Attributes().Names()
}

// GetAttribute returns the value of the attribute with the given name, or
// "" when the attribute is absent.
func (e *Element) GetAttribute(name string) string {
	if attr := e.Attributes().GetNamedItem(name); attr != nil {
		return attr.value
	}
	return ""
}

// GetAttributeWithDefault returns the value of the named attribute, or def
// when the attribute is absent.
func (e *Element) GetAttributeWithDefault(name, def string) string {
	if attr := e.Attributes().GetNamedItem(name); attr != nil {
		return attr.value
	}
	return def
}

// GetAttributeWithNoDefault returns the value of the named attribute and
// whether it is present, which distinguishes an attribute that was never set
// from one set to "".
func (e *Element) GetAttributeWithNoDefault(name string) (string, bool) {
	if attr := e.Attributes().GetNamedItem(name); attr != nil {
		return attr.value, true
	}
	return "", false
}

// GetBoolAttribute reports whether the named attribute is present and equal
// to "true", ignoring case.
func (e *Element) GetBoolAttribute(name string) bool {
	value, ok := e.GetAttributeWithNoDefault(name)
	return ok && strings.EqualFold(value, "true")
}

// GetIntAttribute parses the named attribute as an integer. An absent or
// empty attribute yields 0; a non-numeric value is an error.
func (e *Element) GetIntAttribute(name string) (int, error) {
	value := e.GetAttribute(name)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("dom: integer attribute %q: %w", name, err)
	}
	return n, nil
}

// SetAttribute sets the value of the attribute with the given name, creating
// an attribute node owned by the element's document when none exists.
func (e *Element) SetAttribute(name, value string) error {
	if attr := e.Attributes().GetNamedItem(name); attr != nil {
		attr.SetValue(value)
		return nil
	}
	attr, err := e.OwnerDocument().CreateAttribute(name)
	if err != nil {
		return err
	}
	attr.value = value
	_, err = e.SetAttributeNode(attr)
	return err
}

// HasAttribute returns true if the element has the given attribute.
func (e *Element) HasAttribute(name string) bool {
	return e.Attributes().GetNamedItem(name) != nil
}

// RemoveAttribute removes the attribute with the given name, if present.
func (e *Element) RemoveAttribute(name string) {
	if attr := e.Attributes().GetNamedItem(name); attr != nil {
		e.Attributes().removeAttr(attr)
		e.attributeChanged(name)
	}
}

// GetAttributeNode returns the Attr for the given attribute name, or nil.
func (e *Element) GetAttributeNode(name string) *Attr {
	return e.Attributes().GetNamedItem(name)
}

// SetAttributeNode stores attr on this element, replacing and detaching any
// attribute with the same name. The replaced attribute is returned.
// The attribute must have been created by the element's owner document.
func (e *Element) SetAttributeNode(attr *Attr) (*Attr, error) {
	if attr == nil {
		return nil, ErrNotFound("The attribute node is null.")
	}
	if attr.ownerDoc != e.OwnerDocument() {
		return nil, ErrWrongDocument("The attribute was created by a different document.")
	}
	if attr.ownerElement != nil && attr.ownerElement != e {
		return nil, ErrInUseAttribute("The attribute is already in use by another element.")
	}
	replaced := e.Attributes().setAttr(attr)
	e.attributeChanged(attr.name)
	return replaced, nil
}

// RemoveAttributeNode removes attr from this element. It fails with
// NotFoundError when attr is not currently stored on the element.
func (e *Element) RemoveAttributeNode(attr *Attr) (*Attr, error) {
	if attr == nil || !e.Attributes().removeAttr(attr) {
		return nil, ErrNotFound("The attribute node is not an attribute of this element.")
	}
	e.attributeChanged(attr.name)
	return attr, nil
}

// GetAttributeNS is not supported; namespaces are not modeled.
func (e *Element) GetAttributeNS(namespaceURI, localName string) (string, error) {
	return "", ErrNotSupported("Namespaced attributes are not supported.")
}

// SetAttributeNS is not supported; namespaces are not modeled.
func (e *Element) SetAttributeNS(namespaceURI, qualifiedName, value string) error {
	return ErrNotSupported("Namespaced attributes are not supported.")
}

// GetElementsByTagName returns the descendant elements whose tag name
// matches tagName case-insensitively, in document order.
func (e *Element) GetElementsByTagName(tagName string) []*Element {
	return e.AsNode().elementsByTagName(tagName)
}

// GetElementsByTagNameNS is not supported; namespaces are not modeled.
func (e *Element) GetElementsByTagNameNS(namespaceURI, localName string) ([]*Element, error) {
	return nil, ErrNotSupported("Namespaced lookups are not supported.")
}

// attributeChanged is called synchronously after any attribute named name
// is added, replaced, modified or removed.
func (e *Element) attributeChanged(name string) {
	if name == "type" && e.AsNode().elementData.control != nil {
		e.onTypeChanged(e.GetAttribute("type"))
	}
}
