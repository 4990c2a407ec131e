package dom

// Attr represents an attribute of an Element. An Attr is owned by the
// document that created it; its owner element is a weak back-reference that
// is set on attach and cleared on detach or replacement.
type Attr struct {
	ownerDoc     *Document
	ownerElement *Element
	name         string
	value        string
}

// NodeType returns AttributeNode (2).
func (a *Attr) NodeType() NodeType {
	return AttributeNode
}

// NodeName returns the attribute name.
func (a *Attr) NodeName() string {
	return a.name
}

// NodeValue returns the attribute value.
func (a *Attr) NodeValue() string {
	return a.value
}

// OwnerElement returns the element that owns this attribute.
func (a *Attr) OwnerElement() *Element {
	return a.ownerElement
}

// OwnerDocument returns the Document that created this attribute.
func (a *Attr) OwnerDocument() *Document {
	return a.ownerDoc
}

// Name returns the name of the attribute.
func (a *Attr) Name() string {
	return a.name
}

// Value returns the attribute value.
func (a *Attr) Value() string {
	return a.value
}

// SetValue sets the attribute value. When the attribute is attached, the
// owner element observes the change immediately.
func (a *Attr) SetValue(value string) {
	a.value = value
	if a.ownerElement != nil {
		a.ownerElement.attributeChanged(a.name)
	}
}

// IsValidAttributeName reports whether name is a valid attribute name.
// A string is valid if its length is at least 1 and it does not contain
// ASCII whitespace, NULL, '/', '=', '>', '<', or quotes.
func IsValidAttributeName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for _, r := range name {
		switch r {
		case ' ', '\t', '\n', '\f', '\r', '\x00', '/', '=', '>', '<', '"', '\'':
			return false
		}
	}
	return true
}
