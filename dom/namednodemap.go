package dom

// NamedNodeMap is the attribute store of an Element: Attr nodes kept in
// insertion order and keyed by their case-sensitive name.
type NamedNodeMap struct {
	ownerElement *Element
	attrs        []*Attr
}

// newNamedNodeMap creates a new NamedNodeMap for the given element.
func newNamedNodeMap(element *Element) *NamedNodeMap {
	return &NamedNodeMap{
		ownerElement: element,
		attrs:        make([]*Attr, 0),
	}
}

// Length returns the number of attributes in the map.
func (nm *NamedNodeMap) Length() int {
	return len(nm.attrs)
}

// Item returns the attribute at the given index, or nil if out of bounds.
func (nm *NamedNodeMap) Item(index int) *Attr {
	if index < 0 || index >= len(nm.attrs) {
		return nil
	}
	return nm.attrs[index]
}

// GetNamedItem returns the attribute with the given name, or nil if not found.
func (nm *NamedNodeMap) GetNamedItem(name string) *Attr {
	for _, attr := range nm.attrs {
		if attr.name == name {
			return attr
		}
	}
	return nil
}

// setAttr stores attr, replacing an attribute with the same name in place.
// The replaced attribute is detached and returned.
func (nm *NamedNodeMap) setAttr(attr *Attr) *Attr {
	attr.ownerElement = nm.ownerElement

	for i, existing := range nm.attrs {
		if existing.name == attr.name {
			nm.attrs[i] = attr
			if existing != attr {
				existing.ownerElement = nil
				return existing
			}
			return nil
		}
	}

	nm.attrs = append(nm.attrs, attr)
	return nil
}

// removeAttr removes attr if it is the stored node for its name.
func (nm *NamedNodeMap) removeAttr(attr *Attr) bool {
	for i, existing := range nm.attrs {
		if existing == attr {
			nm.attrs = append(nm.attrs[:i], nm.attrs[i+1:]...)
			attr.ownerElement = nil
			return true
		}
	}
	return false
}

// Names returns a slice of all attribute names.
func (nm *NamedNodeMap) Names() []string {
	names := make([]string, len(nm.attrs))
	for i, attr := range nm.attrs {
		names[i] = attr.name
	}
	return names
}

// OwnerElement returns the element that owns this NamedNodeMap.
func (nm *NamedNodeMap) OwnerElement() *Element {
	return nm.ownerElement
}
