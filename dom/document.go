package dom

import (
	"strings"
)

// Document represents the entire HTML document.
type Document Node

// DefaultHandlerPrefix prefixes the synthetic function names given to
// compiled inline event handlers.
const DefaultHandlerPrefix = "handler"

// NewDocument creates a new empty HTML Document.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	node.documentData = &documentData{
		handlerPrefix: DefaultHandlerPrefix,
	}
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// NodeType returns DocumentNode (9).
func (d *Document) NodeType() NodeType {
	return DocumentNode
}

// NodeName returns "#document".
func (d *Document) NodeName() string {
	return "#document"
}

// HandlerPrefix returns the prefix used to name compiled event handlers of
// elements owned by this document.
func (d *Document) HandlerPrefix() string {
	return d.documentData.handlerPrefix
}

// SetHandlerPrefix sets the prefix used to name compiled event handlers.
// An empty prefix restores DefaultHandlerPrefix.
func (d *Document) SetHandlerPrefix(prefix string) {
	if prefix == "" {
		prefix = DefaultHandlerPrefix
	}
	d.documentData.handlerPrefix = prefix
}

// DocumentElement returns the root element of the document.
func (d *Document) DocumentElement() *Element {
	if d.documentData.documentElement == nil {
		return nil
	}
	return (*Element)(d.documentData.documentElement)
}

// SetDocumentElement sets the root element and appends it as a child of the
// document. The root can be set only once: a second call fails with
// InvalidStateError.
func (d *Document) SetDocumentElement(el *Element) error {
	if el == nil {
		return ErrHierarchyRequest("The document element cannot be null.")
	}
	if d.documentData.documentElement != nil {
		return ErrInvalidState("The document already has a document element.")
	}
	_, err := d.AsNode().AppendChild(el.AsNode())
	return err
}

// Body returns the <body> child of the document element.
func (d *Document) Body() *Element {
	docEl := d.DocumentElement()
	if docEl == nil {
		return nil
	}
	for child := docEl.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode && (*Element)(child).TagName() == "BODY" {
			return (*Element)(child)
		}
	}
	return nil
}

// CreateElement creates a new element owned by this document. The tag name
// is upper-cased. Form controls start with the behavior implied by an absent
// type attribute.
func (d *Document) CreateElement(tagName string) (*Element, error) {
	if !isValidName(tagName) {
		return nil, ErrInvalidCharacter("The string contains invalid characters.")
	}
	tagName = strings.ToUpper(tagName)

	node := newNode(ElementNode, tagName, d)
	node.elementData = &elementData{
		tagName: tagName,
	}
	el := (*Element)(node)
	node.elementData.attributes = newNamedNodeMap(el)
	if isBehaviorTag(tagName) {
		node.elementData.control = &controlState{behavior: behaviorFor(tagName, "")}
	}
	return el, nil
}

// CreateTextNode creates a new text node with the given data.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.textData = &data
	return node
}

// CreateAttribute creates a new, unattached attribute owned by this document.
func (d *Document) CreateAttribute(name string) (*Attr, error) {
	if !IsValidAttributeName(name) {
		return nil, ErrInvalidCharacter("The string contains invalid characters.")
	}
	return &Attr{ownerDoc: d, name: name}, nil
}

// CreateComment is not supported.
func (d *Document) CreateComment(data string) (*Node, error) {
	return nil, ErrNotSupported("Comment nodes are not supported.")
}

// CreateCDATASection is not supported.
func (d *Document) CreateCDATASection(data string) (*Node, error) {
	return nil, ErrNotSupported("CDATASection nodes are not supported.")
}

// CreateEntityReference is not supported.
func (d *Document) CreateEntityReference(name string) (*Node, error) {
	return nil, ErrNotSupported("EntityReference nodes are not supported.")
}

// CreateProcessingInstruction is not supported.
func (d *Document) CreateProcessingInstruction(target, data string) (*Node, error) {
	return nil, ErrNotSupported("ProcessingInstruction nodes are not supported.")
}

// CreateDocumentFragment is not supported.
func (d *Document) CreateDocumentFragment() (*Node, error) {
	return nil, ErrNotSupported("DocumentFragment nodes are not supported.")
}

// CreateElementNS is not supported; namespaces are not modeled.
func (d *Document) CreateElementNS(namespaceURI, qualifiedName string) (*Element, error) {
	return nil, ErrNotSupported("Namespaced elements are not supported.")
}

// CreateAttributeNS is not supported; namespaces are not modeled.
func (d *Document) CreateAttributeNS(namespaceURI, qualifiedName string) (*Attr, error) {
	return nil, ErrNotSupported("Namespaced attributes are not supported.")
}

// GetElementsByTagName returns the descendant elements whose tag name
// matches tagName case-insensitively, in document order.
func (d *Document) GetElementsByTagName(tagName string) []*Element {
	return d.AsNode().elementsByTagName(tagName)
}

// GetElementsByTagNameNS is not supported; namespaces are not modeled.
func (d *Document) GetElementsByTagNameNS(namespaceURI, localName string) ([]*Element, error) {
	return nil, ErrNotSupported("Namespaced lookups are not supported.")
}

// GetElementByID returns the first element with the given id attribute.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	d.AsNode().walkElements(func(el *Element) bool {
		if v, ok := el.GetAttributeWithNoDefault("id"); ok && v == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// Forms returns every FORM element in the document in document order.
func (d *Document) Forms() []*FormElement {
	var forms []*FormElement
	for _, el := range d.GetElementsByTagName("form") {
		forms = append(forms, (*FormElement)(el))
	}
	return forms
}

// ImportNode creates a copy of node owned by this document. Elements keep
// their tag name and get fresh attribute nodes; when deep is true the
// children are imported recursively. Only element and text nodes can be
// imported.
func (d *Document) ImportNode(node *Node, deep bool) (*Node, error) {
	if node == nil {
		return nil, ErrNotSupported("Cannot import a null node.")
	}
	switch node.nodeType {
	case ElementNode:
		src := (*Element)(node)
		el, err := d.CreateElement(src.TagName())
		if err != nil {
			return nil, err
		}
		for _, attr := range src.Attributes().attrs {
			if _, err := el.SetAttributeNode(d.ImportAttribute(attr)); err != nil {
				return nil, err
			}
		}
		if deep {
			for child := node.firstChild; child != nil; child = child.nextSibling {
				imported, err := d.ImportNode(child, true)
				if err != nil {
					return nil, err
				}
				el.AsNode().insertBeforeInternal(imported, nil)
			}
		}
		return el.AsNode(), nil
	case TextNode:
		return d.CreateTextNode(node.NodeValue()), nil
	default:
		return nil, ErrNotSupported("Importing nodes of type " + node.nodeType.String() + " is not supported.")
	}
}

// ImportAttribute creates an unattached copy of attr owned by this document.
func (d *Document) ImportAttribute(attr *Attr) *Attr {
	return &Attr{ownerDoc: d, name: attr.name, value: attr.value}
}

// isValidName reports whether name can be used as a tag name: non-empty,
// starting with a letter or underscore and without whitespace or markup
// delimiters.
func isValidName(name string) bool {
	if name == "" {
		return false
	}
	first := name[0]
	if !(first >= 'a' && first <= 'z' || first >= 'A' && first <= 'Z' || first == '_' || first >= 0x80) {
		return false
	}
	return IsValidAttributeName(name)
}
