// Package dom implements a live HTML document tree with form-control behavior
// and inline event handler compilation. It covers the subset of the DOM that
// a scripting bridge needs; namespaces, comments, CDATA sections, entity
// references and document fragments are rejected with NotSupportedError.
package dom

// NodeType represents the type of a Node as numbered by the W3C DOM.
type NodeType uint16

const (
	// ElementNode represents an Element node.
	ElementNode NodeType = 1
	// AttributeNode represents an Attr node.
	AttributeNode NodeType = 2
	// TextNode represents a Text node.
	TextNode NodeType = 3
	// CDATASectionNode is not supported by this package.
	CDATASectionNode NodeType = 4
	// EntityReferenceNode is not supported by this package.
	EntityReferenceNode NodeType = 5
	// CommentNode is not supported by this package.
	CommentNode NodeType = 8
	// DocumentNode represents a Document node.
	DocumentNode NodeType = 9
	// DocumentFragmentNode is not supported by this package.
	DocumentFragmentNode NodeType = 11
)

// String returns the string representation of the NodeType.
func (nt NodeType) String() string {
	switch nt {
	case ElementNode:
		return "ELEMENT_NODE"
	case AttributeNode:
		return "ATTRIBUTE_NODE"
	case TextNode:
		return "TEXT_NODE"
	case CDATASectionNode:
		return "CDATA_SECTION_NODE"
	case EntityReferenceNode:
		return "ENTITY_REFERENCE_NODE"
	case CommentNode:
		return "COMMENT_NODE"
	case DocumentNode:
		return "DOCUMENT_NODE"
	case DocumentFragmentNode:
		return "DOCUMENT_FRAGMENT_NODE"
	default:
		return "UNKNOWN_NODE"
	}
}
