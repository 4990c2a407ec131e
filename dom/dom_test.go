package dom

import (
	"errors"
	"strconv"
	"testing"
)

const htmlNS = "http://www.w3.org/1999/xhtml"

func mustCreateElement(t *testing.T, doc *Document, tagName string) *Element {
	t.Helper()
	el, err := doc.CreateElement(tagName)
	if err != nil {
		t.Fatalf("CreateElement(%q) failed: %v", tagName, err)
	}
	return el
}

func mustAppend(t *testing.T, parent Noder, child Noder) {
	t.Helper()
	if _, err := parent.AsNode().AppendChild(child.AsNode()); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}
}

func mustSetAttribute(t *testing.T, el *Element, name, value string) {
	t.Helper()
	if err := el.SetAttribute(name, value); err != nil {
		t.Fatalf("SetAttribute(%q) failed: %v", name, err)
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc == nil {
		t.Fatal("NewDocument returned nil")
	}
	if doc.NodeType() != DocumentNode {
		t.Errorf("Expected DocumentNode, got %v", doc.NodeType())
	}
	if doc.NodeName() != "#document" {
		t.Errorf("Expected '#document', got %s", doc.NodeName())
	}
	if doc.DocumentElement() != nil {
		t.Error("Expected no document element on a new document")
	}
	if doc.AsNode().OwnerDocument() != nil {
		t.Error("Expected a document to have no owner document")
	}
}

func TestDocument_CreateElement(t *testing.T) {
	doc := NewDocument()
	el := mustCreateElement(t, doc, "div")

	if el.TagName() != "DIV" {
		t.Errorf("Expected tagName 'DIV', got '%s'", el.TagName())
	}
	if el.NodeName() != "DIV" {
		t.Errorf("Expected nodeName 'DIV', got '%s'", el.NodeName())
	}
	if el.NodeType() != ElementNode {
		t.Errorf("Expected ElementNode, got %v", el.NodeType())
	}
	if el.OwnerDocument() != doc {
		t.Error("Expected element to be owned by the creating document")
	}
	if el.ParentNode() != nil {
		t.Error("Expected a created element to be detached")
	}
}

func TestDocument_CreateElement_InvalidName(t *testing.T) {
	doc := NewDocument()
	for _, name := range []string{"", "1div", "a b", "a>b"} {
		_, err := doc.CreateElement(name)
		if !IsDOMError(err, InvalidCharacterErr) {
			t.Errorf("CreateElement(%q): expected InvalidCharacterError, got %v", name, err)
		}
	}
}

func TestDocument_CreateTextNode(t *testing.T) {
	doc := NewDocument()
	text := doc.CreateTextNode("Hello, World!")

	if text.NodeType() != TextNode {
		t.Errorf("Expected TextNode, got %v", text.NodeType())
	}
	if text.NodeName() != "#text" {
		t.Errorf("Expected '#text', got '%s'", text.NodeName())
	}
	if text.NodeValue() != "Hello, World!" {
		t.Errorf("Expected 'Hello, World!', got '%s'", text.NodeValue())
	}
	if text.OwnerDocument() != doc {
		t.Error("Expected text node to be owned by the creating document")
	}

	text.SetNodeValue("changed")
	if text.TextContent() != "changed" {
		t.Errorf("Expected 'changed', got '%s'", text.TextContent())
	}
}

func TestDocument_CreateAttribute(t *testing.T) {
	doc := NewDocument()
	attr, err := doc.CreateAttribute("data-x")
	if err != nil {
		t.Fatalf("CreateAttribute failed: %v", err)
	}
	if attr.OwnerDocument() != doc {
		t.Error("Expected attribute to be owned by the creating document")
	}
	if attr.OwnerElement() != nil {
		t.Error("Expected a created attribute to be unattached")
	}
	if attr.NodeType() != AttributeNode {
		t.Errorf("Expected AttributeNode, got %v", attr.NodeType())
	}

	if _, err := doc.CreateAttribute("a=b"); !IsDOMError(err, InvalidCharacterErr) {
		t.Errorf("Expected InvalidCharacterError, got %v", err)
	}
}

func TestDocument_SetDocumentElement(t *testing.T) {
	doc := NewDocument()
	html := mustCreateElement(t, doc, "html")

	if err := doc.SetDocumentElement(html); err != nil {
		t.Fatalf("SetDocumentElement failed: %v", err)
	}
	if doc.DocumentElement() != html {
		t.Error("Expected document element to be the root")
	}
	if doc.AsNode().FirstChild() != html.AsNode() {
		t.Error("Expected root to be the first child of the document")
	}
	if html.ParentNode() != doc.AsNode() {
		t.Error("Expected root's parent to be the document")
	}

	other := mustCreateElement(t, doc, "html")
	err := doc.SetDocumentElement(other)
	if !IsDOMError(err, InvalidStateErr) {
		t.Fatalf("Expected InvalidStateError on second set, got %v", err)
	}
	if doc.DocumentElement() != html {
		t.Error("Expected original root to remain")
	}
	if other.ParentNode() != nil {
		t.Error("Expected rejected root to stay detached")
	}
}

func TestDocument_AppendChildRoot(t *testing.T) {
	doc := NewDocument()
	html := mustCreateElement(t, doc, "html")
	mustAppend(t, doc, html)

	if doc.DocumentElement() != html {
		t.Error("Expected appended element to become the document element")
	}

	_, err := doc.AsNode().AppendChild(mustCreateElement(t, doc, "html").AsNode())
	if !IsDOMError(err, InvalidStateErr) {
		t.Errorf("Expected InvalidStateError, got %v", err)
	}

	_, err = doc.AsNode().RemoveChild(html.AsNode())
	if !IsDOMError(err, InvalidStateErr) {
		t.Errorf("Expected InvalidStateError removing the root, got %v", err)
	}

	div := mustCreateElement(t, doc, "div")
	_, err = div.AppendChild(html)
	if !IsDOMError(err, InvalidStateErr) {
		t.Errorf("Expected InvalidStateError moving the root, got %v", err)
	}

	_, err = doc.AsNode().AppendChild(doc.CreateTextNode("x"))
	if !IsDOMError(err, HierarchyRequestErr) {
		t.Errorf("Expected HierarchyRequestError for text under document, got %v", err)
	}
}

func TestNode_AppendChild(t *testing.T) {
	doc := NewDocument()
	parent := mustCreateElement(t, doc, "div")
	a := mustCreateElement(t, doc, "span")
	b := doc.CreateTextNode("b")

	mustAppend(t, parent, a)
	mustAppend(t, parent, b)

	if parent.FirstChild() != a.AsNode() {
		t.Error("Expected first child to be the span")
	}
	if parent.AsNode().LastChild() != b {
		t.Error("Expected last child to be the text node")
	}
	if a.NextSibling() != b || b.PreviousSibling() != a.AsNode() {
		t.Error("Expected sibling links between children")
	}
	if a.AsNode().ParentElement() != parent {
		t.Error("Expected parentElement to be the div")
	}
	if parent.TextContent() != "b" {
		t.Errorf("Expected text content 'b', got %q", parent.TextContent())
	}

	// Moving a child to another parent detaches it first.
	other := mustCreateElement(t, doc, "p")
	mustAppend(t, other, a)
	if len(parent.ChildNodes()) != 1 {
		t.Errorf("Expected 1 child after move, got %d", len(parent.ChildNodes()))
	}
	if a.ParentNode() != other.AsNode() {
		t.Error("Expected moved child to have the new parent")
	}
}

func TestNode_InsertBeforeAndRemove(t *testing.T) {
	doc := NewDocument()
	parent := mustCreateElement(t, doc, "ul")
	first := mustCreateElement(t, doc, "li")
	second := mustCreateElement(t, doc, "li")
	mustAppend(t, parent, second)

	if _, err := parent.InsertBefore(first, second); err != nil {
		t.Fatalf("InsertBefore failed: %v", err)
	}
	children := parent.Children()
	if len(children) != 2 || children[0] != first || children[1] != second {
		t.Fatalf("Unexpected children order: %v", children)
	}

	stranger := mustCreateElement(t, doc, "li")
	if _, err := parent.InsertBefore(mustCreateElement(t, doc, "li"), stranger); !IsDOMError(err, NotFoundErr) {
		t.Errorf("Expected NotFoundError for foreign reference child, got %v", err)
	}

	if _, err := parent.RemoveChild(first); err != nil {
		t.Fatalf("RemoveChild failed: %v", err)
	}
	if first.ParentNode() != nil || first.NextSibling() != nil {
		t.Error("Expected removed child to be fully detached")
	}
	if _, err := parent.RemoveChild(first); !IsDOMError(err, NotFoundErr) {
		t.Errorf("Expected NotFoundError removing a non-child, got %v", err)
	}
}

func TestNode_HierarchyErrors(t *testing.T) {
	doc := NewDocument()
	outer := mustCreateElement(t, doc, "div")
	inner := mustCreateElement(t, doc, "div")
	mustAppend(t, outer, inner)

	if _, err := inner.AppendChild(outer); !IsDOMError(err, HierarchyRequestErr) {
		t.Errorf("Expected HierarchyRequestError for a cycle, got %v", err)
	}
	if _, err := outer.AppendChild(outer); !IsDOMError(err, HierarchyRequestErr) {
		t.Errorf("Expected HierarchyRequestError for self-append, got %v", err)
	}

	text := doc.CreateTextNode("leaf")
	if _, err := text.AppendChild(inner.AsNode()); !IsDOMError(err, HierarchyRequestErr) {
		t.Errorf("Expected HierarchyRequestError appending under text, got %v", err)
	}
}

func TestNode_WrongDocument(t *testing.T) {
	docA := NewDocument()
	docB := NewDocument()
	parent := mustCreateElement(t, docB, "div")
	child := mustCreateElement(t, docA, "span")

	_, err := parent.AppendChild(child)
	if !IsDOMError(err, WrongDocumentErr) {
		t.Fatalf("Expected WrongDocumentError, got %v", err)
	}
	if child.OwnerDocument() != docA {
		t.Error("Expected child to keep its owner document")
	}
}

func TestElement_SetAttributeNode_WrongDocument(t *testing.T) {
	docA := NewDocument()
	docB := NewDocument()
	attr, err := docA.CreateAttribute("title")
	if err != nil {
		t.Fatalf("CreateAttribute failed: %v", err)
	}
	el := mustCreateElement(t, docB, "div")

	_, err = el.SetAttributeNode(attr)
	if !IsDOMError(err, WrongDocumentErr) {
		t.Fatalf("Expected WrongDocumentError, got %v", err)
	}
	if attr.OwnerElement() != nil {
		t.Error("Expected rejected attribute to stay unattached")
	}
	if el.HasAttribute("title") {
		t.Error("Expected element to have no title attribute")
	}

	var domErr *DOMError
	if !errors.As(err, &domErr) || domErr.Name != WrongDocumentErr {
		t.Errorf("Expected errors.As to find a WrongDocumentError, got %v", err)
	}
	if !errors.Is(err, ErrWrongDocument("")) {
		t.Error("Expected errors.Is to match by error name")
	}
}

func TestElement_SetAttributeNode_Replaces(t *testing.T) {
	doc := NewDocument()
	el := mustCreateElement(t, doc, "div")

	first, _ := doc.CreateAttribute("title")
	first.SetValue("one")
	if replaced, err := el.SetAttributeNode(first); err != nil || replaced != nil {
		t.Fatalf("SetAttributeNode = (%v, %v), want (nil, nil)", replaced, err)
	}
	if first.OwnerElement() != el {
		t.Error("Expected attached attribute to reference its element")
	}

	second, _ := doc.CreateAttribute("title")
	second.SetValue("two")
	replaced, err := el.SetAttributeNode(second)
	if err != nil {
		t.Fatalf("SetAttributeNode failed: %v", err)
	}
	if replaced != first {
		t.Error("Expected the previous attribute to be returned")
	}
	if first.OwnerElement() != nil {
		t.Error("Expected the replaced attribute to be detached")
	}
	if el.GetAttributeNode("title") != second || el.GetAttribute("title") != "two" {
		t.Error("Expected the new attribute to be stored")
	}
	if el.Attributes().Length() != 1 {
		t.Errorf("Expected 1 attribute, got %d", el.Attributes().Length())
	}

	other := mustCreateElement(t, doc, "div")
	if _, err := other.SetAttributeNode(second); !IsDOMError(err, InUseAttributeErr) {
		t.Errorf("Expected InUseAttributeError, got %v", err)
	}
}

func TestElement_RemoveAttributeNode(t *testing.T) {
	doc := NewDocument()
	el := mustCreateElement(t, doc, "div")
	mustSetAttribute(t, el, "title", "x")
	attr := el.GetAttributeNode("title")

	removed, err := el.RemoveAttributeNode(attr)
	if err != nil || removed != attr {
		t.Fatalf("RemoveAttributeNode = (%v, %v)", removed, err)
	}
	if attr.OwnerElement() != nil {
		t.Error("Expected removed attribute to be detached")
	}

	if _, err := el.RemoveAttributeNode(attr); !IsDOMError(err, NotFoundErr) {
		t.Errorf("Expected NotFoundError removing twice, got %v", err)
	}

	stranger, _ := doc.CreateAttribute("title")
	mustSetAttribute(t, el, "title", "y")
	if _, err := el.RemoveAttributeNode(stranger); !IsDOMError(err, NotFoundErr) {
		t.Errorf("Expected NotFoundError for a same-named but different node, got %v", err)
	}
}

func TestElement_AttributeCaseSensitive(t *testing.T) {
	doc := NewDocument()
	el := mustCreateElement(t, doc, "div")
	mustSetAttribute(t, el, "dataValue", "1")
	mustSetAttribute(t, el, "datavalue", "2")

	if el.GetAttribute("dataValue") != "1" || el.GetAttribute("datavalue") != "2" {
		t.Error("Expected attribute names to be case-sensitive")
	}
	names := el.AttributeNames()
	if len(names) != 2 || names[0] != "dataValue" || names[1] != "datavalue" {
		t.Errorf("Unexpected attribute names %v", names)
	}

	el.RemoveAttribute("dataValue")
	if el.HasAttribute("dataValue") || !el.HasAttribute("datavalue") {
		t.Error("Expected only dataValue to be removed")
	}
}

func TestElement_AttributeDefaults(t *testing.T) {
	doc := NewDocument()
	el := mustCreateElement(t, doc, "div")

	if got := el.GetAttributeWithDefault("title", "x"); got != "x" {
		t.Errorf("GetAttributeWithDefault = %q, want %q", got, "x")
	}
	if _, ok := el.GetAttributeWithNoDefault("title"); ok {
		t.Error("GetAttributeWithNoDefault reported an absent attribute as present")
	}
	if got := el.GetAttribute("title"); got != "" {
		t.Errorf("GetAttribute = %q, want empty", got)
	}
	if el.GetAttributeNode("title") != nil {
		t.Error("GetAttributeNode should return nil for an absent attribute")
	}

	mustSetAttribute(t, el, "title", "")
	if got := el.GetAttributeWithDefault("title", "x"); got != "" {
		t.Errorf("GetAttributeWithDefault = %q, want empty for present attribute", got)
	}
	if v, ok := el.GetAttributeWithNoDefault("title"); !ok || v != "" {
		t.Errorf("GetAttributeWithNoDefault = (%q, %v), want (\"\", true)", v, ok)
	}
}

func TestElement_GetBoolAttribute(t *testing.T) {
	tests := []struct {
		value   string
		present bool
		want    bool
	}{
		{"", false, false},
		{"true", true, true},
		{"TRUE", true, true},
		{"True", true, true},
		{"", true, false},
		{"yes", true, false},
		{"false", true, false},
	}

	doc := NewDocument()
	for _, tt := range tests {
		el := mustCreateElement(t, doc, "div")
		if tt.present {
			mustSetAttribute(t, el, "flag", tt.value)
		}
		if got := el.GetBoolAttribute("flag"); got != tt.want {
			t.Errorf("GetBoolAttribute(present=%v, %q) = %v, want %v", tt.present, tt.value, got, tt.want)
		}
	}
}

func TestElement_GetIntAttribute(t *testing.T) {
	doc := NewDocument()
	el := mustCreateElement(t, doc, "div")

	if n, err := el.GetIntAttribute("size"); err != nil || n != 0 {
		t.Errorf("absent: GetIntAttribute = (%d, %v), want (0, nil)", n, err)
	}

	mustSetAttribute(t, el, "size", "")
	if n, err := el.GetIntAttribute("size"); err != nil || n != 0 {
		t.Errorf("empty: GetIntAttribute = (%d, %v), want (0, nil)", n, err)
	}

	mustSetAttribute(t, el, "size", "-42")
	if n, err := el.GetIntAttribute("size"); err != nil || n != -42 {
		t.Errorf("numeric: GetIntAttribute = (%d, %v), want (-42, nil)", n, err)
	}

	mustSetAttribute(t, el, "size", "big")
	_, err := el.GetIntAttribute("size")
	if err == nil {
		t.Fatal("Expected a parse error for a non-numeric attribute")
	}
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Errorf("Expected the strconv error to be wrapped, got %T", err)
	}
}

func TestGetElementsByTagName(t *testing.T) {
	doc := NewDocument()
	html := mustCreateElement(t, doc, "html")
	if err := doc.SetDocumentElement(html); err != nil {
		t.Fatal(err)
	}
	body := mustCreateElement(t, doc, "body")
	mustAppend(t, html, body)
	outer := mustCreateElement(t, doc, "div")
	inner := mustCreateElement(t, doc, "DIV")
	span := mustCreateElement(t, doc, "span")
	mustAppend(t, body, outer)
	mustAppend(t, outer, inner)
	mustAppend(t, outer, span)

	divs := doc.GetElementsByTagName("Div")
	if len(divs) != 2 || divs[0] != outer || divs[1] != inner {
		t.Errorf("Expected [outer inner], got %v", divs)
	}

	// Descendants only: the element itself is not included.
	fromOuter := outer.GetElementsByTagName("div")
	if len(fromOuter) != 1 || fromOuter[0] != inner {
		t.Errorf("Expected [inner], got %v", fromOuter)
	}

	if all := body.GetElementsByTagName("*"); len(all) != 3 {
		t.Errorf("Expected 3 descendants for '*', got %d", len(all))
	}
	if doc.Body() != body {
		t.Error("Expected Body() to find the body element")
	}
}

func TestDocument_GetElementByID(t *testing.T) {
	doc := NewDocument()
	root := mustCreateElement(t, doc, "html")
	if err := doc.SetDocumentElement(root); err != nil {
		t.Fatal(err)
	}
	target := mustCreateElement(t, doc, "p")
	if err := target.SetID("main"); err != nil {
		t.Fatal(err)
	}
	mustAppend(t, root, target)

	if doc.GetElementByID("main") != target {
		t.Error("Expected to find element by id")
	}
	if doc.GetElementByID("missing") != nil {
		t.Error("Expected nil for a missing id")
	}
	if target.ID() != "main" {
		t.Errorf("Expected ID() 'main', got %q", target.ID())
	}
}

func TestUnsupportedOperations(t *testing.T) {
	doc := NewDocument()
	el := mustCreateElement(t, doc, "div")

	tests := []struct {
		name string
		call func() error
	}{
		{"CreateComment", func() error { _, err := doc.CreateComment("x"); return err }},
		{"CreateCDATASection", func() error { _, err := doc.CreateCDATASection("x"); return err }},
		{"CreateEntityReference", func() error { _, err := doc.CreateEntityReference("amp"); return err }},
		{"CreateProcessingInstruction", func() error { _, err := doc.CreateProcessingInstruction("xml", ""); return err }},
		{"CreateDocumentFragment", func() error { _, err := doc.CreateDocumentFragment(); return err }},
		{"CreateElementNS", func() error { _, err := doc.CreateElementNS(htmlNS, "div"); return err }},
		{"CreateAttributeNS", func() error { _, err := doc.CreateAttributeNS(htmlNS, "x"); return err }},
		{"Document.GetElementsByTagNameNS", func() error { _, err := doc.GetElementsByTagNameNS(htmlNS, "div"); return err }},
		{"Element.GetElementsByTagNameNS", func() error { _, err := el.GetElementsByTagNameNS(htmlNS, "div"); return err }},
		{"GetAttributeNS", func() error { _, err := el.GetAttributeNS(htmlNS, "x"); return err }},
		{"SetAttributeNS", func() error { return el.SetAttributeNS(htmlNS, "x", "y") }},
		{"CloneDocument", func() error { _, err := doc.AsNode().CloneNode(true); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !IsDOMError(err, NotSupportedErr) {
				t.Errorf("Expected NotSupportedError, got %v", err)
			}
		})
	}
}

func TestSetTextContent(t *testing.T) {
	doc := NewDocument()
	el := mustCreateElement(t, doc, "p")
	mustAppend(t, el, mustCreateElement(t, doc, "b"))
	mustAppend(t, el, doc.CreateTextNode("old"))

	el.SetTextContent("new")
	if len(el.ChildNodes()) != 1 || el.TextContent() != "new" {
		t.Errorf("Expected a single 'new' text child, got %d children and %q", len(el.ChildNodes()), el.TextContent())
	}
	if el.FirstChild().OwnerDocument() != doc {
		t.Error("Expected replacement text to be owned by the element's document")
	}

	el.SetTextContent("")
	if el.AsNode().HasChildNodes() {
		t.Error("Expected no children after clearing text content")
	}
}
