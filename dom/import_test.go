package dom

import "testing"

func buildImportSource(t *testing.T, doc *Document) *Element {
	t.Helper()
	div := mustCreateElement(t, doc, "div")
	mustSetAttribute(t, div, "id", "box")
	mustSetAttribute(t, div, "class", "a b")
	p := mustCreateElement(t, doc, "p")
	mustSetAttribute(t, p, "title", "para")
	mustAppend(t, p, doc.CreateTextNode("hello"))
	mustAppend(t, div, p)
	mustAppend(t, div, doc.CreateTextNode(" world"))
	return div
}

func TestDocument_ImportNode_Deep(t *testing.T) {
	src := NewDocument()
	dst := NewDocument()
	div := buildImportSource(t, src)

	imported, err := dst.ImportNode(div.AsNode(), true)
	if err != nil {
		t.Fatalf("ImportNode failed: %v", err)
	}
	el := imported.AsElement()
	if el == nil {
		t.Fatal("Expected an element")
	}
	if el == div {
		t.Fatal("Expected a distinct node")
	}
	if el.OwnerDocument() != dst {
		t.Error("Expected imported element to be owned by the destination document")
	}
	if el.ParentNode() != nil {
		t.Error("Expected imported element to be detached")
	}
	if el.TagName() != "DIV" {
		t.Errorf("Expected tag 'DIV', got %q", el.TagName())
	}

	names := el.AttributeNames()
	if len(names) != 2 || names[0] != "id" || names[1] != "class" {
		t.Errorf("Expected attributes [id class], got %v", names)
	}
	for _, name := range names {
		attr := el.GetAttributeNode(name)
		if attr == div.GetAttributeNode(name) {
			t.Errorf("Attribute %q was shared instead of copied", name)
		}
		if attr.OwnerDocument() != dst {
			t.Errorf("Attribute %q is not owned by the destination document", name)
		}
		if attr.OwnerElement() != el {
			t.Errorf("Attribute %q is not attached to the imported element", name)
		}
	}
	if el.GetAttribute("class") != "a b" {
		t.Errorf("Expected class 'a b', got %q", el.GetAttribute("class"))
	}

	if el.TextContent() != "hello world" {
		t.Errorf("Expected text 'hello world', got %q", el.TextContent())
	}
	children := el.ChildNodes()
	if len(children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(children))
	}
	for _, child := range children {
		if child.OwnerDocument() != dst {
			t.Error("Expected imported descendants to be owned by the destination document")
		}
	}
	if p := children[0].AsElement(); p == nil || p.GetAttribute("title") != "para" {
		t.Error("Expected the nested paragraph with its title")
	}

	// The source subtree is untouched.
	if div.OwnerDocument() != src || len(div.ChildNodes()) != 2 {
		t.Error("Expected the source subtree to be unchanged")
	}

	// The imported copy can be inserted into the destination tree.
	root := mustCreateElement(t, dst, "html")
	if err := dst.SetDocumentElement(root); err != nil {
		t.Fatal(err)
	}
	if _, err := root.AppendChild(el); err != nil {
		t.Errorf("Expected imported node to be insertable, got %v", err)
	}
	if dst.GetElementByID("box") != el {
		t.Error("Expected to find the imported element by id")
	}
}

func TestDocument_ImportNode_Shallow(t *testing.T) {
	src := NewDocument()
	dst := NewDocument()
	div := buildImportSource(t, src)

	imported, err := dst.ImportNode(div.AsNode(), false)
	if err != nil {
		t.Fatalf("ImportNode failed: %v", err)
	}
	if imported.HasChildNodes() {
		t.Error("Expected a shallow import to have no children")
	}
	if imported.AsElement().GetAttribute("id") != "box" {
		t.Error("Expected a shallow import to keep attributes")
	}
}

func TestDocument_ImportNode_Text(t *testing.T) {
	src := NewDocument()
	dst := NewDocument()

	imported, err := dst.ImportNode(src.CreateTextNode("x"), false)
	if err != nil {
		t.Fatalf("ImportNode failed: %v", err)
	}
	if imported.NodeType() != TextNode || imported.NodeValue() != "x" {
		t.Errorf("Unexpected imported node %v %q", imported.NodeType(), imported.NodeValue())
	}
	if imported.OwnerDocument() != dst {
		t.Error("Expected text to be owned by the destination document")
	}
}

func TestDocument_ImportNode_Unsupported(t *testing.T) {
	src := NewDocument()
	dst := NewDocument()

	if _, err := dst.ImportNode(src.AsNode(), true); !IsDOMError(err, NotSupportedErr) {
		t.Errorf("Expected NotSupportedError importing a document, got %v", err)
	}
	if _, err := dst.ImportNode(nil, true); !IsDOMError(err, NotSupportedErr) {
		t.Errorf("Expected NotSupportedError importing nil, got %v", err)
	}
}

func TestDocument_ImportAttribute(t *testing.T) {
	src := NewDocument()
	dst := NewDocument()
	el := mustCreateElement(t, src, "div")
	mustSetAttribute(t, el, "title", "t")

	attr := dst.ImportAttribute(el.GetAttributeNode("title"))
	if attr.OwnerDocument() != dst || attr.OwnerElement() != nil {
		t.Error("Expected an unattached attribute owned by the destination document")
	}
	if attr.Name() != "title" || attr.Value() != "t" {
		t.Errorf("Expected title=t, got %s=%s", attr.Name(), attr.Value())
	}

	target := mustCreateElement(t, dst, "div")
	if _, err := target.SetAttributeNode(attr); err != nil {
		t.Errorf("Expected imported attribute to attach, got %v", err)
	}
}

func TestDocument_ImportNode_ControlBehavior(t *testing.T) {
	src := NewDocument()
	dst := NewDocument()
	input := mustCreateElement(t, src, "input")
	mustSetAttribute(t, input, "type", "checkbox")
	mustSetAttribute(t, input, "checked", "")
	input.SetChecked(false)

	imported, err := dst.ImportNode(input.AsNode(), false)
	if err != nil {
		t.Fatalf("ImportNode failed: %v", err)
	}
	el := imported.AsElement()
	if el.Behavior() != BehaviorCheckbox {
		t.Errorf("Expected checkbox behavior, got %v", el.Behavior())
	}
	// Overrides are runtime state and are not copied.
	if !el.Checked() {
		t.Error("Expected the import to reflect the checked attribute")
	}
}

func TestElement_CloneNode(t *testing.T) {
	doc := NewDocument()
	div := buildImportSource(t, doc)

	clone, err := div.CloneNode(true)
	if err != nil {
		t.Fatalf("CloneNode failed: %v", err)
	}
	if clone == div || clone.OwnerDocument() != doc {
		t.Error("Expected a distinct clone in the same document")
	}
	if clone.TextContent() != div.TextContent() {
		t.Errorf("Expected %q, got %q", div.TextContent(), clone.TextContent())
	}

	shallow, err := div.CloneNode(false)
	if err != nil {
		t.Fatalf("CloneNode failed: %v", err)
	}
	if shallow.AsNode().HasChildNodes() {
		t.Error("Expected a shallow clone to have no children")
	}
}
