// Package treedump renders a dom document as an indented tree for the CLI.
package treedump

import (
	"fmt"
	"strconv"
	"strings"

	tp "github.com/xlab/treeprint"

	"github.com/chrisuehlinger/scriptdom/dom"
)

// Dump returns a tree rendering of doc. Elements are shown with their
// attributes; form controls carry their behavior and live state as meta.
// Whitespace-only text is omitted.
func Dump(doc *dom.Document) string {
	p := tp.New()
	for _, child := range doc.AsNode().ChildNodes() {
		ppt(p, child)
	}
	return "#document\n" + p.String()
}

func ppt(p tp.Tree, node *dom.Node) {
	if node.NodeType() == dom.TextNode {
		text := strings.TrimSpace(node.NodeValue())
		if text != "" {
			p.AddNode(strconv.Quote(text))
		}
		return
	}

	el := node.AsElement()
	if el == nil {
		p.AddNode(node.NodeName())
		return
	}

	label := elementLabel(el)
	meta := controlMeta(el)
	if !node.HasChildNodes() {
		if meta != "" {
			p.AddMetaNode(meta, label)
		} else {
			p.AddNode(label)
		}
		return
	}

	var branch tp.Tree
	if meta != "" {
		branch = p.AddMetaBranch(meta, label)
	} else {
		branch = p.AddBranch(label)
	}
	for _, child := range node.ChildNodes() {
		ppt(branch, child)
	}
}

func elementLabel(el *dom.Element) string {
	var sb strings.Builder
	sb.WriteString(el.TagName())
	for _, name := range el.AttributeNames() {
		fmt.Fprintf(&sb, " %s=%q", name, el.GetAttribute(name))
	}
	return sb.String()
}

// controlMeta describes the live state of INPUT and BUTTON elements.
func controlMeta(el *dom.Element) string {
	switch el.TagName() {
	case "INPUT", "BUTTON":
	default:
		return ""
	}
	switch b := el.Behavior(); b {
	case dom.BehaviorEditableText:
		return fmt.Sprintf("%s value=%q", b, el.Value())
	case dom.BehaviorCheckbox, dom.BehaviorRadioButton:
		return fmt.Sprintf("%s checked=%t", b, el.Checked())
	default:
		return b.String()
	}
}
