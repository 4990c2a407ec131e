package dom

import (
	"strings"
)

// Behavior is the active behavior variant of a form control. It is a closed
// set; the variant of an element is recomputed from its type attribute every
// time that attribute changes.
type Behavior uint8

const (
	// BehaviorDefault reads value and checked state from attributes and
	// ignores mutation and clicks.
	BehaviorDefault Behavior = iota
	// BehaviorEditableText keeps an in-memory value that overrides the
	// value attribute.
	BehaviorEditableText
	// BehaviorCheckbox keeps an in-memory checked state toggled by clicks.
	BehaviorCheckbox
	// BehaviorRadioButton is a checkbox that unchecks the other radio
	// buttons of its named group within the owning form.
	BehaviorRadioButton
	// BehaviorResetButton resets the owning form when clicked.
	BehaviorResetButton
)

// String returns the name of the behavior.
func (b Behavior) String() string {
	switch b {
	case BehaviorDefault:
		return "default"
	case BehaviorEditableText:
		return "text"
	case BehaviorCheckbox:
		return "checkbox"
	case BehaviorRadioButton:
		return "radio"
	case BehaviorResetButton:
		return "reset"
	default:
		return "unknown"
	}
}

// controlState is the per-element state of a form control. The value and
// checked overrides are independent of the behavior: a type change swaps the
// behavior but keeps both overrides, and only Reset clears them.
type controlState struct {
	behavior Behavior
	value    *string
	checked  *bool
}

// isBehaviorTag reports whether elements with this tag carry a behavior variant.
func isBehaviorTag(tagName string) bool {
	return tagName == "INPUT" || tagName == "BUTTON"
}

// isFormControlTag reports whether elements with this tag are listed by a
// form's controls.
func isFormControlTag(tagName string) bool {
	switch tagName {
	case "INPUT", "BUTTON", "SELECT", "TEXTAREA":
		return true
	default:
		return false
	}
}

// behaviorFor maps a tag name and type attribute value to a behavior.
func behaviorFor(tagName, typ string) Behavior {
	typ = strings.ToLower(typ)
	if tagName == "BUTTON" {
		if typ == "reset" {
			return BehaviorResetButton
		}
		return BehaviorDefault
	}
	switch typ {
	case "", "text", "password", "hidden":
		return BehaviorEditableText
	case "checkbox":
		return BehaviorCheckbox
	case "radio":
		return BehaviorRadioButton
	case "reset":
		return BehaviorResetButton
	default:
		return BehaviorDefault
	}
}

// onTypeChanged is the explicit behavior transition. It runs inside the
// attribute mutation that changed the type, before that mutation returns.
func (e *Element) onTypeChanged(typ string) {
	c := e.control()
	if c == nil {
		return
	}
	c.behavior = behaviorFor(e.TagName(), typ)
}

func (e *Element) control() *controlState {
	return e.AsNode().elementData.control
}

// Behavior returns the active behavior variant. Elements that are not
// INPUT or BUTTON always report BehaviorDefault.
func (e *Element) Behavior() Behavior {
	if c := e.control(); c != nil {
		return c.behavior
	}
	return BehaviorDefault
}

// DefaultValue returns the value attribute, or "" when absent.
func (e *Element) DefaultValue() string {
	return e.GetAttributeWithDefault("value", "")
}

// DefaultChecked reports whether the checked attribute is present.
func (e *Element) DefaultChecked() bool {
	return e.HasAttribute("checked")
}

// Value returns the effective value of the control.
func (e *Element) Value() string {
	if c := e.control(); c != nil && c.behavior == BehaviorEditableText && c.value != nil {
		return *c.value
	}
	return e.DefaultValue()
}

// SetValue sets the in-memory value of an editable text control. It is a
// no-op for every other behavior.
func (e *Element) SetValue(value string) {
	if c := e.control(); c != nil && c.behavior == BehaviorEditableText {
		c.value = &value
	}
}

// Checked returns the effective checked state of the control.
func (e *Element) Checked() bool {
	if c := e.control(); c != nil && c.checked != nil {
		switch c.behavior {
		case BehaviorCheckbox, BehaviorRadioButton:
			return *c.checked
		}
	}
	return e.DefaultChecked()
}

// SetChecked sets the in-memory checked state of a checkbox or radio
// button. Checking a radio button first unchecks every other radio button
// with the same name in the owning form.
func (e *Element) SetChecked(checked bool) {
	c := e.control()
	if c == nil {
		return
	}
	switch c.behavior {
	case BehaviorCheckbox:
		c.checked = &checked
	case BehaviorRadioButton:
		if checked {
			e.uncheckRadioGroup()
		}
		c.checked = &checked
	}
}

// uncheckRadioGroup sets an unchecked override on every other radio button
// that shares this element's name within the owning form.
func (e *Element) uncheckRadioGroup() {
	form := e.Form()
	if form == nil {
		return
	}
	name := e.Name()
	for _, other := range form.Controls() {
		if other == e || other.TagName() != "INPUT" || other.Behavior() != BehaviorRadioButton {
			continue
		}
		if other.Name() != name {
			continue
		}
		unchecked := false
		other.control().checked = &unchecked
	}
}

// Reset clears the in-memory overrides of the active behavior so the
// control reflects its attributes again. On a FORM element it resets every
// control of the form.
func (e *Element) Reset() {
	if e.TagName() == "FORM" {
		(*FormElement)(e).Reset()
		return
	}
	c := e.control()
	if c == nil {
		return
	}
	switch c.behavior {
	case BehaviorEditableText:
		c.value = nil
	case BehaviorCheckbox, BehaviorRadioButton:
		c.checked = nil
	}
}

// Click performs the default activation of the control: checkboxes toggle,
// radio buttons check, reset buttons reset their form. Other behaviors
// ignore clicks.
func (e *Element) Click() {
	c := e.control()
	if c == nil {
		return
	}
	switch c.behavior {
	case BehaviorCheckbox:
		e.SetChecked(!e.Checked())
	case BehaviorRadioButton:
		e.SetChecked(true)
	case BehaviorResetButton:
		if form := e.Form(); form != nil {
			form.Reset()
		}
	}
}

// Form returns the nearest ancestor FORM element, or nil.
func (e *Element) Form() *FormElement {
	for p := e.AsNode().parentNode; p != nil; p = p.parentNode {
		if p.nodeType == ElementNode && p.elementData.tagName == "FORM" {
			return (*FormElement)(p)
		}
	}
	return nil
}

// FormElement is an Element with tag FORM.
type FormElement Element

// AsElement returns the form viewed as an Element.
func (f *FormElement) AsElement() *Element {
	return (*Element)(f)
}

// AsNode returns the underlying Node.
func (f *FormElement) AsNode() *Node {
	return (*Node)(f)
}

// Name returns the name attribute of the form.
func (f *FormElement) Name() string {
	return f.AsElement().Name()
}

// Controls returns the descendant INPUT, BUTTON, SELECT and TEXTAREA
// elements in document order.
func (f *FormElement) Controls() []*Element {
	var controls []*Element
	f.AsNode().walkElements(func(el *Element) bool {
		if isFormControlTag(el.TagName()) {
			controls = append(controls, el)
		}
		return true
	})
	return controls
}

// Reset resets every control of the form.
func (f *FormElement) Reset() {
	for _, control := range f.Controls() {
		control.Reset()
	}
}

// ScriptHandle returns the Element view of the form, so scripts see a form
// with the full element surface.
func (f *FormElement) ScriptHandle() any {
	return f.AsElement()
}
