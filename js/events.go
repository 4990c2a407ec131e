package js

import (
	"time"

	"github.com/chrisuehlinger/scriptdom/dom"
)

// EventPhase represents the phase of event dispatch.
type EventPhase int

const (
	EventPhaseNone     EventPhase = 0
	EventPhaseAtTarget EventPhase = 2
)

// Event is the object passed to inline event handlers. Scripts reach its
// fields through the binder, e.g. event.type or event.preventDefault().
type Event struct {
	typ              string
	target           *dom.Element
	phase            EventPhase
	defaultPrevented bool
	timeStamp        float64
}

// NewEvent creates an event of the given type aimed at target.
func NewEvent(eventType string, target *dom.Element) *Event {
	return &Event{
		typ:       eventType,
		target:    target,
		timeStamp: float64(time.Now().UnixNano()) / 1e6,
	}
}

func (e *Event) Type() string                { return e.typ }
func (e *Event) Target() *dom.Element        { return e.target }
func (e *Event) CurrentTarget() *dom.Element { return e.target }
func (e *Event) EventPhase() EventPhase      { return e.phase }
func (e *Event) TimeStamp() float64          { return e.timeStamp }
func (e *Event) DefaultPrevented() bool      { return e.defaultPrevented }

// PreventDefault cancels the default action that follows dispatch.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}
