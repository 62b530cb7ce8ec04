// Package table implements the point state machine of a craps table.
package table

import "github.com/aretw0/crapsim/pkg/domain"

// Class is how a roll reads for a bet in its come-out phase.
type Class int

const (
	ClassNumber  Class = iota // 4, 5, 6, 8, 9, 10: becomes the point
	ClassNatural              // 7, 11: immediate win
	ClassCraps                // 2, 3, 12: immediate loss
)

func (c Class) String() string {
	switch c {
	case ClassNatural:
		return "natural"
	case ClassCraps:
		return "craps"
	}
	return "number"
}

// Classify reads a come-out roll. 12 is craps (a loss, never a push).
func Classify(sum int) Class {
	switch sum {
	case 7, 11:
		return ClassNatural
	case 2, 3, 12:
		return ClassCraps
	}
	return ClassNumber
}

// Event names the table transition caused by a roll.
type Event string

const (
	EventNatural   Event = "natural"    // come-out 7 or 11
	EventCraps     Event = "craps"      // come-out 2, 3 or 12
	EventPointSet  Event = "point_set"  // come-out point number
	EventPointMade Event = "point_made" // point repeated
	EventSevenOut  Event = "seven_out"  // 7 with the point on
	EventNoAction  Event = "no_action"  // any other roll with the point on
)

// Transition is the result of advancing the table by one roll.
type Transition struct {
	From  domain.Point
	To    domain.Point
	Event Event
}

// Table tracks the main point. The zero value is ready in come-out.
type Table struct {
	point domain.Point
}

// Point returns the current main point.
func (t *Table) Point() domain.Point {
	return t.point
}

// ComeOut reports whether the next roll is a come-out roll.
func (t *Table) ComeOut() bool {
	return !t.point.IsOn()
}

// Advance applies a dice total and returns the transition taken.
func (t *Table) Advance(sum int) Transition {
	tr := Transition{From: t.point}
	if !t.point.IsOn() {
		switch Classify(sum) {
		case ClassNatural:
			tr.Event = EventNatural
		case ClassCraps:
			tr.Event = EventCraps
		default:
			tr.Event = EventPointSet
			t.point = domain.Point(sum)
		}
		tr.To = t.point
		return tr
	}

	switch {
	case sum == int(t.point):
		tr.Event = EventPointMade
		t.point = domain.PointOff
	case sum == 7:
		tr.Event = EventSevenOut
		t.point = domain.PointOff
	default:
		tr.Event = EventNoAction
	}
	tr.To = t.point
	return tr
}

// Reset returns the table to come-out.
func (t *Table) Reset() {
	t.point = domain.PointOff
}
