package domain

import "fmt"

// Point is the number established on a come-out roll. Zero means off.
type Point int

// PointOff is the come-out state: no point established.
const PointOff Point = 0

// Points lists every valid point number in table order.
var Points = []Point{4, 5, 6, 8, 9, 10}

// IsOn reports whether a point is established.
func (p Point) IsOn() bool {
	return p != PointOff
}

// Valid reports whether p is off or one of the six point numbers.
func (p Point) Valid() bool {
	switch p {
	case PointOff, 4, 5, 6, 8, 9, 10:
		return true
	}
	return false
}

func (p Point) String() string {
	if p == PointOff {
		return "off"
	}
	return fmt.Sprintf("%d", int(p))
}

// IsPointNumber reports whether a dice sum establishes a point.
func IsPointNumber(sum int) bool {
	return Point(sum) != PointOff && Point(sum).Valid()
}

// Roll is one throw of two dice.
type Roll struct {
	D1 int `json:"d1"`
	D2 int `json:"d2"`
}

// Sum returns the total shown by the dice.
func (r Roll) Sum() int {
	return r.D1 + r.D2
}

func (r Roll) String() string {
	return fmt.Sprintf("%d+%d=%d", r.D1, r.D2, r.Sum())
}
