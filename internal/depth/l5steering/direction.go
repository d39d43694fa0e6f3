package l5steering

import "fmt"

// Direction is the categorical steering label.
type Direction int

const (
	Undecided Direction = iota
	Right
	Left
)

// DefaultThreshold splits headings into right (inclusive) and left.
const DefaultThreshold = 0.5

// Classify maps a heading to a label: heading <= threshold steers right,
// anything above steers left.
func Classify(heading, threshold float64) Direction {
	if heading <= threshold {
		return Right
	}
	return Left
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	default:
		return "undecided"
	}
}

// MarshalText encodes the label as its lower-case name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a label produced by MarshalText.
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "right":
		*d = Right
	case "left":
		*d = Left
	case "undecided", "":
		*d = Undecided
	default:
		return fmt.Errorf("unknown direction %q", b)
	}
	return nil
}
