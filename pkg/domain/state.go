package domain

import (
	"encoding/json"
	"fmt"
)

// Classification is the terminal verdict of a halted branch.
type Classification int

const (
	Yes  Classification = iota + 1 // accept
	No                             // reject
	Halt                           // stopped without a verdict
)

// String returns the single-letter form used in program text and reports.
func (c Classification) String() string {
	switch c {
	case Yes:
		return "Y"
	case No:
		return "N"
	case Halt:
		return "H"
	}
	return fmt.Sprintf("Classification(%d)", int(c))
}

// Name returns the long form ("yes", "no", "halt").
func (c Classification) Name() string {
	switch c {
	case Yes:
		return "yes"
	case No:
		return "no"
	case Halt:
		return "halt"
	}
	return "unknown"
}

func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Name())
}

func (c *Classification) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "yes", "Y":
		*c = Yes
	case "no", "N":
		*c = No
	case "halt", "H":
		*c = Halt
	default:
		return fmt.Errorf("unknown classification %q", s)
	}
	return nil
}

// Direction is a head movement.
type Direction int

const (
	Left Direction = iota + 1
	Right
	Stay
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Stay:
		return "stay"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}
