package circuit

import (
	"encoding/json"
	"fmt"
)

// ============================================================================
// PIN TYPES AND STATES
// ============================================================================

// PinType classifies what a pin is electrically, which drives how the
// simulator seeds it and how the renderer colors it.
type PinType string

const (
	// PinDigital is a digital I/O pin (Arduino D0..D13).
	PinDigital PinType = "digital"
	// PinAnalog is an analog input pin (Arduino A0..A5).
	PinAnalog PinType = "analog"
	// PinPower is a supply pin; the simulator seeds it HIGH every tick.
	PinPower PinType = "power"
	// PinGround is a ground pin; the simulator seeds it LOW every tick.
	PinGround PinType = "ground"
	// PinTerminal is a generic component terminal (LED anode, motor plus).
	PinTerminal PinType = "component_terminal"
)

// PinState is the logical level of a pin during simulation.
type PinState int

const (
	// StateUnknown means nothing has driven the pin this tick.
	StateUnknown PinState = iota
	// StateHigh is logic high.
	StateHigh
	// StateLow is logic low.
	StateLow
	// StateConflict marks a pin driven to two different levels. Conflict is
	// terminal for the tick: it propagates like a known state and nothing
	// overwrites it.
	StateConflict
)

// Known reports whether the pin has been driven to some level this tick.
// CONFLICT counts as known so it spreads through wires like HIGH and LOW do.
func (s PinState) Known() bool { return s != StateUnknown }

func (s PinState) String() string {
	switch s {
	case StateHigh:
		return "HIGH"
	case StateLow:
		return "LOW"
	case StateConflict:
		return "CONFLICT"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the state as its display string so snapshots read
// naturally ("HIGH", "LOW", ...).
func (s PinState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the display strings produced by MarshalJSON.
// Anything unrecognized decodes as UNKNOWN rather than failing.
func (s *PinState) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "HIGH":
		*s = StateHigh
	case "LOW":
		*s = StateLow
	case "CONFLICT":
		*s = StateConflict
	default:
		*s = StateUnknown
	}
	return nil
}

// ============================================================================
// GEOMETRY
// ============================================================================

// Point is a position on the workspace, in pixels.
type Point struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// ============================================================================
// PIN
// ============================================================================

// Pin is a single electrical terminal on a component. Pins are created by
// the component catalog and never exist detached from a component.
//
// A pin stores only its offset relative to the owning component; absolute
// positions are always derived so moving a component never desynchronizes
// its pins.
type Pin struct {
	ID          string
	Name        string
	Type        PinType
	ComponentID string
	Offset      Point
	State       PinState
}

// PinID returns the globally unique id for the named pin of a component.
// The format is part of the persisted contract: "pin_<componentID>_<name>".
func PinID(componentID, name string) string {
	return fmt.Sprintf("pin_%s_%s", componentID, name)
}

func newPin(componentID, name string, typ PinType, offset Point) *Pin {
	return &Pin{
		ID:          PinID(componentID, name),
		Name:        name,
		Type:        typ,
		ComponentID: componentID,
		Offset:      offset,
		State:       StateUnknown,
	}
}

// Position returns the pin's absolute workspace position given its owning
// component's position.
func (p *Pin) Position(componentPos Point) Point {
	return componentPos.Add(p.Offset)
}
