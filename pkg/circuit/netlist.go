package circuit

import (
	"fmt"
	"slices"
)

// ============================================================================
// NETLIST DERIVATION
// ============================================================================

// Grid placement for materialized designs. Components without meaningful
// positions (everything coming out of the persisted format) land on a
// simple left-to-right grid; positions are pure layout and never affect
// connectivity.
const (
	gridColumns  = 3
	gridSpacingX = 100
	gridSpacingY = 80
	gridOriginX  = 50
	gridOriginY  = 50
)

// DefaultBoardID is the id of the Arduino synthesized when a design
// declares connections but contains no board of its own.
const DefaultBoardID = "arduino_main"

// UpdateFromData replaces the circuit's entire contents with the design in
// d: components are placed on the grid in declaration order, a board is
// synthesized if the design has none, and every declared connection is
// resolved against the board's pins.
//
// The operation is tolerant by construction. Missing ids and types get
// defaults, declared pins that don't exist on the component are skipped,
// and labels that resolve to no board pin are skipped, all silently. The
// worst malformed input produces a sparser circuit, never an error.
func (c *Circuit) UpdateFromData(d Data) {
	c.Clear()

	for i, cd := range d.Components {
		typ := cd.Type
		if typ == "" {
			typ = "unknown"
		}
		id := cd.ID
		if id == "" {
			id = fmt.Sprintf("comp_%d", i)
		}
		pos := Point{
			X: gridOriginX + (i%gridColumns)*gridSpacingX,
			Y: gridOriginY + (i/gridColumns)*gridSpacingY,
		}
		c.components = append(c.components, NewComponent(id, typ, pos, cd.Properties, cd.Connections))
	}

	c.deriveConnections()
}

// deriveConnections materializes every component's declared wiring as
// Connections to the board.
func (c *Circuit) deriveConnections() {
	board := c.board()
	if board == nil {
		board = NewComponent(DefaultBoardID, TypeArduinoUno, Point{gridOriginX, gridOriginY}, nil, nil)
		c.components = append(c.components, board)
	}

	for _, comp := range c.components {
		if comp.ID == board.ID {
			continue
		}
		// Sorted pin-name order keeps GND fallback routing deterministic.
		names := make([]string, 0, len(comp.Declared))
		for name := range comp.Declared {
			names = append(names, name)
		}
		slices.Sort(names)

		for _, name := range names {
			pin, ok := comp.Pins[name]
			if !ok {
				continue // declared pin the component doesn't have
			}
			boardPin := c.resolveBoardPin(board, comp.Declared[name])
			if boardPin == nil {
				continue // unresolvable label
			}
			c.AddConnection(pin.ID, boardPin.ID)
		}
	}
}

func (c *Circuit) board() *Component {
	for _, comp := range c.components {
		if comp.Type == TypeArduinoUno {
			return comp
		}
	}
	return nil
}

// resolveBoardPin maps a declared label to a board pin. Bare digits mean a
// digital pin ("13" → "D13"); power labels (5V, 3.3V, VIN) and explicit
// pin names pass through. "GND" routes to the primary ground while it is
// unused, then falls back to GND2 so two grounded components don't fight
// over one pin. Unknown labels resolve to nil.
func (c *Circuit) resolveBoardPin(board *Component, label string) *Pin {
	if isDigits(label) {
		label = "D" + label
	}
	if label == "GND" {
		if gnd := board.Pins["GND"]; gnd != nil && len(c.byPin[gnd.ID]) == 0 {
			return gnd
		}
		return board.Pins["GND2"]
	}
	return board.Pins[label]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
