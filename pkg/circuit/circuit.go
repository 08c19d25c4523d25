package circuit

import (
	"fmt"
	"slices"
	"strings"
)

// Circuit is the live design: components in insertion order (which doubles
// as z-order, later on top) and the wires between their pins.
//
// Membership of a pin in connections is tracked only by the byPin index;
// there are no back-references on Pin or Connection to fall out of sync.
type Circuit struct {
	components  []*Component
	connections []*Connection
	byPin       map[string][]*Connection

	selected *Component
	simState SimulationState
	seq      int
}

// New returns an empty circuit.
func New() *Circuit {
	return &Circuit{
		byPin:    map[string][]*Connection{},
		simState: SimulationState{Components: map[string]ComponentState{}},
	}
}

// ============================================================================
// LOOKUPS
// ============================================================================

// Components returns the components in insertion order. The slice is shared
// with the circuit; treat it as read-only.
func (c *Circuit) Components() []*Component { return c.components }

// Connections returns the connections in insertion order. The slice is
// shared with the circuit; treat it as read-only.
func (c *Circuit) Connections() []*Connection { return c.connections }

// Component returns the component with the given id.
func (c *Circuit) Component(id string) (*Component, bool) {
	for _, comp := range c.components {
		if comp.ID == id {
			return comp, true
		}
	}
	return nil, false
}

// Pin resolves a pin id to its pin, searching all components.
func (c *Circuit) Pin(id string) (*Pin, bool) {
	_, pin := c.findPin(id)
	if pin == nil {
		return nil, false
	}
	return pin, true
}

func (c *Circuit) findPin(id string) (*Component, *Pin) {
	for _, comp := range c.components {
		for _, pin := range comp.Pins {
			if pin.ID == id {
				return comp, pin
			}
		}
	}
	return nil, nil
}

// PinConnections returns the connections a pin participates in. Dangling
// connections (an endpoint that never resolved) are not included.
func (c *Circuit) PinConnections(pinID string) []*Connection {
	return c.byPin[pinID]
}

// ComponentAt returns the topmost component whose footprint contains p.
// Later components render on top, so the scan runs back to front.
func (c *Circuit) ComponentAt(p Point) *Component {
	for i := len(c.components) - 1; i >= 0; i-- {
		if c.components[i].ContainsPoint(p) {
			return c.components[i]
		}
	}
	return nil
}

// PinAt returns the first pin within threshold of p, scanning components in
// insertion order. Returns the owning component alongside the pin.
func (c *Circuit) PinAt(p Point, threshold int) (*Component, *Pin) {
	for _, comp := range c.components {
		if pin := comp.PinAt(p, threshold); pin != nil {
			return comp, pin
		}
	}
	return nil, nil
}

// Selected returns the currently selected component, or nil.
func (c *Circuit) Selected() *Component { return c.selected }

// Select marks a component as selected; nil clears the selection.
func (c *Circuit) Select(comp *Component) { c.selected = comp }

// CountByType tallies components by type.
func (c *Circuit) CountByType() map[string]int {
	counts := map[string]int{}
	for _, comp := range c.components {
		counts[comp.Type]++
	}
	return counts
}

// ============================================================================
// MUTATION
// ============================================================================

// AddComponent places a new component of the given type and returns it.
// IDs follow the "<type>_<n>" contract with a per-circuit monotonic
// counter, so deleting a component never lets its id be reissued. IDs
// injected by UpdateFromData may occupy a slot; the counter skips past
// collisions.
func (c *Circuit) AddComponent(typ string, pos Point) *Component {
	t := strings.ToLower(typ)
	var id string
	for {
		id = fmt.Sprintf("%s_%d", t, c.seq)
		c.seq++
		if _, exists := c.Component(id); !exists {
			break
		}
	}
	comp := NewComponent(id, t, pos, nil, nil)
	c.components = append(c.components, comp)
	return comp
}

// RemoveComponent deletes a component and every connection touching any of
// its pins. Removing the selected component clears the selection. Unknown
// ids are a no-op.
func (c *Circuit) RemoveComponent(id string) {
	idx := slices.IndexFunc(c.components, func(comp *Component) bool { return comp.ID == id })
	if idx < 0 {
		return
	}
	comp := c.components[idx]

	pinIDs := make(map[string]bool, len(comp.Pins))
	for _, pin := range comp.Pins {
		pinIDs[pin.ID] = true
		for _, conn := range slices.Clone(c.byPin[pin.ID]) {
			c.RemoveConnection(conn.ID)
		}
	}
	// Dangling wires naming this component's pins by id are swept too.
	// Matching is by exact pin id, never by id prefix: "a" and "a_b" are
	// distinct components whose pin ids merely share a prefix.
	c.connections = slices.DeleteFunc(c.connections, func(conn *Connection) bool {
		if pinIDs[conn.Pin1] || pinIDs[conn.Pin2] {
			c.unindex(conn)
			return true
		}
		return false
	})

	c.components = slices.Delete(c.components, idx, idx+1)
	if c.selected == comp {
		c.selected = nil
	}
}

// AddConnection wires two pins together and returns the new connection, or
// nil when the unordered pair is already wired (idempotence) or the pins
// are the same pin. Endpoints that do not resolve to a live pin are
// tolerated: the connection is kept in the list but stays out of the
// adjacency index, so it never carries signal.
func (c *Circuit) AddConnection(pin1, pin2 string) *Connection {
	if pin1 == pin2 {
		return nil
	}
	for _, conn := range c.connections {
		if conn.Joins(pin1, pin2) {
			return nil
		}
	}
	conn := newConnection(pin1, pin2)
	c.connections = append(c.connections, conn)
	if _, ok := c.Pin(pin1); ok {
		c.byPin[pin1] = append(c.byPin[pin1], conn)
	}
	if _, ok := c.Pin(pin2); ok {
		c.byPin[pin2] = append(c.byPin[pin2], conn)
	}
	return conn
}

// RemoveConnection deletes a connection by id. Unknown ids are a no-op.
func (c *Circuit) RemoveConnection(id string) {
	idx := slices.IndexFunc(c.connections, func(conn *Connection) bool { return conn.ID == id })
	if idx < 0 {
		return
	}
	c.unindex(c.connections[idx])
	c.connections = slices.Delete(c.connections, idx, idx+1)
}

func (c *Circuit) unindex(conn *Connection) {
	for _, pinID := range []string{conn.Pin1, conn.Pin2} {
		rest := slices.DeleteFunc(c.byPin[pinID], func(x *Connection) bool { return x == conn })
		if len(rest) == 0 {
			delete(c.byPin, pinID)
		} else {
			c.byPin[pinID] = rest
		}
	}
}

// Clear removes every component and connection and resets the selection and
// the last simulation snapshot. The id counter is not reset; ids stay
// unique across a clear.
func (c *Circuit) Clear() {
	c.components = nil
	c.connections = nil
	c.byPin = map[string][]*Connection{}
	c.selected = nil
	c.simState = SimulationState{Components: map[string]ComponentState{}}
}

// ============================================================================
// VERIFICATION
// ============================================================================

// Verify runs structural checks over the design and returns human-readable
// issues: components with no or partial wiring, a circuit with no connected
// power source or ground, and a missing board. An empty circuit has nothing
// to verify; an empty slice means nothing to report.
func (c *Circuit) Verify() []string {
	var issues []string
	if len(c.components) == 0 {
		return issues
	}

	hasBoard := false
	for _, comp := range c.components {
		if comp.Type == TypeArduinoUno {
			hasBoard = true
			break
		}
	}
	if !hasBoard {
		issues = append(issues, "no arduinouno board in the circuit")
	}

	for _, comp := range c.components {
		if comp.Type == TypeArduinoUno {
			continue
		}
		var unwired []string
		for _, name := range comp.PinNames() {
			if len(c.byPin[comp.Pins[name].ID]) == 0 {
				unwired = append(unwired, name)
			}
		}
		switch {
		case len(comp.Pins) > 0 && len(unwired) == len(comp.Pins):
			issues = append(issues, fmt.Sprintf("component %s (%s) has no connections", comp.ID, comp.Type))
		case len(unwired) > 0:
			issues = append(issues, fmt.Sprintf("component %s (%s) has unconnected pins: %s", comp.ID, comp.Type, strings.Join(unwired, ", ")))
		}
	}

	// Power and ground are circuit-level: some wired power pin and some
	// wired ground pin must exist, on any component including the board.
	hasPower, hasGround := false, false
	for _, comp := range c.components {
		for _, pin := range comp.Pins {
			if len(c.byPin[pin.ID]) == 0 {
				continue
			}
			switch pin.Type {
			case PinPower:
				hasPower = true
			case PinGround:
				hasGround = true
			}
		}
	}
	if !hasPower {
		issues = append(issues, "no connected power source")
	}
	if !hasGround {
		issues = append(issues, "no connected ground")
	}
	return issues
}
