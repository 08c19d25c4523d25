package circuit

import "github.com/google/uuid"

// DefaultWireColor is the display color for wires that nothing overrides.
const DefaultWireColor = "#0000ff"

// Connection is an undirected wire between two pins, referenced by pin id.
// Path and Color are display-only; they never influence simulation.
type Connection struct {
	ID    string
	Pin1  string
	Pin2  string
	Path  []Point
	Color string
}

func newConnection(pin1, pin2 string) *Connection {
	return &Connection{
		ID:    uuid.NewString(),
		Pin1:  pin1,
		Pin2:  pin2,
		Color: DefaultWireColor,
	}
}

// Joins reports whether the connection links the unordered pin pair (a, b).
func (c *Connection) Joins(a, b string) bool {
	return (c.Pin1 == a && c.Pin2 == b) || (c.Pin1 == b && c.Pin2 == a)
}

// Touches reports whether either endpoint is pinID.
func (c *Connection) Touches(pinID string) bool {
	return c.Pin1 == pinID || c.Pin2 == pinID
}

// Other returns the endpoint opposite pinID, or "" when pinID is not an
// endpoint of this connection.
func (c *Connection) Other(pinID string) string {
	switch pinID {
	case c.Pin1:
		return c.Pin2
	case c.Pin2:
		return c.Pin1
	}
	return ""
}
