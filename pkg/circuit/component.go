package circuit

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DefaultPinThreshold is the hit-test radius, in pixels, used by PinAt when
// the caller passes no explicit threshold.
const DefaultPinThreshold = 10

// Component is one placed part: an Arduino, an LED, a resistor. Its pins
// come from the catalog for its type; unknown types get a generic gray
// footprint with no pins and are otherwise fully functional.
type Component struct {
	ID       string
	Type     string
	Position Point
	Width    int
	Height   int
	Color    RGB

	// Properties are free-form display/behavior attributes ("color": "red",
	// "pressed": true). The simulator reads a few of them; everything else
	// is carried through serialization untouched.
	Properties map[string]any

	// Declared holds the component's declared wiring from the persisted
	// format: pin name → Arduino pin label. Values are coerced to strings
	// on construction. Netlist derivation turns these into Connections.
	Declared map[string]string

	// Pins indexes this component's pins by name.
	Pins map[string]*Pin
}

// NewComponent builds a component of the given type at the given position.
// The type is lowercased before the catalog lookup; an empty id gets a
// random uuid. Unknown types are not an error: the component simply has no
// pins. Declared connection values of any JSON type are coerced to strings
// (numbers without a fractional part coerce like integers, so 13.0 → "13").
func NewComponent(id, typ string, pos Point, props map[string]any, declared map[string]any) *Component {
	if id == "" {
		id = uuid.NewString()
	}
	t := strings.ToLower(typ)

	size := TypeSize(t)
	c := &Component{
		ID:         id,
		Type:       t,
		Position:   pos,
		Width:      size.W,
		Height:     size.H,
		Color:      TypeColor(t),
		Properties: map[string]any{},
		Declared:   map[string]string{},
		Pins:       map[string]*Pin{},
	}

	for k, v := range props {
		c.Properties[k] = v
	}
	for k, v := range declared {
		c.Declared[k] = coerceString(v)
	}

	for name, spec := range pinLayouts[t] {
		c.Pins[name] = newPin(id, name, spec.typ, spec.offset)
	}
	return c
}

// coerceString renders a declared-connection value the way the persisted
// format expects: JSON numbers that are whole render without a decimal
// point ("13", not "13.000000").
func coerceString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// MoveTo repositions the component. Pins hold offsets only, so nothing else
// needs updating.
func (c *Component) MoveTo(pos Point) { c.Position = pos }

// ContainsPoint reports whether p falls inside the component's footprint,
// edges inclusive.
func (c *Component) ContainsPoint(p Point) bool {
	return p.X >= c.Position.X && p.X <= c.Position.X+c.Width &&
		p.Y >= c.Position.Y && p.Y <= c.Position.Y+c.Height
}

// PinAt returns the first pin (in name order) whose position is within
// threshold of p on both axes independently, or nil. A threshold <= 0 uses
// DefaultPinThreshold. The square hit area makes pins easier to grab than a
// euclidean radius would.
func (c *Component) PinAt(p Point, threshold int) *Pin {
	if threshold <= 0 {
		threshold = DefaultPinThreshold
	}
	for _, name := range c.PinNames() {
		pin := c.Pins[name]
		pos := pin.Position(c.Position)
		if abs(pos.X-p.X) <= threshold && abs(pos.Y-p.Y) <= threshold {
			return pin
		}
	}
	return nil
}

// PinNames returns the component's pin names, sorted.
func (c *Component) PinNames() []string {
	names := make([]string, 0, len(c.Pins))
	for name := range c.Pins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// PinPosition returns the absolute position of the named pin.
func (c *Component) PinPosition(name string) (Point, bool) {
	pin, ok := c.Pins[name]
	if !ok {
		return Point{}, false
	}
	return pin.Position(c.Position), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
