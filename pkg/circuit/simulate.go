package circuit

// ============================================================================
// SIMULATION
// ============================================================================

// propagationPasses is the fixed relaxation depth per tick. Signal travels
// at most this many wire hops from a source in one tick; longer chains take
// multiple ticks to settle. The bound is part of the observable contract.
const propagationPasses = 5

// SimulationState is the full snapshot produced by a simulation tick. Each
// tick replaces the previous snapshot wholesale; there are no incremental
// updates.
type SimulationState struct {
	Components map[string]ComponentState `json:"components" bson:"components"`
}

// ComponentState is one component's slice of the snapshot.
type ComponentState struct {
	Type       string              `json:"type" bson:"type"`
	Properties map[string]any      `json:"properties" bson:"properties"`
	PinStates  map[string]PinState `json:"pin_states" bson:"pin_states"`
}

// SimulationState returns the snapshot from the most recent tick. Before
// the first tick it is empty.
func (c *Circuit) SimulationState() SimulationState { return c.simState }

// SimulateStep runs one simulation tick and returns the new snapshot.
//
// A tick is a full recompute: every pin resets to UNKNOWN, power and ground
// pins seed HIGH and LOW, then propagationPasses relaxation passes copy
// known states across wires. Two known, differing states meeting on a wire
// drive both ends to CONFLICT, which then spreads like any known state.
// After propagation, component behavior (LED lit, motor running, pressed
// buttons bridging their legs) is derived from the settled pin states.
func (c *Circuit) SimulateStep() SimulationState {
	pins := c.pinIndex()

	for _, pin := range pins {
		pin.State = StateUnknown
	}
	for _, pin := range pins {
		switch pin.Type {
		case PinPower:
			pin.State = StateHigh
		case PinGround:
			pin.State = StateLow
		}
	}

	for range propagationPasses {
		for _, conn := range c.connections {
			c.propagate(pins, conn)
		}
	}

	for _, comp := range c.components {
		applyBehavior(comp)
	}

	c.simState = c.snapshot()
	return c.simState
}

// pinIndex builds a pin-id lookup for the tick. Rebuilt every tick so the
// simulator never sees pins of removed components.
func (c *Circuit) pinIndex() map[string]*Pin {
	pins := map[string]*Pin{}
	for _, comp := range c.components {
		for _, pin := range comp.Pins {
			pins[pin.ID] = pin
		}
	}
	return pins
}

func (c *Circuit) propagate(pins map[string]*Pin, conn *Connection) {
	p1, ok1 := pins[conn.Pin1]
	p2, ok2 := pins[conn.Pin2]
	if !ok1 || !ok2 {
		return // dangling wire, carries nothing
	}
	switch {
	case p1.State.Known() && !p2.State.Known():
		p2.State = p1.State
	case p2.State.Known() && !p1.State.Known():
		p1.State = p2.State
	case p1.State.Known() && p2.State.Known() && p1.State != p2.State:
		p1.State = StateConflict
		p2.State = StateConflict
	}
}

// applyBehavior derives component-level state after propagation has
// settled. Behavior only ever writes Properties and, for pressed buttons,
// bridges the button's own legs one hop; it never re-runs propagation.
func applyBehavior(comp *Component) {
	switch comp.Type {
	case TypeLED:
		anode, cathode := comp.Pins["anode"], comp.Pins["cathode"]
		lit := anode != nil && cathode != nil &&
			anode.State == StateHigh && cathode.State == StateLow
		comp.Properties["state"] = map[bool]string{true: "on", false: "off"}[lit]

	case TypeButton:
		if !boolProp(comp.Properties, "pressed") {
			break
		}
		// A pressed button closes the switch: either leg's known state
		// copies onto the other. This runs once, after the main passes, so
		// it bridges a single hop only; wires downstream of the far leg
		// don't see the level within the same tick.
		pin1, pin2 := comp.Pins["pin1"], comp.Pins["pin2"]
		if pin1 == nil || pin2 == nil {
			break
		}
		switch {
		case pin1.State.Known() && !pin2.State.Known():
			pin2.State = pin1.State
		case pin2.State.Known() && !pin1.State.Known():
			pin1.State = pin2.State
		}

	case TypeMotor:
		plus, minus := comp.Pins["plus"], comp.Pins["minus"]
		running := plus != nil && minus != nil &&
			plus.State == StateHigh && minus.State == StateLow
		comp.Properties["state"] = map[bool]string{true: "running", false: "stopped"}[running]
	}
}

func (c *Circuit) snapshot() SimulationState {
	state := SimulationState{Components: map[string]ComponentState{}}
	for _, comp := range c.components {
		cs := ComponentState{
			Type:       comp.Type,
			Properties: map[string]any{},
			PinStates:  map[string]PinState{},
		}
		for k, v := range comp.Properties {
			cs.Properties[k] = v
		}
		for name, pin := range comp.Pins {
			cs.PinStates[name] = pin.State
		}
		state.Components[comp.ID] = cs
	}
	return state
}

func boolProp(props map[string]any, key string) bool {
	switch v := props[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case float64:
		return v != 0
	}
	return false
}
