package circuit

// ============================================================================
// PERSISTED FORMAT
// ============================================================================

// Data is the persisted design format: a flat component list where each
// component declares its Arduino-facing wiring by board pin label. It is
// both what files and the design store hold and what the AI collaborator
// produces.
type Data struct {
	Components []ComponentData `json:"components" bson:"components"`
}

// ComponentData is one component in the persisted format.
type ComponentData struct {
	ID          string         `json:"id" bson:"id"`
	Type        string         `json:"type" bson:"type"`
	Properties  map[string]any `json:"properties,omitempty" bson:"properties,omitempty"`
	Connections map[string]any `json:"connections,omitempty" bson:"connections,omitempty"`
}

// Data exports the circuit into the persisted format.
//
// The format is deliberately lossy: only connections whose far end is an
// Arduino pin are recorded, keyed by this component's pin name with the
// board pin's name as the value. Component-to-component wires exist in the
// live circuit and in simulation but do not survive a save/load round trip.
func (c *Circuit) Data() Data {
	d := Data{Components: make([]ComponentData, 0, len(c.components))}
	for _, comp := range c.components {
		cd := ComponentData{
			ID:         comp.ID,
			Type:       comp.Type,
			Properties: map[string]any{},
		}
		for k, v := range comp.Properties {
			cd.Properties[k] = v
		}

		conns := map[string]any{}
		for _, name := range comp.PinNames() {
			pin := comp.Pins[name]
			for _, conn := range c.byPin[pin.ID] {
				otherComp, otherPin := c.findPin(conn.Other(pin.ID))
				if otherComp != nil && otherComp.Type == TypeArduinoUno {
					conns[name] = otherPin.Name
				}
			}
		}
		if len(conns) > 0 {
			cd.Connections = conns
		}
		d.Components = append(d.Components, cd)
	}
	return d
}
