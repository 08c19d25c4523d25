package circuit

import (
	"testing"
)

func TestSimulateSeedsPowerAndGround(t *testing.T) {
	c := New()
	uno := c.AddComponent("arduinouno", Point{})

	state := c.SimulateStep()

	pins := state.Components[uno.ID].PinStates
	if pins["5V"] != StateHigh || pins["3.3V"] != StateHigh || pins["VIN"] != StateHigh {
		t.Errorf("power pins = %v/%v/%v, want all HIGH", pins["5V"], pins["3.3V"], pins["VIN"])
	}
	if pins["GND"] != StateLow || pins["GND2"] != StateLow {
		t.Errorf("ground pins = %v/%v, want both LOW", pins["GND"], pins["GND2"])
	}
	if pins["D13"] != StateUnknown {
		t.Errorf("undriven D13 = %v, want UNKNOWN", pins["D13"])
	}
}

func TestSimulatePowerToGroundConflict(t *testing.T) {
	c := New()
	uno := c.AddComponent("arduinouno", Point{})
	c.AddConnection(uno.Pins["5V"].ID, uno.Pins["GND"].ID)

	c.SimulateStep()

	if uno.Pins["5V"].State != StateConflict {
		t.Errorf("5V = %v, want CONFLICT", uno.Pins["5V"].State)
	}
	if uno.Pins["GND"].State != StateConflict {
		t.Errorf("GND = %v, want CONFLICT", uno.Pins["GND"].State)
	}
}

func TestSimulateLED(t *testing.T) {
	c := New()
	uno := c.AddComponent("arduinouno", Point{})
	led := c.AddComponent("led", Point{})

	hi := c.AddConnection(led.Pins["anode"].ID, uno.Pins["5V"].ID)
	c.AddConnection(led.Pins["cathode"].ID, uno.Pins["GND"].ID)

	c.SimulateStep()
	if got := led.Properties["state"]; got != "on" {
		t.Fatalf("state = %v, want on", got)
	}

	// Cutting the anode wire turns it off on the next tick.
	c.RemoveConnection(hi.ID)
	c.SimulateStep()
	if got := led.Properties["state"]; got != "off" {
		t.Errorf("state after disconnect = %v, want off", got)
	}
}

func TestSimulateLEDThroughJunction(t *testing.T) {
	// Signal travels only along wires; a resistor leg used as a junction
	// (two wires meeting on one pin) relays it, but the component body
	// does not conduct between its own legs.
	c := New()
	uno := c.AddComponent("arduinouno", Point{})
	led := c.AddComponent("led", Point{})
	res := c.AddComponent("resistor", Point{})

	c.AddConnection(uno.Pins["5V"].ID, res.Pins["pin1"].ID)
	c.AddConnection(res.Pins["pin1"].ID, led.Pins["anode"].ID)
	c.AddConnection(led.Pins["cathode"].ID, uno.Pins["GND"].ID)

	c.SimulateStep()
	if got := led.Properties["state"]; got != "on" {
		t.Errorf("state = %v, want on", got)
	}
	if res.Pins["pin1"].State != StateHigh {
		t.Errorf("junction pin = %v, want HIGH", res.Pins["pin1"].State)
	}
	if res.Pins["pin2"].State != StateUnknown {
		t.Errorf("unwired leg = %v, want UNKNOWN (no internal conduction)", res.Pins["pin2"].State)
	}
}

func TestSimulateMotor(t *testing.T) {
	c := New()
	uno := c.AddComponent("arduinouno", Point{})
	motor := c.AddComponent("motor", Point{})

	c.AddConnection(motor.Pins["plus"].ID, uno.Pins["5V"].ID)
	c.SimulateStep()
	if got := motor.Properties["state"]; got != "stopped" {
		t.Fatalf("half-wired motor state = %v, want stopped", got)
	}

	c.AddConnection(motor.Pins["minus"].ID, uno.Pins["GND"].ID)
	c.SimulateStep()
	if got := motor.Properties["state"]; got != "running" {
		t.Errorf("state = %v, want running", got)
	}
}

func TestSimulateButtonBridge(t *testing.T) {
	c := New()
	uno := c.AddComponent("arduinouno", Point{})
	btn := c.AddComponent("button", Point{})

	c.AddConnection(btn.Pins["pin1"].ID, uno.Pins["5V"].ID)

	// Unpressed: the switch is open, pin2 floats.
	c.SimulateStep()
	if got := btn.Pins["pin2"].State; got != StateUnknown {
		t.Fatalf("unpressed pin2 = %v, want UNKNOWN", got)
	}

	btn.Properties["pressed"] = true
	c.SimulateStep()
	if got := btn.Pins["pin2"].State; got != StateHigh {
		t.Errorf("pressed pin2 = %v, want HIGH", got)
	}

	btn.Properties["pressed"] = false
	c.SimulateStep()
	if got := btn.Pins["pin2"].State; got != StateUnknown {
		t.Errorf("released pin2 = %v, want UNKNOWN (full recompute per tick)", got)
	}
}

func TestSimulatePropagationBound(t *testing.T) {
	// A junction chain wired far-end first, so each relaxation pass only
	// advances the signal one hop. With 5 passes, hop 5 is reached and hop
	// 7 is not; ticks recompute from scratch, so later ticks don't gain
	// ground either.
	c := New()
	uno := c.AddComponent("arduinouno", Point{})

	hops := make([]*Pin, 7)
	for i := range hops {
		r := c.AddComponent("resistor", Point{})
		hops[i] = r.Pins["pin1"]
	}
	for i := len(hops) - 1; i >= 1; i-- {
		c.AddConnection(hops[i-1].ID, hops[i].ID)
	}
	c.AddConnection(uno.Pins["5V"].ID, hops[0].ID)

	c.SimulateStep()
	if got := hops[4].State; got != StateHigh {
		t.Errorf("hop 5 after one tick = %v, want HIGH", got)
	}
	if got := hops[6].State; got != StateUnknown {
		t.Errorf("hop 7 after one tick = %v, want UNKNOWN (bounded passes)", got)
	}

	c.SimulateStep()
	if got := hops[6].State; got != StateUnknown {
		t.Errorf("hop 7 after two ticks = %v, want UNKNOWN still", got)
	}
}

func TestSimulateConflictSpreads(t *testing.T) {
	// 5V—GND short, with a resistor hanging off the shorted net. The
	// conflict reaches the resistor on a later pass.
	c := New()
	uno := c.AddComponent("arduinouno", Point{})
	res := c.AddComponent("resistor", Point{})

	c.AddConnection(uno.Pins["5V"].ID, uno.Pins["GND"].ID)
	c.AddConnection(uno.Pins["5V"].ID, res.Pins["pin1"].ID)
	c.AddConnection(res.Pins["pin1"].ID, res.Pins["pin2"].ID)

	c.SimulateStep()
	if got := res.Pins["pin2"].State; got != StateConflict {
		t.Errorf("pin2 = %v, want CONFLICT to propagate", got)
	}
}

func TestSimulateSnapshotIsReplaced(t *testing.T) {
	c := New()
	led := c.AddComponent("led", Point{})

	first := c.SimulateStep()
	if _, ok := first.Components[led.ID]; !ok {
		t.Fatal("snapshot missing led")
	}

	c.RemoveComponent(led.ID)
	second := c.SimulateStep()
	if _, ok := second.Components[led.ID]; ok {
		t.Error("stale component survived in the new snapshot")
	}
	if got := c.SimulationState(); len(got.Components) != 0 {
		t.Errorf("stored snapshot has %d components, want 0", len(got.Components))
	}
}

func TestSimulateDanglingWireCarriesNothing(t *testing.T) {
	c := New()
	uno := c.AddComponent("arduinouno", Point{})
	c.AddConnection(uno.Pins["5V"].ID, "pin_ghost_in")

	c.SimulateStep()
	if got := uno.Pins["5V"].State; got != StateHigh {
		t.Errorf("5V = %v, want HIGH untouched by dangling wire", got)
	}
}
