package circuit

import (
	"testing"
)

// boardPinFor returns the board pin name a component pin ended up wired to,
// or "".
func boardPinFor(t *testing.T, c *Circuit, comp *Component, pinName string) string {
	t.Helper()
	pin, ok := comp.Pins[pinName]
	if !ok {
		t.Fatalf("component %s has no pin %q", comp.ID, pinName)
	}
	for _, conn := range c.PinConnections(pin.ID) {
		other, otherPin := c.findPin(conn.Other(pin.ID))
		if other != nil && other.Type == TypeArduinoUno {
			return otherPin.Name
		}
	}
	return ""
}

func TestUpdateFromDataEmpty(t *testing.T) {
	c := New()
	c.UpdateFromData(Data{})

	if got := len(c.Components()); got != 1 {
		t.Fatalf("components = %d, want exactly the synthesized board", got)
	}
	board := c.Components()[0]
	if board.ID != DefaultBoardID || board.Type != TypeArduinoUno {
		t.Errorf("board = %s (%s), want %s (arduinouno)", board.ID, board.Type, DefaultBoardID)
	}
	if got := len(c.Connections()); got != 0 {
		t.Errorf("connections = %d, want 0", got)
	}
}

func TestUpdateFromDataLabels(t *testing.T) {
	tests := []struct {
		name      string
		declared  map[string]any
		pin       string
		wantBoard string
	}{
		{"BareDigits", map[string]any{"anode": "13"}, "anode", "D13"},
		{"DPrefix", map[string]any{"anode": "D7"}, "anode", "D7"},
		{"Analog", map[string]any{"anode": "A3"}, "anode", "A3"},
		{"Power5V", map[string]any{"anode": "5V"}, "anode", "5V"},
		{"Power33V", map[string]any{"anode": "3.3V"}, "anode", "3.3V"},
		{"PowerVIN", map[string]any{"anode": "VIN"}, "anode", "VIN"},
		{"Ground", map[string]any{"cathode": "GND"}, "cathode", "GND"},
		{"JSONNumber", map[string]any{"anode": float64(9)}, "anode", "D9"},
		{"UnknownLabel", map[string]any{"anode": "D99"}, "anode", ""},
		{"Garbage", map[string]any{"anode": "???"}, "anode", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.UpdateFromData(Data{Components: []ComponentData{
				{ID: "led1", Type: "led", Connections: tt.declared},
			}})

			led, ok := c.Component("led1")
			if !ok {
				t.Fatal("led1 not materialized")
			}
			if got := boardPinFor(t, c, led, tt.pin); got != tt.wantBoard {
				t.Errorf("routed to %q, want %q", got, tt.wantBoard)
			}
		})
	}
}

func TestUpdateFromDataGNDFallback(t *testing.T) {
	c := New()
	c.UpdateFromData(Data{Components: []ComponentData{
		{ID: "led1", Type: "led", Connections: map[string]any{"cathode": "GND"}},
		{ID: "led2", Type: "led", Connections: map[string]any{"cathode": "GND"}},
		{ID: "led3", Type: "led", Connections: map[string]any{"cathode": "GND"}},
	}})

	led1, _ := c.Component("led1")
	led2, _ := c.Component("led2")
	led3, _ := c.Component("led3")

	if got := boardPinFor(t, c, led1, "cathode"); got != "GND" {
		t.Errorf("first ground = %q, want primary GND", got)
	}
	if got := boardPinFor(t, c, led2, "cathode"); got != "GND2" {
		t.Errorf("second ground = %q, want GND2 fallback", got)
	}
	// Third grounded component shares GND2; the wire is a duplicate of
	// nothing, so it lands there too.
	if got := boardPinFor(t, c, led3, "cathode"); got != "GND2" {
		t.Errorf("third ground = %q, want GND2", got)
	}
}

func TestUpdateFromDataGridPlacement(t *testing.T) {
	c := New()
	c.UpdateFromData(Data{Components: []ComponentData{
		{ID: "a", Type: "led"},
		{ID: "b", Type: "led"},
		{ID: "c", Type: "led"},
		{ID: "d", Type: "led"},
	}})

	want := []Point{{50, 50}, {150, 50}, {250, 50}, {50, 130}}
	for i, id := range []string{"a", "b", "c", "d"} {
		comp, _ := c.Component(id)
		if comp.Position != want[i] {
			t.Errorf("%s at %v, want %v", id, comp.Position, want[i])
		}
	}
}

func TestUpdateFromDataKeepsExistingBoard(t *testing.T) {
	c := New()
	c.UpdateFromData(Data{Components: []ComponentData{
		{ID: "myuno", Type: "ArduinoUno"},
		{ID: "led1", Type: "led", Connections: map[string]any{"anode": "13"}},
	}})

	if _, ok := c.Component(DefaultBoardID); ok {
		t.Error("synthesized a board even though the design has one")
	}
	boards := 0
	for _, comp := range c.Components() {
		if comp.Type == TypeArduinoUno {
			boards++
		}
	}
	if boards != 1 {
		t.Fatalf("boards = %d, want 1", boards)
	}

	led, _ := c.Component("led1")
	if got := boardPinFor(t, c, led, "anode"); got != "D13" {
		t.Errorf("anode routed to %q, want D13", got)
	}
}

func TestUpdateFromDataMalformed(t *testing.T) {
	tests := []struct {
		name string
		data Data
	}{
		{
			name: "MissingIDAndType",
			data: Data{Components: []ComponentData{{}}},
		},
		{
			name: "UnknownType",
			data: Data{Components: []ComponentData{
				{ID: "x", Type: "warp_core", Connections: map[string]any{"plasma": "13"}},
			}},
		},
		{
			name: "DeclaredPinDoesNotExist",
			data: Data{Components: []ComponentData{
				{ID: "led1", Type: "led", Connections: map[string]any{"emitter": "13"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.UpdateFromData(tt.data) // must not panic
			if got := len(c.Connections()); got != 0 {
				t.Errorf("connections = %d, want 0 (everything skipped)", got)
			}
		})
	}
}

func TestUpdateFromDataReplacesEverything(t *testing.T) {
	c := New()
	old := c.AddComponent("buzzer", Point{})
	c.Select(old)

	c.UpdateFromData(Data{Components: []ComponentData{{ID: "led1", Type: "led"}}})

	if _, ok := c.Component(old.ID); ok {
		t.Error("stale component survived UpdateFromData")
	}
	if c.Selected() != nil {
		t.Error("selection survived UpdateFromData")
	}
}
