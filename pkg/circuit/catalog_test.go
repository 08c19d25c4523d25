package circuit

import (
	"fmt"
	"testing"
)

func TestNewComponentPinSets(t *testing.T) {
	tests := []struct {
		typ      string
		wantPins map[string]PinType
	}{
		{
			typ: "led",
			wantPins: map[string]PinType{
				"anode":   PinTerminal,
				"cathode": PinTerminal,
			},
		},
		{
			typ: "button",
			wantPins: map[string]PinType{
				"pin1": PinTerminal,
				"pin2": PinTerminal,
			},
		},
		{
			typ: "resistor",
			wantPins: map[string]PinType{
				"pin1": PinTerminal,
				"pin2": PinTerminal,
			},
		},
		{
			typ: "potentiometer",
			wantPins: map[string]PinType{
				"wiper": PinTerminal,
				"pin1":  PinTerminal,
				"pin2":  PinTerminal,
			},
		},
		{
			typ: "servo",
			wantPins: map[string]PinType{
				"signal": PinTerminal,
				"power":  PinPower,
				"ground": PinGround,
			},
		},
		{
			typ: "motor",
			wantPins: map[string]PinType{
				"plus":  PinTerminal,
				"minus": PinTerminal,
			},
		},
		{
			typ: "motor_driver",
			wantPins: map[string]PinType{
				"in1": PinTerminal, "in2": PinTerminal,
				"in3": PinTerminal, "in4": PinTerminal,
				"ena": PinTerminal, "enb": PinTerminal,
				"out1": PinTerminal, "out2": PinTerminal,
				"out3": PinTerminal, "out4": PinTerminal,
				"vcc": PinPower, "gnd": PinGround,
			},
		},
		{
			typ: "ultrasonic",
			wantPins: map[string]PinType{
				"trig": PinTerminal,
				"echo": PinTerminal,
				"vcc":  PinPower,
				"gnd":  PinGround,
			},
		},
		{
			typ: "bluetooth",
			wantPins: map[string]PinType{
				"tx":  PinTerminal,
				"rx":  PinTerminal,
				"vcc": PinPower,
				"gnd": PinGround,
			},
		},
		{
			typ: "lcd",
			wantPins: map[string]PinType{
				"rs": PinTerminal, "en": PinTerminal,
				"d4": PinTerminal, "d5": PinTerminal,
				"d6": PinTerminal, "d7": PinTerminal,
				"vcc": PinPower, "gnd": PinGround,
			},
		},
		{
			typ: "buzzer",
			wantPins: map[string]PinType{
				"plus":  PinTerminal,
				"minus": PinTerminal,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			c := NewComponent("c1", tt.typ, Point{0, 0}, nil, nil)
			if got := len(c.Pins); got != len(tt.wantPins) {
				t.Errorf("pin count = %d, want %d", got, len(tt.wantPins))
			}
			for name, typ := range tt.wantPins {
				pin, ok := c.Pins[name]
				if !ok {
					t.Errorf("missing pin %q", name)
					continue
				}
				if pin.Type != typ {
					t.Errorf("pin %q type = %s, want %s", name, pin.Type, typ)
				}
				if want := PinID("c1", name); pin.ID != want {
					t.Errorf("pin %q id = %q, want %q", name, pin.ID, want)
				}
			}
		})
	}
}

func TestNewComponentArduino(t *testing.T) {
	c := NewComponent("uno", "ArduinoUno", Point{0, 0}, nil, nil)

	if c.Type != "arduinouno" {
		t.Errorf("type = %q, want lowercased arduinouno", c.Type)
	}
	if len(c.Pins) != 25 {
		t.Errorf("pin count = %d, want 25", len(c.Pins))
	}
	for i := 0; i <= 13; i++ {
		name := fmt.Sprintf("D%d", i)
		pin, ok := c.Pins[name]
		if !ok {
			t.Fatalf("missing digital pin %s", name)
		}
		if pin.Type != PinDigital {
			t.Errorf("%s type = %s, want digital", name, pin.Type)
		}
	}
	for _, name := range []string{"5V", "3.3V", "VIN"} {
		if c.Pins[name] == nil || c.Pins[name].Type != PinPower {
			t.Errorf("%s should be a power pin", name)
		}
	}
	for _, name := range []string{"GND", "GND2"} {
		if c.Pins[name] == nil || c.Pins[name].Type != PinGround {
			t.Errorf("%s should be a ground pin", name)
		}
	}
	for _, name := range []string{"A0", "A1", "A2", "A3", "A4", "A5"} {
		if c.Pins[name] == nil || c.Pins[name].Type != PinAnalog {
			t.Errorf("%s should be an analog pin", name)
		}
	}
	if c.Width != 100 || c.Height != 160 {
		t.Errorf("size = %dx%d, want 100x160", c.Width, c.Height)
	}
}

func TestNewComponentUnknownType(t *testing.T) {
	c := NewComponent("x", "flux_capacitor", Point{10, 10}, nil, nil)

	if len(c.Pins) != 0 {
		t.Errorf("unknown type pin count = %d, want 0", len(c.Pins))
	}
	if c.Width != 40 || c.Height != 40 {
		t.Errorf("size = %dx%d, want generic 40x40", c.Width, c.Height)
	}
	if c.Color != (RGB{150, 150, 150}) {
		t.Errorf("color = %v, want generic gray", c.Color)
	}
}

func TestCoerceDeclaredConnections(t *testing.T) {
	tests := []struct {
		name     string
		declared map[string]any
		want     map[string]string
	}{
		{
			name:     "Strings",
			declared: map[string]any{"anode": "13", "cathode": "GND"},
			want:     map[string]string{"anode": "13", "cathode": "GND"},
		},
		{
			name:     "JSONNumbers",
			declared: map[string]any{"anode": float64(13)},
			want:     map[string]string{"anode": "13"},
		},
		{
			name:     "MixedTypes",
			declared: map[string]any{"pin1": float64(2), "pin2": "GND"},
			want:     map[string]string{"pin1": "2", "pin2": "GND"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComponent("c", "led", Point{}, nil, tt.declared)
			for k, want := range tt.want {
				if got := c.Declared[k]; got != want {
					t.Errorf("declared[%q] = %q, want %q", k, got, want)
				}
			}
		})
	}
}

func TestTypeColorHex(t *testing.T) {
	if got := TypeColor("led").Hex(); got != "#ff6464" {
		t.Errorf("led hex = %q, want #ff6464", got)
	}
	if got := TypeColor("nonsense").Hex(); got != "#969696" {
		t.Errorf("unknown hex = %q, want #969696", got)
	}
}
