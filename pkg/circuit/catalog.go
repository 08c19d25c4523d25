package circuit

import (
	"fmt"
	"slices"
)

// ============================================================================
// COMPONENT CATALOG
// ============================================================================
//
// The catalog is the single source of truth for what each component type
// looks like: which pins it has, where they sit relative to the component
// origin, its footprint, and its display color. Types not in the catalog
// are still usable; they get a generic footprint and no pins.

// Known component types. Type strings are always lowercase; NewComponent
// normalizes its input.
const (
	TypeArduinoUno    = "arduinouno"
	TypeLED           = "led"
	TypeButton        = "button"
	TypeResistor      = "resistor"
	TypePotentiometer = "potentiometer"
	TypeServo         = "servo"
	TypeMotor         = "motor"
	TypeMotorDriver   = "motor_driver"
	TypeUltrasonic    = "ultrasonic"
	TypeBluetooth     = "bluetooth"
	TypeLCD           = "lcd"
	TypeBuzzer        = "buzzer"
)

// Size is a component footprint in pixels.
type Size struct {
	W int
	H int
}

// RGB is a display color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

type pinSpec struct {
	typ    PinType
	offset Point
}

var pinLayouts = map[string]map[string]pinSpec{
	TypeArduinoUno: {
		"D0":  {PinDigital, Point{0, 20}},
		"D1":  {PinDigital, Point{0, 30}},
		"D2":  {PinDigital, Point{0, 40}},
		"D3":  {PinDigital, Point{0, 50}},
		"D4":  {PinDigital, Point{0, 60}},
		"D5":  {PinDigital, Point{0, 70}},
		"D6":  {PinDigital, Point{0, 80}},
		"D7":  {PinDigital, Point{0, 90}},
		"D8":  {PinDigital, Point{0, 100}},
		"D9":  {PinDigital, Point{0, 110}},
		"D10": {PinDigital, Point{0, 120}},
		"D11": {PinDigital, Point{0, 130}},
		"D12": {PinDigital, Point{0, 140}},
		"D13": {PinDigital, Point{0, 150}},
		"A0":  {PinAnalog, Point{100, 20}},
		"A1":  {PinAnalog, Point{100, 30}},
		"A2":  {PinAnalog, Point{100, 40}},
		"A3":  {PinAnalog, Point{100, 50}},
		"A4":  {PinAnalog, Point{100, 60}},
		"A5":  {PinAnalog, Point{100, 70}},
		"5V":  {PinPower, Point{100, 90}},
		"3.3V": {PinPower, Point{100, 100}},
		"GND":  {PinGround, Point{100, 110}},
		"GND2": {PinGround, Point{100, 120}},
		"VIN":  {PinPower, Point{100, 130}},
	},
	TypeLED: {
		"anode":   {PinTerminal, Point{15, 0}},
		"cathode": {PinTerminal, Point{15, 30}},
	},
	TypeButton: {
		"pin1": {PinTerminal, Point{0, 20}},
		"pin2": {PinTerminal, Point{40, 20}},
	},
	TypeResistor: {
		"pin1": {PinTerminal, Point{0, 10}},
		"pin2": {PinTerminal, Point{60, 10}},
	},
	TypePotentiometer: {
		"wiper": {PinTerminal, Point{25, 0}},
		"pin1":  {PinTerminal, Point{0, 20}},
		"pin2":  {PinTerminal, Point{50, 20}},
	},
	TypeServo: {
		"signal": {PinTerminal, Point{30, 0}},
		"power":  {PinPower, Point{15, 40}},
		"ground": {PinGround, Point{45, 40}},
	},
	TypeMotor: {
		"plus":  {PinTerminal, Point{0, 25}},
		"minus": {PinTerminal, Point{50, 25}},
	},
	TypeMotorDriver: {
		"in1": {PinTerminal, Point{0, 10}},
		"in2": {PinTerminal, Point{0, 25}},
		"in3": {PinTerminal, Point{0, 40}},
		"in4": {PinTerminal, Point{0, 55}},
		"ena": {PinTerminal, Point{35, 0}},
		"enb": {PinTerminal, Point{55, 0}},
		"out1": {PinTerminal, Point{70, 10}},
		"out2": {PinTerminal, Point{70, 25}},
		"out3": {PinTerminal, Point{70, 40}},
		"out4": {PinTerminal, Point{70, 55}},
		"vcc":  {PinPower, Point{35, 70}},
		"gnd":  {PinGround, Point{55, 70}},
	},
	TypeUltrasonic: {
		"trig": {PinTerminal, Point{10, 0}},
		"echo": {PinTerminal, Point{30, 0}},
		"vcc":  {PinPower, Point{10, 30}},
		"gnd":  {PinGround, Point{30, 30}},
	},
	TypeBluetooth: {
		"tx":  {PinTerminal, Point{0, 10}},
		"rx":  {PinTerminal, Point{0, 25}},
		"vcc": {PinPower, Point{50, 10}},
		"gnd": {PinGround, Point{50, 25}},
	},
	TypeLCD: {
		"rs": {PinTerminal, Point{10, 0}},
		"en": {PinTerminal, Point{25, 0}},
		"d4": {PinTerminal, Point{40, 0}},
		"d5": {PinTerminal, Point{55, 0}},
		"d6": {PinTerminal, Point{70, 0}},
		"d7": {PinTerminal, Point{85, 0}},
		"vcc": {PinPower, Point{10, 40}},
		"gnd": {PinGround, Point{25, 40}},
	},
	TypeBuzzer: {
		"plus":  {PinTerminal, Point{15, 0}},
		"minus": {PinTerminal, Point{15, 30}},
	},
}

var defaultSizes = map[string]Size{
	TypeArduinoUno:    {100, 160},
	TypeLED:           {30, 30},
	TypeButton:        {40, 40},
	TypeResistor:      {60, 20},
	TypePotentiometer: {50, 40},
	TypeServo:         {60, 40},
	TypeMotor:         {50, 50},
	TypeMotorDriver:   {70, 70},
	TypeUltrasonic:    {60, 30},
	TypeBluetooth:     {50, 40},
	TypeLCD:           {80, 40},
	TypeBuzzer:        {30, 30},
}

var defaultColors = map[string]RGB{
	TypeArduinoUno:    {0, 120, 0},
	TypeLED:           {255, 100, 100},
	TypeButton:        {100, 100, 100},
	TypeResistor:      {200, 180, 0},
	TypePotentiometer: {150, 150, 0},
	TypeServo:         {100, 100, 200},
	TypeMotor:         {150, 50, 150},
	TypeMotorDriver:   {50, 150, 150},
	TypeUltrasonic:    {0, 150, 200},
	TypeBluetooth:     {0, 0, 150},
	TypeLCD:           {100, 200, 200},
	TypeBuzzer:        {200, 100, 0},
}

var (
	genericSize  = Size{40, 40}
	genericColor = RGB{150, 150, 150}
)

// CatalogTypes returns all component types with a pin layout, sorted.
func CatalogTypes() []string {
	types := make([]string, 0, len(pinLayouts))
	for t := range pinLayouts {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// TypeSize returns the default footprint for a component type, falling back
// to the generic footprint for unknown types.
func TypeSize(typ string) Size {
	if s, ok := defaultSizes[typ]; ok {
		return s
	}
	return genericSize
}

// TypeColor returns the display color for a component type, falling back to
// gray for unknown types.
func TypeColor(typ string) RGB {
	if c, ok := defaultColors[typ]; ok {
		return c
	}
	return genericColor
}
