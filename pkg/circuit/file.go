package circuit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Marshal encodes a design as indented JSON.
func Marshal(d Data) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal circuit: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a design from JSON.
func Unmarshal(data []byte) (Data, error) {
	var d Data
	if err := json.Unmarshal(data, &d); err != nil {
		return Data{}, fmt.Errorf("unmarshal circuit: %w", err)
	}
	return d, nil
}

// Write serializes the circuit's design to w.
func (c *Circuit) Write(w io.Writer) error {
	data, err := Marshal(c.Data())
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write circuit: %w", err)
	}
	return nil
}

// WriteFile saves the circuit's design to path.
func (c *Circuit) WriteFile(path string) error {
	data, err := Marshal(c.Data())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write circuit file: %w", err)
	}
	return nil
}

// Read builds a circuit from a design read from r. Positions come from
// netlist grid placement, not from the file; the format doesn't carry them.
func Read(r io.Reader) (*Circuit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read circuit: %w", err)
	}
	d, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	c := New()
	c.UpdateFromData(d)
	return c, nil
}

// ReadFile builds a circuit from the design file at path.
func ReadFile(path string) (*Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open circuit file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// ReadData decodes just the design from the file at path without
// materializing a circuit.
func ReadData(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read circuit file: %w", err)
	}
	return Unmarshal(raw)
}
