package gen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arclabs/breadboard/pkg/circuit"
)

// codeRequirements is appended to every firmware prompt so the model
// produces compilable sketches rather than prose.
const codeRequirements = `
Please generate complete, functional Arduino code (.ino). Include:
1. Appropriate #include statements for any required libraries
2. Pin definitions as constants
3. Any necessary global variables
4. A proper setup() function with pinMode configurations
5. A loop() function with basic functionality for the components
6. Simple logic to demonstrate component interactions where appropriate

Make the code clean, well-commented, and ready to compile and upload to an Arduino.
`

// CodePrompt builds the firmware-generation prompt for a circuit design:
// a component inventory (ids, types, properties, declared wiring) followed
// by explicit output requirements.
func CodePrompt(d circuit.Data) string {
	var b strings.Builder
	b.WriteString("Generate complete Arduino code for a circuit with the following components:\n\n")

	for _, comp := range d.Components {
		fmt.Fprintf(&b, "Component ID: %s\n", comp.ID)
		fmt.Fprintf(&b, "Type: %s\n", comp.Type)

		if len(comp.Properties) > 0 {
			b.WriteString("Properties:\n")
			for _, k := range sortedKeys(comp.Properties) {
				fmt.Fprintf(&b, "- %s: %v\n", k, comp.Properties[k])
			}
		}
		if len(comp.Connections) > 0 {
			b.WriteString("Connections:\n")
			for _, pin := range sortedKeys(comp.Connections) {
				fmt.Fprintf(&b, "- %s connected to %v\n", pin, comp.Connections[pin])
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(codeRequirements)
	return b.String()
}

// CodePromptFromText builds a firmware prompt straight from a user request
// with no circuit attached.
func CodePromptFromText(userPrompt string) string {
	return fmt.Sprintf("Based on this request: %q\n%s", userPrompt, codeRequirements)
}

// CircuitPrompt builds the design-generation prompt: it demands a strict
// JSON object in the persisted circuit format so the response can be
// parsed without guesswork.
func CircuitPrompt(userPrompt string) string {
	return fmt.Sprintf(`Design an Arduino circuit based on this description:

%q

Respond with a single JSON object in exactly this format and nothing else:
{
  "components": [
    {
      "id": "unique_id",
      "type": "component_type",
      "properties": {"key": "value"},
      "connections": {"pin_name": "arduino_pin"}
    }
  ]
}

Valid component types: %s.

Use standard Arduino pin identifiers (0-13, A0-A5, GND, 5V, 3.3V) as
connection values.`, userPrompt, strings.Join(circuit.CatalogTypes(), ", "))
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
