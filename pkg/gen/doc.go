// Package gen is the AI collaborator: it turns natural-language prompts
// into circuit designs and circuit designs into Arduino firmware by
// calling a Gemini-style generateContent API.
//
// The package owns the entire model boundary. Raw model text never leaves
// it: responses are parsed into typed values ([circuit.Data], firmware
// source strings) or rejected with a typed error, so the core only ever
// sees already-validated designs.
package gen
