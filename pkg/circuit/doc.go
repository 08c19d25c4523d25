// Package circuit implements the core breadboard model: components with
// typed pins, wires between pins, netlist derivation from declared
// connections, and a digital propagation simulator.
//
// The package is deliberately single-threaded. A Circuit is owned by one
// goroutine at a time; callers that share one across goroutines (the HTTP
// API does) serialize access themselves.
package circuit
