// Package render turns circuits into Graphviz diagrams: record-shaped
// nodes with one port per pin, wires colored by what they carry, exported
// as DOT, SVG, or PNG.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/arclabs/breadboard/pkg/circuit"
)

// Options configures circuit rendering.
type Options struct {
	// ShowStates annotates each pin port with its simulated state
	// (HIGH/LOW/CONFLICT). Run SimulateStep first or everything reads
	// UNKNOWN.
	ShowStates bool
}

// Wire colors: supply wires red, ground wires black, signal wires blue.
const (
	wirePower   = "#cc0000"
	wireGround  = "#000000"
	wireDefault = "#0000cc"
)

// ToDOT converts a circuit to Graphviz DOT. Components become
// record-shaped nodes filled with their catalog color, one port per pin,
// and connections become undirected edges between ports. The resulting
// DOT string can be rendered with [RenderSVG] or [RenderPNG].
//
// Connections with a dangling endpoint are skipped; Graphviz has no node
// to anchor them to.
func ToDOT(c *circuit.Circuit, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=filled, fontsize=12];\n")
	buf.WriteString("  edge [penwidth=1.5];\n")
	buf.WriteString("\n")

	for _, comp := range c.Components() {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n",
			comp.ID, recordLabel(comp, opts), comp.Color.Hex())
	}

	buf.WriteString("\n")
	for _, conn := range c.Connections() {
		c1, p1 := endpoint(c, conn.Pin1)
		c2, p2 := endpoint(c, conn.Pin2)
		if c1 == nil || c2 == nil {
			continue
		}
		fmt.Fprintf(&buf, "  %q:%q -- %q:%q [color=%q];\n",
			c1.ID, p1.Name, c2.ID, p2.Name, wireColor(p1, p2))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func endpoint(c *circuit.Circuit, pinID string) (*circuit.Component, *circuit.Pin) {
	for _, comp := range c.Components() {
		for _, pin := range comp.Pins {
			if pin.ID == pinID {
				return comp, pin
			}
		}
	}
	return nil, nil
}

// recordLabel builds the record shape: the component id and type on one
// side, the pin ports on the other.
func recordLabel(comp *circuit.Component, opts Options) string {
	title := escapeRecord(comp.ID)
	if comp.Type != "" {
		title += "\\n(" + escapeRecord(comp.Type) + ")"
	}
	names := comp.PinNames()
	if len(names) == 0 {
		return title
	}

	cells := make([]string, 0, len(names))
	for _, name := range names {
		text := name
		if opts.ShowStates {
			text = fmt.Sprintf("%s=%s", name, comp.Pins[name].State)
		}
		cells = append(cells, fmt.Sprintf("<%s> %s", name, escapeRecord(text)))
	}
	return fmt.Sprintf("{%s|{%s}}", title, strings.Join(cells, "|"))
}

var recordEscaper = strings.NewReplacer(
	"{", "\\{", "}", "\\}",
	"|", "\\|", "<", "\\<", ">", "\\>",
)

func escapeRecord(s string) string { return recordEscaper.Replace(s) }

func wireColor(p1, p2 *circuit.Pin) string {
	for _, p := range []*circuit.Pin{p1, p2} {
		if p.Type == circuit.PinPower {
			return wirePower
		}
	}
	for _, p := range []*circuit.Pin{p1, p2} {
		if p.Type == circuit.PinGround {
			return wireGround
		}
	}
	return wireDefault
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG, nil)
}

func renderFormat(dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg element so the diagram scales cleanly
// when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
