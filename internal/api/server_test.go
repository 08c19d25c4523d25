package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arclabs/breadboard/pkg/circuit"
	"github.com/arclabs/breadboard/pkg/gen"
	"github.com/arclabs/breadboard/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(pipeline.NewRunner(nil, nil, nil, nil), nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		buf = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "ok") {
		t.Errorf("body = %s", body)
	}
}

func TestComponentLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/components",
		map[string]any{"type": "led", "x": 100, "y": 120})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d: %s", resp.StatusCode, body)
	}
	var comp componentResponse
	if err := json.Unmarshal(body, &comp); err != nil {
		t.Fatal(err)
	}
	if comp.ID != "led_0" || comp.X != 100 {
		t.Errorf("component = %+v", comp)
	}
	if len(comp.Pins) != 2 {
		t.Errorf("pins = %v, want anode and cathode", comp.Pins)
	}

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/components/"+comp.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/components/"+comp.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestAddComponentValidation(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/components", map[string]any{"x": 1})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestConnectionDuplicateConflict(t *testing.T) {
	srv := newTestServer(t)

	_, body := doJSON(t, http.MethodPost, srv.URL+"/api/components",
		map[string]any{"type": "arduinouno"})
	var board componentResponse
	if err := json.Unmarshal(body, &board); err != nil {
		t.Fatal(err)
	}
	_, body = doJSON(t, http.MethodPost, srv.URL+"/api/components",
		map[string]any{"type": "led"})
	var led componentResponse
	if err := json.Unmarshal(body, &led); err != nil {
		t.Fatal(err)
	}

	conn := map[string]any{
		"pin1": "pin_" + led.ID + "_anode",
		"pin2": "pin_" + board.ID + "_D13",
	}
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/connections", conn)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d: %s", resp.StatusCode, body)
	}
	var created map[string]string
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatal(err)
	}

	// The same pair again, reversed, is a conflict.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/connections",
		map[string]any{"pin1": conn["pin2"], "pin2": conn["pin1"]})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/connections/"+created["id"], nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/connections/"+created["id"], nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestPutCircuitAndSimulate(t *testing.T) {
	srv := newTestServer(t)

	data := circuit.Data{Components: []circuit.ComponentData{
		{ID: "led1", Type: "led", Connections: map[string]any{"anode": "5V", "cathode": "GND"}},
	}}
	resp, body := doJSON(t, http.MethodPut, srv.URL+"/api/circuit", data)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d: %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/simulate", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("simulate status = %d: %s", resp.StatusCode, body)
	}
	var state circuit.SimulationState
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatal(err)
	}
	led, ok := state.Components["led1"]
	if !ok {
		t.Fatalf("state missing led1: %+v", state)
	}
	if led.PinStates["anode"] != circuit.StateHigh || led.PinStates["cathode"] != circuit.StateLow {
		t.Errorf("pin states = %+v", led.PinStates)
	}
	if led.Properties["state"] != "on" {
		t.Errorf("led state = %v, want on", led.Properties["state"])
	}

	// The live circuit reflects the put.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/circuit", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	var got circuit.Data
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Components) != 2 { // led plus the synthesized board
		t.Errorf("components = %d, want 2", len(got.Components))
	}
}

func TestSimulateTicksOutOfRange(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/simulate",
		map[string]any{"ticks": pipeline.MaxTicks + 1})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRenderDOT(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodPost, srv.URL+"/api/components", map[string]any{"type": "buzzer"})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/render?format=dot", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(string(body), "buzzer_0") {
		t.Errorf("DOT missing component:\n%s", body)
	}
}

func TestRenderBadFormat(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/render?format=gif", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestVerify(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodPost, srv.URL+"/api/components", map[string]any{"type": "led"})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/verify", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out map[string][]string
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	if len(out["issues"]) == 0 {
		t.Error("expected issues for a boardless, unwired led")
	}
}

func TestGenerateNotConfigured(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/generate",
		map[string]any{"prompt": "an led"})
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestGenerate(t *testing.T) {
	design := `{"components": [{"id": "led1", "type": "led", "connections": {"anode": "13", "cathode": "GND"}}]}`
	code := "```arduino\nvoid setup() {}\nvoid loop() {}\n```"
	first := true
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reply := design
		if !first {
			reply = code
		}
		first = false
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": reply}}}},
			},
		})
	}))
	defer model.Close()

	g := gen.New(gen.Options{Client: gen.NewClient("key", "gemini-test", model.URL)})
	runner := pipeline.NewRunner(nil, nil, g, nil)
	srv := httptest.NewServer(NewServer(runner, nil).Handler())
	defer srv.Close()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/generate",
		map[string]any{"prompt": "an led on pin 13"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.Code, "void setup()") {
		t.Errorf("code = %q", out.Code)
	}
	if len(out.Data.Components) != 2 { // led plus the synthesized board
		t.Errorf("components = %d, want 2", len(out.Data.Components))
	}
}
