package api

import (
	"encoding/json"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/vmihailenco/msgpack/v5"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"msgpack", FormatMsgpack, false},
		{"xml", FormatJSON, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDecodeCommand_MsgpackPayloadBecomesJSON(t *testing.T) {
	data, err := msgpack.Marshal(map[string]any{
		"action":  "SPICE",
		"payload": map[string]any{"x": 10, "y": 12, "grow": true},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	cmd, err := DecodeCommand(FormatMsgpack, data)
	if err != nil {
		t.Fatalf("DecodeCommand: %v", err)
	}
	if cmd.Action != "SPICE" {
		t.Errorf("Action = %q, want SPICE", cmd.Action)
	}

	var p SpicePayload
	if err := json.Unmarshal(cmd.Payload, &p); err != nil {
		t.Fatalf("payload is not JSON: %v (%s)", err, cmd.Payload)
	}
	if p.X != 10 || p.Y != 12 || !p.Grow {
		t.Errorf("payload decoded wrong:\n%s", spew.Sdump(p))
	}
}

func TestDecodeCommand_JSON(t *testing.T) {
	cmd, err := DecodeCommand(FormatJSON, []byte(`{"action":"UNVEIL","payload":{"x":3,"y":4}}`))
	if err != nil {
		t.Fatalf("DecodeCommand: %v", err)
	}
	if cmd.Action != "UNVEIL" || string(cmd.Payload) != `{"x":3,"y":4}` {
		t.Errorf("unexpected command:\n%s", spew.Sdump(cmd))
	}

	if _, err := DecodeCommand(FormatJSON, []byte(`{broken`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestEncodeResponse_MsgpackUsesShortTileKeys(t *testing.T) {
	resp := ServerResponse{
		Type:  TypeChanges,
		Tick:  7,
		Tiles: []TileView{{X: 1, Y: 2, Ground: 0x22, Landscape: "dune", Revealed: true}},
	}
	data, err := EncodeResponse(FormatMsgpack, resp)
	if err != nil {
		t.Fatalf("EncodeResponse: %v", err)
	}

	var generic map[string]any
	if err := msgpack.Unmarshal(data, &generic); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	tiles, ok := generic["tiles"].([]any)
	if !ok || len(tiles) != 1 {
		t.Fatalf("tiles missing:\n%s", spew.Sdump(generic))
	}
	tile := tiles[0].(map[string]any)
	if _, ok := tile["g"]; !ok {
		t.Errorf("expected short key g in tile:\n%s", spew.Sdump(tile))
	}
	if _, ok := generic["error"]; ok {
		t.Error("empty error must be omitted")
	}
}
