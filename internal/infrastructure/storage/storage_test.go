package storage

import (
	"bytes"
	"os"
	"reflect"
	"testing"

	"dune-core/internal/domain"
	"dune-core/pkg/logger"

	"github.com/davecgh/go-spew/spew"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func sampleLog() *domain.ChangeLog {
	return &domain.ChangeLog{
		Seed:      1234,
		Scale:     domain.ScaleMedium,
		Timestamp: 1700000000,
		Frames: []domain.ChangeFrame{
			{
				Tick: 5,
				Tiles: []domain.TileChange{
					{Pos: domain.PackXY(16, 16), Ground: 0x40, Overlay: 0x75, Owner: 2, Revealed: true},
					{Pos: domain.PackXY(17, 16), Ground: 0x80},
				},
			},
			{Tick: 9, Saturated: true, Tiles: []domain.TileChange{{Pos: domain.PackXY(40, 40), Ground: 0x11}}},
		},
	}
}

func TestChangeLog_SaveLoad(t *testing.T) {
	svc := NewChangeLogService(t.TempDir())
	want := sampleLog()

	path, err := svc.Save(want)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := svc.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("loaded log differs\n got: %s\nwant: %s", spew.Sdump(got), spew.Sdump(want))
	}
}

func TestReadBinary_Rejects(t *testing.T) {
	var buf bytes.Buffer
	if err := writeBinary(&buf, sampleLog()); err != nil {
		t.Fatal(err)
	}
	valid := buf.Bytes()

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"bad magic", func(b []byte) []byte { b[0] = 'X'; return b }},
		{"bad version", func(b []byte) []byte { b[4] = 9; return b }},
		{"bad scale", func(b []byte) []byte { b[12] = 7; return b }},
		{"truncated", func(b []byte) []byte { return b[:len(b)-3] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(append([]byte(nil), valid...))
			if _, err := readBinary(bytes.NewReader(data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseChunkKey(t *testing.T) {
	tests := []struct {
		key  string
		want domain.PackedCoordinate
		ok   bool
	}{
		{"C0102", domain.PackXY(2, 1), true},
		{"C6363", domain.PackXY(63, 63), true},
		{"C6400", domain.InvalidPacked, false},
		{"X0102", domain.InvalidPacked, false},
		{"C01", domain.InvalidPacked, false},
		{"C0a02", domain.InvalidPacked, false},
		{"C-101", domain.InvalidPacked, false},
		{"C+1+1", domain.InvalidPacked, false},
		{"C6464", domain.InvalidPacked, false},
		{"C01-1", domain.InvalidPacked, false},
	}
	for _, tt := range tests {
		got, ok := ParseChunkKey(tt.key)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseChunkKey(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
	if key := ChunkKey(domain.PackXY(2, 1)); key != "C0102" {
		t.Errorf("ChunkKey = %q, want C0102", key)
	}
}

func TestDecodeChunkValue(t *testing.T) {
	// владелец 3, раскрыта, постройка
	cell, err := DecodeChunkValue("43, 384")
	if err != nil {
		t.Fatal(err)
	}
	if cell.Owner != 3 || !cell.Revealed || !cell.HasStructure || cell.HasUnit || cell.Ground != 384 {
		t.Errorf("decoded wrong: %s", spew.Sdump(cell))
	}

	// земля обрезается до 9 бит
	cell, _ = DecodeChunkValue("0,1023")
	if cell.Ground != 0x1FF {
		t.Errorf("ground = %#x, want 0x1ff", cell.Ground)
	}

	for _, bad := range []string{"", "12", "a,1", "1,b"} {
		if _, err := DecodeChunkValue(bad); err == nil {
			t.Errorf("DecodeChunkValue(%q) expected error", bad)
		}
	}
}

func TestEncodeDecodeChunk(t *testing.T) {
	w := domain.NewWorldState(domain.ScaleSmall, 1)
	p := domain.PackXY(25, 30)
	c := w.Cell(p)
	c.Ground = domain.SpriteConcrete
	c.Owner = 5
	c.Revealed = true

	entries := EncodeChunk(w)
	if len(entries) != 1 || entries["C3025"] != "13,128" {
		t.Fatalf("unexpected chunk: %s", spew.Sdump(entries))
	}

	entries["garbage"] = "1,1"
	entries["C0000"] = "oops"
	cells := DecodeChunk(entries)
	if len(cells) != 1 {
		t.Fatalf("decoded %d cells, want 1: %s", len(cells), spew.Sdump(cells))
	}
	if cells[0].Pos != p || cells[0].Owner != 5 || cells[0].Ground != domain.SpriteConcrete {
		t.Errorf("decoded cell: %s", spew.Sdump(cells[0]))
	}
}
