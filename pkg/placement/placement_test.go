package placement

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/tooltip/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Placement
		wantErr bool
	}{
		{"top", Placement{Top, Center}, false},
		{"top-left", Placement{Top, AlignLeft}, false},
		{"top-right", Placement{Top, AlignRight}, false},
		{"bottom", Placement{Bottom, Center}, false},
		{"bottom-left", Placement{Bottom, AlignLeft}, false},
		{"bottom-right", Placement{Bottom, AlignRight}, false},
		{"left", Placement{Left, Center}, false},
		{"left-top", Placement{Left, AlignTop}, false},
		{"left-bottom", Placement{Left, AlignBottom}, false},
		{"right", Placement{Right, Center}, false},
		{"right-top", Placement{Right, AlignTop}, false},
		{"right-bottom", Placement{Right, AlignBottom}, false},

		{"", Placement{}, true},
		{"middle", Placement{}, true},
		{"top-", Placement{}, true},
		{"top-top", Placement{}, true},
		{"top-bottom", Placement{}, true},
		{"left-left", Placement{}, true},
		{"left-right", Placement{}, true},
		{"top-left-right", Placement{}, true},
		{"Top", Placement{}, true},
		{" top", Placement{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidPlacement) {
					t.Errorf("Parse(%q) code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidPlacement)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAll(t *testing.T) {
	ps := All()
	if len(ps) != 12 {
		t.Fatalf("All() returned %d placements, want 12", len(ps))
	}

	seen := map[Placement]bool{}
	for _, p := range ps {
		if !p.Valid() {
			t.Errorf("All() contains invalid placement %+v", p)
		}
		if seen[p] {
			t.Errorf("All() contains duplicate %s", p)
		}
		seen[p] = true

		parsed, err := Parse(p.String())
		if err != nil || parsed != p {
			t.Errorf("Parse(%q) = %+v, %v; want %+v", p.String(), parsed, err, p)
		}
	}

	// Mutating the returned slice must not affect later calls.
	ps[0] = Placement{Side: "bogus"}
	if All()[0] != (Placement{Top, Center}) {
		t.Error("All() should return a copy")
	}
}

func TestPlacement_Opposite(t *testing.T) {
	sides := map[Side]Side{Top: Bottom, Bottom: Top, Left: Right, Right: Left}
	for s, want := range sides {
		if got := s.Opposite(); got != want {
			t.Errorf("%s.Opposite() = %s, want %s", s, got, want)
		}
	}

	aligns := map[Align]Align{
		Center: Center, AlignLeft: AlignRight, AlignRight: AlignLeft,
		AlignTop: AlignBottom, AlignBottom: AlignTop,
	}
	for a, want := range aligns {
		if got := a.Opposite(); got != want {
			t.Errorf("%q.Opposite() = %q, want %q", a, got, want)
		}
	}
}

func TestPlacement_Class(t *testing.T) {
	if got := MustParse("right-bottom").Class(); got != "right-bottom" {
		t.Errorf("Class() = %q, want %q", got, "right-bottom")
	}
	if got := Default.Class(); got != "top" {
		t.Errorf("Default.Class() = %q, want %q", got, "top")
	}
}

func TestPlacement_JSON(t *testing.T) {
	type doc struct {
		Place Placement `json:"place"`
	}

	data, err := json.Marshal(doc{Place: MustParse("left-top")})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `{"place":"left-top"}` {
		t.Errorf("Marshal() = %s", data)
	}

	var d doc
	if err := json.Unmarshal([]byte(`{"place":"bottom-right"}`), &d); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if d.Place != MustParse("bottom-right") {
		t.Errorf("Unmarshal() = %+v", d.Place)
	}

	if err := json.Unmarshal([]byte(`{"place":"sideways"}`), &d); err == nil {
		t.Error("Unmarshal() should reject invalid placement")
	}

	if _, err := json.Marshal(doc{Place: Placement{Side: Top, Align: AlignTop}}); err == nil {
		t.Error("Marshal() should reject invalid placement")
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("nowhere")
}
