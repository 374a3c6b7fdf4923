package colour

import (
	"context"
	"testing"
)

func TestCSSNamesExactMatches(t *testing.T) {
	table := CSSNames()

	tests := []struct {
		rgb  RGB
		want string
	}{
		{RGB{R: 255, G: 0, B: 0}, "red"},
		{RGB{R: 0, G: 0, B: 0}, "black"},
		{RGB{R: 255, G: 255, B: 255}, "white"},
		{RGB{R: 100, G: 149, B: 237}, "cornflowerblue"},
		// Shared colours keep the alphabetically first name.
		{RGB{R: 0, G: 255, B: 255}, "aqua"},
		{RGB{R: 255, G: 0, B: 255}, "fuchsia"},
		{RGB{R: 128, G: 128, B: 128}, "gray"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, ok := table.Lookup(tt.rgb)
			if !ok {
				t.Fatalf("Lookup(%s) found nothing", tt.rgb.Hex())
			}
			if got != tt.want {
				t.Errorf("Lookup(%s) = %q, want %q", tt.rgb.Hex(), got, tt.want)
			}
		})
	}
}

func TestCSSNamesDeduplicated(t *testing.T) {
	// 147 CSS names share 138 distinct colours.
	if got := CSSNames().Len(); got != 138 {
		t.Errorf("Len() = %d, want 138", got)
	}
}

func TestNameTableOrderedByHex(t *testing.T) {
	entries := CSSNames().Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Hex >= entries[i].Hex {
			t.Fatalf("entries out of order at %d: %s >= %s", i, entries[i-1].Hex, entries[i].Hex)
		}
	}
}

func TestNameTableNearest(t *testing.T) {
	table := NewNameTable([]NamedColour{
		{RGB: RGB{R: 0, G: 0, B: 0}, Name: "black"},
		{RGB: RGB{R: 255, G: 0, B: 0}, Name: "red"},
		{RGB: RGB{R: 0, G: 0, B: 255}, Name: "blue"},
	})

	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "near red", rgb: RGB{R: 250, G: 5, B: 3}, want: "red"},
		{name: "near black", rgb: RGB{R: 20, G: 20, B: 20}, want: "black"},
		{name: "near blue", rgb: RGB{R: 10, G: 0, B: 200}, want: "blue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Nearest(tt.rgb)
			if !ok {
				t.Fatal("Nearest() found nothing")
			}
			if got.Name != tt.want {
				t.Errorf("Nearest(%s) = %q, want %q", tt.rgb.Hex(), got.Name, tt.want)
			}
		})
	}
}

func TestNameTableNearestTieBreaksByHexOrder(t *testing.T) {
	// Both entries are 100 away from black; "000a00" sorts before "0a0000".
	table := NewNameTable([]NamedColour{
		{RGB: RGB{R: 10, G: 0, B: 0}, Name: "reddish"},
		{RGB: RGB{R: 0, G: 10, B: 0}, Name: "greenish"},
	})

	for i := 0; i < 10; i++ {
		got, _ := table.Nearest(RGB{})
		if got.Name != "greenish" {
			t.Fatalf("Nearest() = %q, want %q", got.Name, "greenish")
		}
	}
}

func TestNameTableEmpty(t *testing.T) {
	table := NewNameTable(nil)
	if _, ok := table.Nearest(RGB{}); ok {
		t.Error("Nearest() on empty table should report false")
	}
	if got := NewTableResolver(table).Resolve(context.Background(), RGB{}); got != Unknown {
		t.Errorf("Resolve() on empty table = %q, want %q", got, Unknown)
	}
}

func TestTableResolver(t *testing.T) {
	r := NewTableResolver(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "exact", rgb: RGB{R: 255, G: 99, B: 71}, want: "tomato"},
		{name: "one off red", rgb: RGB{R: 254, G: 0, B: 0}, want: "red"},
		{name: "near black", rgb: RGB{R: 1, G: 1, B: 1}, want: "black"},
		{name: "near white", rgb: RGB{R: 255, G: 255, B: 254}, want: "white"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(ctx, tt.rgb); got != tt.want {
				t.Errorf("Resolve(%s) = %q, want %q", tt.rgb.Hex(), got, tt.want)
			}
		})
	}
}

// TestTableResolverMatchesBruteForce checks the nearest match against a
// straightforward scan for a spread of colours.
func TestTableResolverMatchesBruteForce(t *testing.T) {
	table := CSSNames()
	r := NewTableResolver(table)
	entries := table.Entries()

	for v := 0; v < 256; v += 17 {
		rgb := RGB{R: uint8(v), G: uint8(255 - v), B: uint8((v * 7) % 256)}

		best := entries[0]
		for _, e := range entries[1:] {
			if rgb.DistanceSq(e.RGB) < rgb.DistanceSq(best.RGB) {
				best = e
			}
		}

		if got := r.Resolve(context.Background(), rgb); got != best.Name {
			t.Errorf("Resolve(%s) = %q, want %q", rgb.Hex(), got, best.Name)
		}
	}
}
