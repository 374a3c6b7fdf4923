package colour

import "testing"

func TestIsValidHex(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"fff", true},
		{"FFF", true},
		{"ffffff", true},
		{"A1b2C3", true},
		{"gggggg", false},
		{"12345", false},
		{"1234", false},
		{"1234567", false},
		{"#fff", false},
		{"#ffffff", false},
		{"ff ff", false},
		{"zz0000", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsValidHex(tt.in); got != tt.want {
				t.Errorf("IsValidHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestIsValidHexExhaustiveSingleChar checks every byte in a three character
// candidate against the hex digit definition.
func TestIsValidHexExhaustiveSingleChar(t *testing.T) {
	for c := 0; c < 256; c++ {
		s := "0" + string(rune(c)) + "0"
		if c >= 0x80 {
			// Multi-byte encodings change the length; covered by the length rule.
			continue
		}
		want := ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
		if got := IsValidHex(s); got != want {
			t.Errorf("IsValidHex(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestNormaliseHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" #FF0000 ", "ff0000"},
		{"zz0000", "zz0000"},
		{"\t00Ff00\n", "00ff00"},
		{"##abc", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormaliseHex(tt.in); got != tt.want {
				t.Errorf("NormaliseHex(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{in: "ff0000", want: RGB{R: 255, G: 0, B: 0}},
		{in: "FF8000", want: RGB{R: 255, G: 128, B: 0}},
		{in: "fff", want: RGB{R: 255, G: 255, B: 255}},
		{in: "0a1", want: RGB{R: 0, G: 170, B: 17}},
		{in: "808283", want: RGB{R: 128, G: 130, B: 131}},
		{in: "zzz", wantErr: true},
		{in: "#ffffff", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
