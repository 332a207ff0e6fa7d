package render

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#aa0000", want: ColorRed},
		{in: "#A00", want: ColorRed},
		{in: " #fff ", want: ColorWhite},
		{in: "Black", want: ColorBlack},
		{in: "#12345", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "mauve", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseColor(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	for _, c := range []Color{ColorBlack, ColorWhite, ColorRed, RGB(0x12, 0x34, 0x56)} {
		got, err := ParseColor(c.Hex())
		if err != nil || got != c {
			t.Errorf("ParseColor(%q) = %v, %v, want %v", c.Hex(), got, err, c)
		}
	}
	if got := RGB(0x12, 0xab, 0).Hex(); got != "#12ab00" {
		t.Errorf("Hex() = %q, want #12ab00", got)
	}
}
