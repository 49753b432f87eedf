package imaging

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"six digits", "#00C800", color.NRGBA{0, 200, 0, 255}, false},
		{"lower case", "#ffffff", color.NRGBA{255, 255, 255, 255}, false},
		{"no hash", "000000", color.NRGBA{0, 0, 0, 255}, false},
		{"short form", "#f00", color.NRGBA{255, 0, 0, 255}, false},
		{"empty", "", color.NRGBA{}, true},
		{"garbage", "#zzzzzz", color.NRGBA{}, true},
		{"wrong length", "#12345", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexString(t *testing.T) {
	if got := HexString(color.NRGBA{0, 200, 0, 255}); got != "#00c800" {
		t.Errorf("HexString = %q, want #00c800", got)
	}
}

func TestMustParseHexColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseHexColor should panic on invalid input")
		}
	}()
	MustParseHexColor("nope")
}
