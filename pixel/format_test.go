package pixel

import (
	"errors"
	"testing"
)

func TestFormat_BytesPerTexel(t *testing.T) {
	tests := []struct {
		format   Format
		expected int
	}{
		{RGBA8888, 4},
		{RGB888, 3},
		{RGBA4444, 2},
		{RGB5A1, 2},
		{RGB565, 2},
		{A8, 1},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.BytesPerTexel(); got != tt.expected {
				t.Errorf("BytesPerTexel() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFormat_SourceBytesPerTexel(t *testing.T) {
	for _, f := range Formats() {
		want := 4
		if f == RGB888 {
			want = 3
		}
		if got := f.SourceBytesPerTexel(); got != want {
			t.Errorf("%s.SourceBytesPerTexel() = %d, want %d", f, got, want)
		}
	}
}

func TestFormat_IsCompact(t *testing.T) {
	tests := []struct {
		format   Format
		expected bool
	}{
		{RGBA8888, false},
		{RGB888, false},
		{RGBA4444, true},
		{RGB5A1, true},
		{RGB565, true},
		{A8, false},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.IsCompact(); got != tt.expected {
				t.Errorf("IsCompact() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFormat_ImageBytes(t *testing.T) {
	if got := RGBA4444.ImageBytes(64, 32); got != 64*32*2 {
		t.Errorf("RGBA4444.ImageBytes(64, 32) = %d, want %d", got, 64*32*2)
	}
	if got := RGB888.RowBytes(10); got != 30 {
		t.Errorf("RGB888.RowBytes(10) = %d, want 30", got)
	}
}

func TestFormat_Invalid(t *testing.T) {
	f := Format(200)
	if f.IsValid() {
		t.Error("Format(200).IsValid() = true")
	}
	if got := f.String(); got != "Unknown(200)" {
		t.Errorf("String() = %q, want %q", got, "Unknown(200)")
	}
	if got := f.BytesPerTexel(); got != 0 {
		t.Errorf("BytesPerTexel() = %d, want 0", got)
	}
	if _, err := f.MarshalText(); !errors.Is(err, ErrUnsupportedPixelFormat) {
		t.Errorf("MarshalText() error = %v, want ErrUnsupportedPixelFormat", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"RGBA8888", RGBA8888, false},
		{"rgba4444", RGBA4444, false},
		{"Rgb565", RGB565, false},
		{"a8", A8, false},
		{"RGB5A1", RGB5A1, false},
		{"PVRTC4", Default, true},
		{"", Default, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupportedPixelFormat) {
				t.Errorf("error = %v, want ErrUnsupportedPixelFormat", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestFormat_TextRoundTrip(t *testing.T) {
	for _, f := range Formats() {
		text, err := f.MarshalText()
		if err != nil {
			t.Fatalf("%s.MarshalText() error = %v", f, err)
		}
		var back Format
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if back != f {
			t.Errorf("round trip %s -> %q -> %s", f, text, back)
		}
	}
}
