package flags

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		var f Flags
		f.Unpack(uint8(b))
		if got, want := f.Pack(), uint8(b)&0b11010101; got != want {
			t.Errorf("byte 0x%.2X: pack(unpack(b)) = 0x%.2X, want 0x%.2X", b, got, want)
		}
	}
}

func TestPackLayout(t *testing.T) {
	f := Flags{Z: true, S: true, P: true, CY: true, AC: true}
	if got, want := f.Pack(), uint8(0xD5); got != want {
		t.Errorf("Pack() = 0x%.2X, want 0x%.2X", got, want)
	}
}

func TestParityMatchesBitCount(t *testing.T) {
	for v := 0; v < 256; v++ {
		ones := 0
		for x := v; x != 0; x >>= 1 {
			ones += x & 1
		}
		if got, want := Parity(uint8(v)), ones%2 == 0; got != want {
			t.Errorf("Parity(0x%.2X) = %t, want %t (bit count %d)", v, got, want, ones)
		}
	}
}

func TestSetFromResult(t *testing.T) {
	tests := []struct {
		name   string
		result uint8
		z, s   bool
	}{
		{"zero", 0x00, true, false},
		{"negative", 0x80, false, true},
		{"positive", 0x01, false, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var f Flags
			f.CY = true // Must be left alone.
			f.SetFromResult(test.result)
			if got, want := f.Z, test.z; got != want {
				t.Errorf("Z = %t, want %t", got, want)
			}
			if got, want := f.S, test.s; got != want {
				t.Errorf("S = %t, want %t", got, want)
			}
			if !f.CY {
				t.Errorf("CY was clobbered by SetFromResult")
			}
		})
	}
}
