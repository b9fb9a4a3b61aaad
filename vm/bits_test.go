package vm

import "testing"

func TestSignExtendPositive(t *testing.T) {
	got := SignExtend(0x0F, 5) // bit 4 clear
	want := Word(0x0F)
	if got != want {
		t.Errorf("SignExtend(0x0F, 5) = 0x%04x, want 0x%04x", got, want)
	}
}

func TestSignExtendNegative(t *testing.T) {
	got := SignExtend(0x1F, 5) // bit 4 set: -1 in 5 bits
	want := Word(0xFFFF)
	if got != want {
		t.Errorf("SignExtend(0x1F, 5) = 0x%04x, want 0x%04x", got, want)
	}
}

func TestSignExtendTableDriven(t *testing.T) {
	cases := []struct {
		name string
		x    Word
		n    int
		want Word
	}{
		{"9-bit zero", 0x000, 9, 0x0000},
		{"9-bit +1", 0x001, 9, 0x0001},
		{"9-bit -1", 0x1FF, 9, 0xFFFF},
		{"6-bit -1", 0x3F, 6, 0xFFFF},
		{"11-bit -1", 0x7FF, 11, 0xFFFF},
		{"16-bit identity positive", 0x1234, 16, 0x1234},
		{"16-bit identity negative", 0x8000, 16, 0x8000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SignExtend(c.x, c.n); got != c.want {
				t.Errorf("SignExtend(0x%x, %d) = 0x%04x, want 0x%04x", c.x, c.n, got, c.want)
			}
		})
	}
}

func TestSwap16RoundTrip(t *testing.T) {
	for _, x := range []Word{0x0000, 0x00FF, 0xFF00, 0x1234, 0xFFFF, 0x3000} {
		if got := Swap16(Swap16(x)); got != x {
			t.Errorf("Swap16(Swap16(0x%04x)) = 0x%04x, want 0x%04x", x, got, x)
		}
	}
}

func TestSwap16ByteOrder(t *testing.T) {
	if got, want := Swap16(0x3000), Word(0x0030); got != want {
		t.Errorf("Swap16(0x3000) = 0x%04x, want 0x%04x", got, want)
	}
}
