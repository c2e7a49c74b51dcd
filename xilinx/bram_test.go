package xilinx

import "testing"

func TestRAMB36E1MapToBitstreamWithinTableRange(t *testing.T) {
	ram := NewRAMB36E1(0, 0, 0x1000, 0)
	if got := ram.Primitive(); got != "RAMB36E1" {
		t.Errorf("Primitive() = %q, want RAMB36E1", got)
	}
	if got := ram.NumWords(); got != 1024 {
		t.Errorf("NumWords() = %d, want 1024", got)
	}

	mapped := ram.MapToBitstream(0, false)
	if mapped < 0x1000 {
		t.Errorf("MapToBitstream(0, false) = %#x, want >= bitstreamOffset 0x1000", mapped)
	}
}

func TestRAMB18E1DelegatesToParentWithOffset(t *testing.T) {
	parent := NewRAMB36E1(3, 4, 0x2000, 0)
	bottom := NewRAMB18E1(parent, false)
	top := NewRAMB18E1(parent, true)

	if bottom.Y() != 2*parent.Y() {
		t.Errorf("bottom.Y() = %d, want %d", bottom.Y(), 2*parent.Y())
	}
	if top.Y() != 2*parent.Y()+1 {
		t.Errorf("top.Y() = %d, want %d", top.Y(), 2*parent.Y()+1)
	}

	// Top and bottom halves must map to disjoint bit positions within the
	// parent tile's data space.
	bottomBit := bottom.MapToBitstream(0, false)
	topBit := top.MapToBitstream(0, false)
	if bottomBit == topBit {
		t.Errorf("top and bottom halves mapped to the same bit %#x", bottomBit)
	}
}

func TestRAMB36E2MapToBitstream(t *testing.T) {
	ram := NewRAMB36E2(1, 2, 0x500, 0)
	if got := ram.Primitive(); got != "RAMB36E2" {
		t.Errorf("Primitive() = %q, want RAMB36E2", got)
	}
	mapped := ram.MapToBitstream(0, false)
	if mapped < 0x500 {
		t.Errorf("MapToBitstream(0, false) = %#x, want >= bitstreamOffset 0x500", mapped)
	}
}

func TestExtractInjectBitsRoundTrip(t *testing.T) {
	ram := NewRAMB36E1(0, 0, 0, 0)

	// Frame data buffer large enough to hold every mapped bit this tile's
	// data/parity bit addresses can reach.
	fd := NewFrameData(make([]byte, 1<<16))

	want := make([]byte, (1024*32+7)/8)
	for i := range want {
		want[i] = byte(i*37 + 11)
	}

	if err := InjectBits(ram, fd, false, want); err != nil {
		t.Fatalf("InjectBits: %v", err)
	}
	got, err := ExtractBits(ram, fd, false)
	if err != nil {
		t.Fatalf("ExtractBits: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}
