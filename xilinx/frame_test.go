package xilinx

import (
	"errors"
	"testing"
)

func TestMapFrameDataOffsetIsInvolution(t *testing.T) {
	for _, off := range []uint64{0, 1, 2, 3, 4, 5, 6, 7, 100, 4095, 65536} {
		mapped := mapFrameDataOffset(off)
		back := mapFrameDataOffset(mapped)
		if back != off {
			t.Errorf("mapFrameDataOffset(mapFrameDataOffset(%d)) = %d, want %d", off, back, off)
		}
	}
}

func TestMapFrameDataOffsetReversesWordBytes(t *testing.T) {
	cases := map[uint64]uint64{
		0: 3, 1: 2, 2: 1, 3: 0,
		4: 7, 5: 6, 6: 5, 7: 4,
	}
	for in, want := range cases {
		if got := mapFrameDataOffset(in); got != want {
			t.Errorf("mapFrameDataOffset(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestFrameDataReadWriteBitRoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	fd := NewFrameData(buf)

	for _, bit := range []uint64{0, 1, 7, 8, 15, 63, 127} {
		if err := fd.WriteBit(bit, true); err != nil {
			t.Fatalf("WriteBit(%d): %v", bit, err)
		}
		got, err := fd.ReadBit(bit)
		if err != nil {
			t.Fatalf("ReadBit(%d): %v", bit, err)
		}
		if !got {
			t.Errorf("ReadBit(%d) = false, want true", bit)
		}
	}
}

func TestFrameDataReadBitOutOfBounds(t *testing.T) {
	fd := NewFrameData(make([]byte, 4))
	_, err := fd.ReadBit(1000)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
}

func TestFrameDataLen(t *testing.T) {
	fd := NewFrameData(make([]byte, 10))
	if got := fd.Len(); got != 80 {
		t.Errorf("Len() = %d, want 80", got)
	}
}
