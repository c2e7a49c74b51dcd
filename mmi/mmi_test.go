package mmi

import (
	"testing"

	"github.com/jteeuwen/go-pkg-xmlx"
)

func TestParsePlacement(t *testing.T) {
	cases := map[string]Placement{
		"X0Y0":   {X: 0, Y: 0},
		"X12Y7":  {X: 12, Y: 7},
		"X100Y3": {X: 100, Y: 3},
	}
	for in, want := range cases {
		got, err := parsePlacement(in)
		if err != nil {
			t.Fatalf("parsePlacement(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("parsePlacement(%q) = %+v, want %+v", in, got, want)
		}
	}
}

func TestParsePlacementRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "Y5X2", "X5", "Y5", "foo"} {
		if _, err := parsePlacement(in); err == nil {
			t.Errorf("parsePlacement(%q): want error, got nil", in)
		}
	}
}

func TestBitLaneWidth(t *testing.T) {
	l := BitLane{DataMSB: 7, DataLSB: 0}
	if got := l.Width(); got != 8 {
		t.Errorf("Width() = %d, want 8", got)
	}
}

const testMMIDocument = `<?xml version="1.0" encoding="UTF-8"?>
<MemInfo Version="1" Minor="0">
  <Processor Endianness="Little" InstPath="dut/cpu">
    <AddressSpace Name="dmem" Begin="0" End="1023">
      <BusBlock>
        <BitLane MemType="RAMB36" Placement="X0Y0">
          <DataWidth MSB="7" LSB="0"/>
          <AddressRange Begin="0" End="255"/>
          <Parity ON="false" NumBits="0"/>
        </BitLane>
        <BitLane MemType="RAMB36" Placement="X0Y1">
          <DataWidth MSB="15" LSB="8"/>
          <AddressRange Begin="0" End="255"/>
          <Parity ON="false" NumBits="0"/>
        </BitLane>
      </BusBlock>
    </AddressSpace>
  </Processor>
</MemInfo>`

func TestFromDocumentParsesAddressSpaceAndInfersWordSize(t *testing.T) {
	doc := xmlx.New()
	if err := doc.LoadString(testMMIDocument, nil); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	mm, err := fromDocument(doc)
	if err != nil {
		t.Fatalf("fromDocument: %v", err)
	}
	if len(mm.Regions) != 1 {
		t.Fatalf("got %d address spaces, want 1", len(mm.Regions))
	}

	space := mm.Regions[0]
	if space.Name != "dmem" {
		t.Errorf("Name = %q, want dmem", space.Name)
	}
	if space.StartByteAddr != 0 || space.EndByteAddr != 1023 {
		t.Errorf("byte range = [%d, %d], want [0, 1023]", space.StartByteAddr, space.EndByteAddr)
	}
	// Two 8-bit lanes spanning bits [0,7] and [8,15] combine to a 16-bit word.
	if space.WordSizeBits != 16 {
		t.Errorf("WordSizeBits = %d, want 16", space.WordSizeBits)
	}
	if len(space.Lanes) != 2 {
		t.Fatalf("got %d lanes, want 2", len(space.Lanes))
	}
}
