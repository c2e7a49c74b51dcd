package xilinx

import "testing"

func TestDeviceByIDCodeKnownParts(t *testing.T) {
	cases := map[uint32]string{
		0x03722093: "xc7z010",
		0x0373B093: "xc7z015",
		0x03727093: "xc7z020",
	}
	for idcode, name := range cases {
		d, err := DeviceByIDCode(idcode)
		if err != nil {
			t.Fatalf("DeviceByIDCode(%#x): %v", idcode, err)
		}
		if d.Name != name {
			t.Errorf("DeviceByIDCode(%#x).Name = %q, want %q", idcode, d.Name, name)
		}
	}
}

func TestDeviceByIDCodeUnknown(t *testing.T) {
	if _, err := DeviceByIDCode(0xDEADBEEF); err == nil {
		t.Errorf("DeviceByIDCode(unknown): want error, got nil")
	}
}

func TestDeviceByNameRoundTrip(t *testing.T) {
	d, err := DeviceByName("xc7z020")
	if err != nil {
		t.Fatalf("DeviceByName: %v", err)
	}
	if d.IDCode != 0x03727093 {
		t.Errorf("IDCode = %#x, want 0x03727093", d.IDCode)
	}
}

func TestXC7Z010DerivesRAMB18Halves(t *testing.T) {
	d, err := DeviceByName("xc7z010")
	if err != nil {
		t.Fatalf("DeviceByName: %v", err)
	}

	ramb36 := d.BRAMs(CategoryRAMB36)
	ramb18 := d.BRAMs(CategoryRAMB18)
	if len(ramb18) != 2*len(ramb36) {
		t.Errorf("len(ramb18) = %d, want %d (2x ramb36 count %d)", len(ramb18), 2*len(ramb36), len(ramb36))
	}
}

func TestDeviceBRAMByLoc(t *testing.T) {
	d, err := DeviceByName("xc7z010")
	if err != nil {
		t.Fatalf("DeviceByName: %v", err)
	}
	ram, err := d.BRAMByLoc(CategoryRAMB36, 0, 0)
	if err != nil {
		t.Fatalf("BRAMByLoc: %v", err)
	}
	if ram.X() != 0 || ram.Y() != 0 {
		t.Errorf("got tile at (%d, %d), want (0, 0)", ram.X(), ram.Y())
	}

	if _, err := d.BRAMByLoc(CategoryRAMB36, 99, 99); err == nil {
		t.Errorf("BRAMByLoc(99,99): want error, got nil")
	}
}

func TestDeviceReadbackPaddingBytes(t *testing.T) {
	d, err := DeviceByName("xc7z010")
	if err != nil {
		t.Fatalf("DeviceByName: %v", err)
	}
	if got := d.FrameSizeBytes(); got != 101*4 {
		t.Errorf("FrameSizeBytes() = %d, want %d", got, 101*4)
	}
	if got := d.ReadbackLeadingPaddingBytes(); got != 101*4 {
		t.Errorf("ReadbackLeadingPaddingBytes() = %d, want %d (no extra pipeline words on Series-7)", got, 101*4)
	}

	vu9p, err := DeviceByName("xcvu9p")
	if err != nil {
		t.Fatalf("DeviceByName: %v", err)
	}
	if got := vu9p.ReadbackLeadingPaddingBytes(); got != (123+20)*4 {
		t.Errorf("ReadbackLeadingPaddingBytes() = %d, want %d", got, (123+20)*4)
	}
}

func TestRegisterDevicePanicsOnDuplicateName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("RegisterDevice: want panic on duplicate name, got none")
		}
	}()
	RegisterDevice(NewDevice("xc7z010", 0x01010101, nil, false, ReadbackPadding{}))
}
