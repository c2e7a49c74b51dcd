// Copyright © 2019 Erin Shepherd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xilinx

import "fmt"

// Device is a compile-time description of a known FPGA part: its IDCODE
// and the block RAM tile geometry needed to map BRAM contents into/out of
// a bitstream's frame data.
//
// Device catalog entries are process-wide immutable data, built once by
// each devices_*.go file's init() via RegisterDevice and never mutated
// afterwards, mirroring the registration pattern in
// erincandescent-nuvoprog/target/target.go.
type Device struct {
	Name   string
	IDCode uint32

	ramb36 []BRAM
	ramb18 []BRAM

	padding ReadbackPadding
}

// ReadbackPadding carries the per-device constants needed to strip the
// configuration engine's readback pipeline latency from an FDRO capture.
// Grounded on the old fpga.hpp's frame_size_/readback_offset_/
// front_padding_/back_padding_/back_sync_words_ fields, which bitstream.cpp
// reads back via fpga.frame_size() when computing an FDRO read's true frame
// data offset.
type ReadbackPadding struct {
	// FrameSizeWords is the device's configuration frame size, in 32-bit
	// words (bitgen's per-part FDRI/FDRO frame length).
	FrameSizeWords uint
	// FrontPipelineWords is additional pipeline latency, beyond one whole
	// frame, that an FDRO readback prepends ahead of a SLR's real frame
	// data (UltraScale+'s deeper readback pipeline needs this).
	FrontPipelineWords uint
	// BackPaddingWords is trailing padding an FDRO readback appends after
	// a SLR's real frame data.
	BackPaddingWords uint
	// BackSyncWords is how many of BackPaddingWords are literal dummy
	// sync/pad words rather than frame data.
	BackSyncWords uint
}

// NewDevice constructs a Device from its full RAMB36 tile list, deriving
// the RAMB18 halves automatically for families that support the
// RAMB18E1-on-RAMB36E1 split (Series-7). Pass deriveRAMB18 = false to skip
// derivation for families (UltraScale+) that do not split this way in this
// catalog.
func NewDevice(name string, idcode uint32, ramb36 []BRAM, deriveRAMB18 bool, padding ReadbackPadding) *Device {
	d := &Device{Name: name, IDCode: idcode, ramb36: ramb36, padding: padding}
	if deriveRAMB18 {
		d.ramb18 = make([]BRAM, 0, 2*len(ramb36))
		for _, r := range ramb36 {
			r36, ok := r.(*RAMB36E1)
			if !ok {
				continue
			}
			d.ramb18 = append(d.ramb18, NewRAMB18E1(r36, false), NewRAMB18E1(r36, true))
		}
	}
	return d
}

// FrameSizeBytes returns the device's configuration frame size in bytes.
func (d *Device) FrameSizeBytes() uint64 { return uint64(d.padding.FrameSizeWords) * 4 }

// ReadbackLeadingPaddingBytes returns the number of bytes an FDRO readback
// prepends ahead of a SLR's real frame data: one frame's worth of pipeline
// latency plus any family-specific extra pipeline words.
func (d *Device) ReadbackLeadingPaddingBytes() uint64 {
	return uint64(d.padding.FrameSizeWords+d.padding.FrontPipelineWords) * 4
}

// ReadbackTrailingPaddingBytes returns the number of bytes an FDRO readback
// appends after a SLR's real frame data.
func (d *Device) ReadbackTrailingPaddingBytes() uint64 {
	return uint64(d.padding.BackPaddingWords) * 4
}

// ReadbackBackSyncWords returns how many of ReadbackTrailingPaddingBytes
// are literal dummy sync words rather than frame data.
func (d *Device) ReadbackBackSyncWords() uint { return d.padding.BackSyncWords }

// BRAMs returns every known tile of the given category.
func (d *Device) BRAMs(cat BRAMCategory) []BRAM {
	if cat == CategoryRAMB18 {
		return d.ramb18
	}
	return d.ramb36
}

// BRAMByLoc finds the tile of the given category at (x, y).
func (d *Device) BRAMByLoc(cat BRAMCategory, x, y uint) (BRAM, error) {
	for _, r := range d.BRAMs(cat) {
		if r.X() == x && r.Y() == y {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s tile at X%dY%d on %s", ErrUnknownDevice, cat, x, y, d.Name)
}

var (
	devicesByIDCode = map[uint32]*Device{}
	devicesByName   = map[string]*Device{}
)

// RegisterDevice adds d to the process-wide device catalog. It panics on a
// duplicate name or IDCODE, since that can only indicate a programming
// error in this package's own catalog (mirrors target.Register's
// duplicate-registration panic).
func RegisterDevice(d *Device) {
	if _, dup := devicesByIDCode[d.IDCode]; dup {
		panic(fmt.Sprintf("xilinx: duplicate device IDCODE %#08x (%s)", d.IDCode, d.Name))
	}
	if _, dup := devicesByName[d.Name]; dup {
		panic(fmt.Sprintf("xilinx: duplicate device name %q", d.Name))
	}
	devicesByIDCode[d.IDCode] = d
	devicesByName[d.Name] = d
}

// DeviceByIDCode looks up a catalog entry by its exact 32-bit IDCODE.
func DeviceByIDCode(idcode uint32) (*Device, error) {
	d, ok := devicesByIDCode[idcode]
	if !ok {
		return nil, fmt.Errorf("%w: idcode %#08x", ErrUnknownDevice, idcode)
	}
	return d, nil
}

// DeviceByName looks up a catalog entry by its part name (e.g. "xc7z020").
func DeviceByName(name string) (*Device, error) {
	d, ok := devicesByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: part %q", ErrUnknownDevice, name)
	}
	return d, nil
}
