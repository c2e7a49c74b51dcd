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

// BRAMCategory distinguishes the physical block RAM families a tile
// belongs to.
type BRAMCategory int

const (
	CategoryRAMB18 BRAMCategory = iota
	CategoryRAMB36
)

func (c BRAMCategory) String() string {
	if c == CategoryRAMB18 {
		return "RAMB18"
	}
	return "RAMB36"
}

// BRAM describes one block RAM tile's location and bit-mapping into a
// bitstream's frame data. Implementations are immutable value descriptors;
// the catalog in devices_*.go builds them once at init time.
type BRAM interface {
	// Primitive names the concrete macro this tile implements, e.g.
	// "RAMB36E1".
	Primitive() string
	X() uint
	Y() uint
	SLR() uint
	NumWords() uint
	DataBits() uint
	ParityBits() uint
	Category() BRAMCategory
	// BitstreamOffset is the bit offset, relative to the start of the
	// owning SLR's frame data, of this tile's first configuration bit.
	BitstreamOffset() uint64
	// MapToBitstream maps a RAM-relative data or parity bit address to
	// an absolute bit offset within the SLR's frame data (i.e. already
	// including BitstreamOffset).
	MapToBitstream(bitAddr uint64, isParity bool) uint64
}

// bramBase holds the fields common to every BRAM tile description.
type bramBase struct {
	x, y            uint
	slr             uint
	numWords        uint
	dataBits        uint
	parityBits      uint
	category        BRAMCategory
	bitstreamOffset uint64
}

func (b *bramBase) X() uint                    { return b.x }
func (b *bramBase) Y() uint                    { return b.y }
func (b *bramBase) SLR() uint                  { return b.slr }
func (b *bramBase) NumWords() uint             { return b.numWords }
func (b *bramBase) DataBits() uint             { return b.dataBits }
func (b *bramBase) ParityBits() uint           { return b.parityBits }
func (b *bramBase) Category() BRAMCategory     { return b.category }
func (b *bramBase) BitstreamOffset() uint64    { return b.bitstreamOffset }

// RAMB36E1 is a full 36Kb block RAM tile on a Series-7 device.
type RAMB36E1 struct {
	bramBase
}

// NewRAMB36E1 describes a RAMB36E1 tile at (x, y) whose configuration data
// begins at bitstreamOffset bits into SLR slr's frame data.
func NewRAMB36E1(x, y uint, bitstreamOffset uint64, slr uint) *RAMB36E1 {
	return &RAMB36E1{bramBase{
		x: x, y: y, slr: slr,
		numWords: 1024, dataBits: 32, parityBits: 4,
		category:        CategoryRAMB36,
		bitstreamOffset: bitstreamOffset,
	}}
}

func (r *RAMB36E1) Primitive() string { return "RAMB36E1" }

// ramb36e1GroupL / ramb36e1GroupH / ramb36e1GroupP are verbatim lookup
// tables reconstructed from synthesized logic-location information for an
// XC7Z020 device; see original notes for the reverse-engineering method.
var (
	ramb36e1GroupL = [16]uint64{
		0x00, 0x08, 0x04, 0x0C, 0x01, 0x09, 0x05, 0x0D,
		0x02, 0x0A, 0x06, 0x0E, 0x03, 0x0B, 0x07, 0x0F,
	}
	ramb36e1GroupH = [16]uint64{
		0x00, 0x0B, 0x01, 0x0C, 0x02, 0x0D, 0x03, 0x0E,
		0x05, 0x10, 0x06, 0x11, 0x07, 0x12, 0x08, 0x13,
	}
	ramb36e1GroupP = [2]uint64{0x04, 0x0F}
)

const ramb36e1BlockScale = 0xCA

func ramb36e1MapDataBit(off uint64) uint64 {
	base := (off/256)*ramb36e1BlockScale + ramb36e1GroupH[off&0xF]
	return (base << 4) + ramb36e1GroupL[(off>>4)&0xF]
}

func ramb36e1MapParityBit(off uint64) uint64 {
	base := (off/32)*ramb36e1BlockScale + ramb36e1GroupP[off&0x1]
	return (base << 4) + ramb36e1GroupL[(off>>1)&0xF]
}

func (r *RAMB36E1) MapToBitstream(bitAddr uint64, isParity bool) uint64 {
	if isParity {
		return r.bitstreamOffset + ramb36e1MapParityBit(bitAddr)
	}
	return r.bitstreamOffset + ramb36e1MapDataBit(bitAddr)
}

// RAMB18E1 is a half-height 18Kb block RAM, physically the top or bottom
// half of an enclosing RAMB36E1 tile. It delegates bit mapping to that
// tile rather than owning its own mapping table.
type RAMB18E1 struct {
	bramBase
	parent *RAMB36E1
	isTop  bool
}

// NewRAMB18E1 describes a RAMB18E1 occupying the top or bottom half of
// parent.
func NewRAMB18E1(parent *RAMB36E1, isTop bool) *RAMB18E1 {
	y := 2*parent.Y()
	if isTop {
		y++
	}
	return &RAMB18E1{
		bramBase: bramBase{
			x: parent.X(), y: y, slr: parent.SLR(),
			numWords: 1024, dataBits: 16, parityBits: 2,
			category:        CategoryRAMB18,
			bitstreamOffset: parent.BitstreamOffset(),
		},
		parent: parent,
		isTop:  isTop,
	}
}

func (r *RAMB18E1) Primitive() string { return "RAMB18E1" }

func (r *RAMB18E1) MapToBitstream(bitAddr uint64, isParity bool) uint64 {
	if isParity {
		off := bitAddr
		if r.isTop {
			off += 2048
		}
		return r.parent.MapToBitstream(off, true)
	}
	off := bitAddr
	if r.isTop {
		off += 16384
	}
	return r.parent.MapToBitstream(off, false)
}

// RAMB36E2 is a full 36Kb block RAM tile on an UltraScale+ device.
type RAMB36E2 struct {
	bramBase
}

// NewRAMB36E2 describes a RAMB36E2 tile at (x, y) whose configuration data
// begins at bitstreamOffset bits into SLR slr's frame data.
func NewRAMB36E2(x, y uint, bitstreamOffset uint64, slr uint) *RAMB36E2 {
	return &RAMB36E2{bramBase{
		x: x, y: y, slr: slr,
		numWords: 1024, dataBits: 32, parityBits: 4,
		category:        CategoryRAMB36,
		bitstreamOffset: bitstreamOffset,
	}}
}

func (r *RAMB36E2) Primitive() string { return "RAMB36E2" }

// ramb36e2DataTable / ramb36e2ParityTable are verbatim lookup tables
// reconstructed the same way as the Series-7 tables, for UltraScale+'s
// wider (128-entry data / 16-entry parity) block structure.
var ramb36e2DataTable = [128]uint64{
	0x00, 0x84, 0x0C, 0x90, 0x18, 0x9C, 0x24, 0xA8,
	0x3C, 0xC0, 0x48, 0xCC, 0x54, 0xD8, 0x60, 0xE4,
	0x06, 0x8A, 0x12, 0x96, 0x1E, 0xA2, 0x2A, 0xAE,
	0x42, 0xC6, 0x4E, 0xD2, 0x5A, 0xDE, 0x66, 0xEA,
	0x03, 0x87, 0x0F, 0x93, 0x1B, 0x9F, 0x27, 0xAB,
	0x3F, 0xC3, 0x4B, 0xCF, 0x57, 0xDB, 0x63, 0xE7,
	0x09, 0x8D, 0x15, 0x99, 0x21, 0xA5, 0x2D, 0xB1,
	0x45, 0xC9, 0x51, 0xD5, 0x5D, 0xE1, 0x69, 0xED,
	0x02, 0x86, 0x0E, 0x92, 0x1A, 0x9E, 0x26, 0xAA,
	0x3E, 0xC2, 0x4A, 0xCE, 0x56, 0xDA, 0x62, 0xE6,
	0x08, 0x8C, 0x14, 0x98, 0x20, 0xA4, 0x2C, 0xB0,
	0x44, 0xC8, 0x50, 0xD4, 0x5C, 0xE0, 0x68, 0xEC,
	0x05, 0x89, 0x11, 0x95, 0x1D, 0xA1, 0x29, 0xAD,
	0x41, 0xC5, 0x4D, 0xD1, 0x59, 0xDD, 0x65, 0xE9,
	0x0B, 0x8F, 0x17, 0x9B, 0x23, 0xA7, 0x2F, 0xB3,
	0x47, 0xCB, 0x53, 0xD7, 0x5F, 0xE3, 0x6B, 0xEF,
}

var ramb36e2ParityTable = [16]uint64{
	0x30, 0xB4, 0x36, 0xBA, 0x33, 0xB7, 0x39, 0xBD,
	0x32, 0xB6, 0x38, 0xBC, 0x35, 0xB9, 0x3B, 0xBF,
}

const ramb36e2BlockScale = 0xBA0

func ramb36e2MapDataBit(off uint64) uint64 {
	return (off>>7)*ramb36e2BlockScale + ramb36e2DataTable[off&0x7F]
}

func ramb36e2MapParityBit(off uint64) uint64 {
	return (off>>4)*ramb36e2BlockScale + ramb36e2ParityTable[off&0xF]
}

func (r *RAMB36E2) MapToBitstream(bitAddr uint64, isParity bool) uint64 {
	if isParity {
		return r.bitstreamOffset + ramb36e2MapParityBit(bitAddr)
	}
	return r.bitstreamOffset + ramb36e2MapDataBit(bitAddr)
}

// ExtractBits reads every data (or parity) bit of ram out of fd, packing
// them LSB-first into the returned byte slice, bit-address 0 first.
func ExtractBits(ram BRAM, fd *FrameData, parity bool) ([]byte, error) {
	numBits := int(ram.NumWords()) * bitsPerWord(ram, parity)
	out := make([]byte, (numBits+7)/8)

	for i := 0; i < numBits; i++ {
		mapped := ram.MapToBitstream(uint64(i), parity)
		bit, err := fd.ReadBit(mapped)
		if err != nil {
			return nil, err
		}
		if bit {
			out[i/8] |= 1 << (uint(i) % 8)
		}
	}
	return out, nil
}

// InjectBits writes every data (or parity) bit of data into fd at the
// locations ram.MapToBitstream describes, LSB-first, bit-address 0 first.
func InjectBits(ram BRAM, fd *FrameData, parity bool, data []byte) error {
	numBits := int(ram.NumWords()) * bitsPerWord(ram, parity)
	for i := 0; i < numBits; i++ {
		byteIdx := i / 8
		var bit bool
		if byteIdx < len(data) {
			bit = data[byteIdx]&(1<<(uint(i)%8)) != 0
		}
		mapped := ram.MapToBitstream(uint64(i), parity)
		if err := fd.WriteBit(mapped, bit); err != nil {
			return err
		}
	}
	return nil
}

func bitsPerWord(ram BRAM, parity bool) int {
	if parity {
		return int(ram.ParityBits())
	}
	return int(ram.DataBits())
}
