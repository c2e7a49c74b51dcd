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

package mmi

import (
	"fmt"

	"github.com/erincandescent/unbit/xilinx"
)

// ErrUnsupportedParity is returned by Mapper operations that touch a
// BitLane with parity bits enabled. Parity-bit address mapping is not
// implemented by this package; see DESIGN.md. It wraps
// xilinx.ErrUnsupportedParity.
var ErrUnsupportedParity = fmt.Errorf("mmi: %w", xilinx.ErrUnsupportedParity)

// ErrAddressOutOfRange is returned when a requested processor byte address
// falls outside every lane of every region in the memory map. It wraps
// xilinx.ErrUnmappedAddress.
var ErrAddressOutOfRange = fmt.Errorf("mmi: %w", xilinx.ErrUnmappedAddress)

// Mapper resolves processor-visible bit addresses, as described by a
// MemoryMap, down to bits within a catalog Device's block RAM tiles and a
// bitstream SLR's frame data.
//
// Grounded on mmi_cpu_memory_map.cpp's map_bit_address: a bit address
// resolves to its enclosing AddressSpace by absolute byte range, then
// within that space to the BitLane whose [DataLSB, DataMSB] covers the
// bit's offset within the space's word, then to a local bit position
// within that lane's tile via lane_word_size = msb-lsb+1.
type Mapper struct {
	device *xilinx.Device
	mm     *MemoryMap
}

// NewMapper builds a Mapper over device's BRAM catalog and mm's lane
// descriptions.
func NewMapper(device *xilinx.Device, mm *MemoryMap) *Mapper {
	return &Mapper{device: device, mm: mm}
}

func categoryFor(memType string) xilinx.BRAMCategory {
	switch memType {
	case "RAMB18", "RAMB18E1":
		return xilinx.CategoryRAMB18
	default:
		return xilinx.CategoryRAMB36
	}
}

// resolve implements spec §4.H steps 1-4: locate the address space
// containing bitAddr, the lane within it covering bitAddr's bit-in-word
// offset, and the resulting local bit position within that lane's tile.
func (m *Mapper) resolve(bitAddr uint64) (BitLane, uint64, error) {
	byteAddr := bitAddr / 8

	for _, space := range m.mm.Regions {
		if byteAddr < space.StartByteAddr || byteAddr > space.EndByteAddr {
			continue
		}
		if space.WordSizeBits == 0 {
			return BitLane{}, 0, fmt.Errorf("mmi: address space %q has zero word size", space.Name)
		}

		wordBitOffset := bitAddr - space.StartByteAddr*8
		wordSize := uint64(space.WordSizeBits)
		wordIndex := wordBitOffset / wordSize
		bitInWord := uint(wordBitOffset % wordSize)

		for _, lane := range space.Lanes {
			if bitInWord < lane.DataLSB || bitInWord > lane.DataMSB {
				continue
			}
			laneWordSize := uint64(lane.Width())
			localBit := wordIndex*laneWordSize + uint64(bitInWord) - uint64(lane.DataLSB)
			return lane, localBit, nil
		}
		return BitLane{}, 0, fmt.Errorf("%w: bit address %#x (space %q)", ErrAddressOutOfRange, bitAddr, space.Name)
	}
	return BitLane{}, 0, fmt.Errorf("%w: bit address %#x", ErrAddressOutOfRange, bitAddr)
}

func (m *Mapper) resolveBit(bitAddr uint64) (uint64, error) {
	lane, localBit, err := m.resolve(bitAddr)
	if err != nil {
		return 0, err
	}
	if lane.ParityOn {
		return 0, ErrUnsupportedParity
	}

	ram, err := m.device.BRAMByLoc(categoryFor(lane.MemType), lane.Placement.X, lane.Placement.Y)
	if err != nil {
		return 0, err
	}
	return ram.MapToBitstream(localBit, false), nil
}

// ReadByte reads the byte at the given processor byte address out of fd,
// as 8 successive bit operations at (byteAddr·8 + i), LSB-first.
func (m *Mapper) ReadByte(fd *xilinx.FrameData, byteAddr uint64) (byte, error) {
	var out byte
	for i := uint(0); i < 8; i++ {
		mapped, err := m.resolveBit(byteAddr*8 + uint64(i))
		if err != nil {
			return 0, err
		}
		v, err := fd.ReadBit(mapped)
		if err != nil {
			return 0, err
		}
		if v {
			out |= 1 << i
		}
	}
	return out, nil
}

// WriteByte writes value to the given processor byte address within fd,
// as 8 successive bit operations at (byteAddr·8 + i), LSB-first.
func (m *Mapper) WriteByte(fd *xilinx.FrameData, byteAddr uint64, value byte) error {
	for i := uint(0); i < 8; i++ {
		mapped, err := m.resolveBit(byteAddr*8 + uint64(i))
		if err != nil {
			return err
		}
		if err := fd.WriteBit(mapped, value&(1<<i) != 0); err != nil {
			return err
		}
	}
	return nil
}

// ReadImage reads length bytes starting at baseAddr, byte by byte via
// ReadByte.
func (m *Mapper) ReadImage(fd *xilinx.FrameData, baseAddr uint64, length int) ([]byte, error) {
	out := make([]byte, length)
	for i := range out {
		b, err := m.ReadByte(fd, baseAddr+uint64(i))
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}

// WriteImage writes data starting at baseAddr, byte by byte via WriteByte.
func (m *Mapper) WriteImage(fd *xilinx.FrameData, baseAddr uint64, data []byte) error {
	for i, b := range data {
		if err := m.WriteByte(fd, baseAddr+uint64(i), b); err != nil {
			return fmt.Errorf("offset %d: %w", i, err)
		}
	}
	return nil
}
