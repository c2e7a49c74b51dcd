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

// Package mmi reads Xilinx Memory Map Information (.mmi) files: the XML
// side-channel that records which block RAM tiles implement a processor's
// addressable memories, so that a software image can be injected into (or
// extracted from) the right bits of a bitstream.
package mmi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jteeuwen/go-pkg-xmlx"
)

// Placement is the (X, Y) site coordinate of a block RAM tile, as printed
// in an MMI file's Placement attribute ("X3Y12").
type Placement struct {
	X, Y uint
}

func parsePlacement(s string) (Placement, error) {
	// Format: X<uint>Y<uint>
	xIdx := strings.IndexByte(s, 'X')
	yIdx := strings.IndexByte(s, 'Y')
	if xIdx != 0 || yIdx <= xIdx {
		return Placement{}, fmt.Errorf("mmi: malformed placement %q", s)
	}
	x, err := strconv.ParseUint(s[xIdx+1:yIdx], 10, 32)
	if err != nil {
		return Placement{}, fmt.Errorf("mmi: malformed placement %q: %w", s, err)
	}
	y, err := strconv.ParseUint(s[yIdx+1:], 10, 32)
	if err != nil {
		return Placement{}, fmt.Errorf("mmi: malformed placement %q: %w", s, err)
	}
	return Placement{X: uint(x), Y: uint(y)}, nil
}

// BitLane is a single <BitLane> element: the slice of one block RAM tile
// that backs part of an address space's word. AddrBegin/AddrEnd are the
// lane's own <AddressRange>, a word-address range relative to the
// enclosing AddressSpace; they describe the lane but, per
// mmi_cpu_memory_map.cpp's map_to_lane, play no part in bit resolution,
// which instead walks every lane of the space looking for one whose
// [DataLSB, DataMSB] covers the bit offset within the space's word.
type BitLane struct {
	MemType    string // e.g. "RAMB36", "RAMB18"
	Placement  Placement
	DataMSB    uint
	DataLSB    uint
	AddrBegin  uint64
	AddrEnd    uint64
	ParityOn   bool
	ParityBits uint
}

// Width returns the number of data bits this lane contributes per word
// (DataMSB - DataLSB + 1).
func (l BitLane) Width() uint { return l.DataMSB - l.DataLSB + 1 }

// AddressSpace is one <AddressSpace> element: a processor-visible byte
// range, the bit width of one word within it, and the bit lanes that
// together make up that word. Grounded on add_mmi_space
// (mmi_cpu_memory_map.cpp:147): WordSizeBits is not itself an XML
// attribute but is inferred as (max lane MSB - min lane LSB + 1) across
// every lane in the space.
type AddressSpace struct {
	Name          string
	StartByteAddr uint64
	EndByteAddr   uint64
	WordSizeBits  uint
	Lanes         []BitLane
}

// MemoryMap is the parsed contents of an MMI file's <MemInfo> root.
type MemoryMap struct {
	Regions []AddressSpace
}

// Load parses the MMI file at path.
func Load(path string) (*MemoryMap, error) {
	doc := xmlx.New()
	if err := doc.LoadFile(path, nil); err != nil {
		return nil, fmt.Errorf("mmi: %w", err)
	}
	return fromDocument(doc)
}

func fromDocument(doc *xmlx.Document) (*MemoryMap, error) {
	root := doc.SelectNode("", "MemInfo")
	if root == nil {
		return nil, fmt.Errorf("mmi: missing MemInfo root element")
	}

	mm := &MemoryMap{}
	for _, proc := range root.SelectNodesRecursive("", "Processor") {
		spaces := proc.SelectNodes("", "AddressSpace")
		if len(spaces) == 0 {
			// Older MMI variants place BusBlock/BitLane directly under a
			// MemoryArray with no intervening AddressSpace; treat the
			// MemoryArray itself as a single address space.
			spaces = proc.SelectNodes("", "MemoryArray")
		}
		for _, sp := range spaces {
			space, err := parseAddressSpace(proc, sp)
			if err != nil {
				return nil, err
			}
			mm.Regions = append(mm.Regions, space)
		}
	}
	return mm, nil
}

func parseAddressSpace(proc, sp *xmlx.Node) (AddressSpace, error) {
	name := sp.As("", "Name")
	if name == "" {
		name = proc.As("", "InstPath")
	}

	space := AddressSpace{Name: name}
	if b := sp.As("", "Begin"); b != "" {
		begin, err := strconv.ParseUint(b, 10, 64)
		if err != nil {
			return AddressSpace{}, fmt.Errorf("mmi: malformed AddressSpace Begin: %w", err)
		}
		space.StartByteAddr = begin
	}
	if e := sp.As("", "End"); e != "" {
		end, err := strconv.ParseUint(e, 10, 64)
		if err != nil {
			return AddressSpace{}, fmt.Errorf("mmi: malformed AddressSpace End: %w", err)
		}
		space.EndByteAddr = end
	}

	for _, bb := range sp.SelectNodes("", "BusBlock") {
		for _, bl := range bb.SelectNodes("", "BitLane") {
			lane, err := parseBitLane(bl)
			if err != nil {
				return AddressSpace{}, err
			}
			space.Lanes = append(space.Lanes, lane)
		}
	}

	// Infer the word size from the span of every lane's bit slice, as
	// add_mmi_space does: word_size = max(msb) - min(lsb) + 1.
	if len(space.Lanes) == 0 {
		return AddressSpace{}, fmt.Errorf("mmi: address space %q declares no bit lanes", name)
	}
	msb, lsb := uint(0), ^uint(0)
	for _, lane := range space.Lanes {
		if lane.DataMSB > msb {
			msb = lane.DataMSB
		}
		if lane.DataLSB < lsb {
			lsb = lane.DataLSB
		}
	}
	if msb < lsb {
		return AddressSpace{}, fmt.Errorf("mmi: address space %q has no feasible word size", name)
	}
	space.WordSizeBits = msb - lsb + 1
	if space.WordSizeBits%8 != 0 {
		return AddressSpace{}, fmt.Errorf("mmi: address space %q word size %d is not a multiple of 8 bits", name, space.WordSizeBits)
	}

	return space, nil
}

func parseBitLane(node *xmlx.Node) (BitLane, error) {
	lane := BitLane{MemType: node.As("", "MemType")}

	placement, err := parsePlacement(node.As("", "Placement"))
	if err != nil {
		return BitLane{}, err
	}
	lane.Placement = placement

	if dw := node.SelectNode("", "DataWidth"); dw != nil {
		msb, err := strconv.ParseUint(dw.As("", "MSB"), 10, 32)
		if err != nil {
			return BitLane{}, fmt.Errorf("mmi: malformed DataWidth MSB: %w", err)
		}
		lsb, err := strconv.ParseUint(dw.As("", "LSB"), 10, 32)
		if err != nil {
			return BitLane{}, fmt.Errorf("mmi: malformed DataWidth LSB: %w", err)
		}
		lane.DataMSB, lane.DataLSB = uint(msb), uint(lsb)
	}

	if ar := node.SelectNode("", "AddressRange"); ar != nil {
		begin, err := strconv.ParseUint(ar.As("", "Begin"), 10, 64)
		if err != nil {
			return BitLane{}, fmt.Errorf("mmi: malformed AddressRange Begin: %w", err)
		}
		end, err := strconv.ParseUint(ar.As("", "End"), 10, 64)
		if err != nil {
			return BitLane{}, fmt.Errorf("mmi: malformed AddressRange End: %w", err)
		}
		lane.AddrBegin, lane.AddrEnd = begin, end
	}

	if p := node.SelectNode("", "Parity"); p != nil {
		lane.ParityOn = p.As("", "ON") == "true" || p.As("", "ON") == "1"
		if lane.ParityOn {
			bits, err := strconv.ParseUint(p.As("", "NumBits"), 10, 32)
			if err != nil {
				return BitLane{}, fmt.Errorf("mmi: malformed Parity NumBits: %w", err)
			}
			lane.ParityBits = uint(bits)
		}
	}

	return lane, nil
}
