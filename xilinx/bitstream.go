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

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// SLR describes one super-logic-region's frame data within a parsed
// bitstream: its IDCODE (if one was written) and the [start, end) byte
// range, relative to the Bitstream's own buffer, holding its frame data.
type SLR struct {
	Index          int
	IDCode         uint32
	HasIDCode      bool
	FrameDataStart int
	FrameDataEnd   int
}

func (s SLR) frameData(raw []byte) *FrameData {
	return NewFrameData(raw[s.FrameDataStart:s.FrameDataEnd])
}

// Bitstream is a parsed Xilinx configuration bitstream or readback
// capture. It owns the raw byte buffer it was parsed from; Edit and the
// bit accessors mutate that buffer in place.
//
// Grounded on bitstream.cpp's two-pass construction: pass 1 walks the
// whole stream once via ConfigEngine, recording one SLR entry per
// FDRI/FDRO write/read; pass 2 retains only the entries that actually
// carried frame data, mirroring the C++ reference's "formal SLR" filter.
type Bitstream struct {
	raw        []byte
	slrs       []SLR
	isReadback bool

	mainIDCode    uint32
	hasMainIDCode bool
}

type slrAccum struct {
	idcode             uint32
	hasIDCode          bool
	fdriStart, fdriEnd int
	fdroStart, fdroEnd int
	sawFDRI, sawFDRO   bool
}

func parseSLRs(data []byte, acceptReadback bool) ([]SLR, error) {
	accum := map[int]*slrAccum{}
	get := func(idx int) *slrAccum {
		a, ok := accum[idx]
		if !ok {
			a = &slrAccum{}
			accum[idx] = a
		}
		return a
	}

	eng := &ConfigEngine{}
	eng.Hooks.OnWrite = func(ctx *EngineContext, p Packet) error {
		if p.Register == RegIDCODE {
			a := get(ctx.SLRIndex)
			a.idcode, a.hasIDCode = ctx.IDCode()
		}
		return nil
	}
	eng.Hooks.OnRead = func(ctx *EngineContext, p Packet) error {
		if p.Register != RegFDRO {
			return nil
		}
		if !acceptReadback {
			return fmt.Errorf("%w: FDRO read present but readback was not requested", ErrUnsupportedBitstream)
		}
		a := get(ctx.SLRIndex)
		if a.sawFDRI {
			return fmt.Errorf("%w: mixed FDRI write and FDRO read in the same SLR", ErrUnsupportedBitstream)
		}
		start, end := ctx.AbsolutePayloadRange(p)
		a.fdroStart, a.fdroEnd = start, end
		a.sawFDRO = true
		return nil
	}
	eng.Hooks.OnFrameData = func(ctx *EngineContext, p Packet, _ uint32) error {
		if p.Register != RegFDRI {
			return nil
		}
		a := get(ctx.SLRIndex)
		if a.sawFDRO {
			return fmt.Errorf("%w: mixed FDRI write and FDRO read in the same SLR", ErrUnsupportedBitstream)
		}
		start, end := ctx.AbsolutePayloadRange(p)
		a.fdriStart, a.fdriEnd = start, end
		a.sawFDRI = true
		return nil
	}

	if err := eng.Process(data); err != nil {
		return nil, err
	}

	indices := make([]int, 0, len(accum))
	for idx := range accum {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	slrs := make([]SLR, 0, len(indices))
	fromFDRO := make([]bool, 0, len(indices))
	for _, idx := range indices {
		a := accum[idx]

		var start, end int
		switch {
		case a.sawFDRI:
			start, end = a.fdriStart, a.fdriEnd
		case a.sawFDRO:
			start, end = a.fdroStart, a.fdroEnd
		default:
			continue // no frame data in this SLR context; not a "formal" SLR
		}
		if end <= start {
			continue
		}

		slrs = append(slrs, SLR{
			Index:          len(slrs),
			IDCode:         a.idcode,
			HasIDCode:      a.hasIDCode,
			FrameDataStart: start,
			FrameDataEnd:   end,
		})
		fromFDRO = append(fromFDRO, a.sawFDRO)
	}

	if len(slrs) == 0 {
		return nil, fmt.Errorf("%w: no SLR carries frame data", ErrUnsupportedBitstream)
	}

	if acceptReadback {
		if err := stripReadbackPadding(slrs, fromFDRO); err != nil {
			return nil, err
		}
	}
	return slrs, nil
}

// stripReadbackPadding adjusts every FDRO-sourced SLR's recorded frame-data
// range to remove the device-specific readback pipeline padding an FDRO
// read captures alongside the real frame data. Grounded on bitstream.cpp's
// FDRO offset adjustment (readback_offset = fpga.frame_size(), subtracted
// from the leading edge of the captured region) and on its use of the
// bitstream's own outermost ("main") SLR IDCODE to resolve device padding
// for every SLR present, not each SLR's own IDCODE.
func stripReadbackPadding(slrs []SLR, fromFDRO []bool) error {
	if !slrs[0].HasIDCode {
		return nil // no main IDCODE on record; leave frame data as captured
	}
	dev, err := DeviceByIDCode(slrs[0].IDCode)
	if err != nil {
		return nil // unknown device; nothing to strip padding against
	}

	leading := int(dev.ReadbackLeadingPaddingBytes())
	trailing := int(dev.ReadbackTrailingPaddingBytes())
	if leading == 0 && trailing == 0 {
		return nil
	}

	for i := range slrs {
		if !fromFDRO[i] {
			continue
		}
		start := slrs[i].FrameDataStart + leading
		end := slrs[i].FrameDataEnd - trailing
		if start > end {
			return fmt.Errorf("%w: SLR %d readback payload shorter than %s's pipeline padding", ErrUnsupportedBitstream, slrs[i].Index, dev.Name)
		}
		slrs[i].FrameDataStart = start
		slrs[i].FrameDataEnd = end
	}
	return nil
}

// Load parses a plain (write-direction) configuration bitstream. FDRO
// reads are rejected; use LoadReadback for readback captures.
func Load(data []byte) (*Bitstream, error) {
	slrs, err := parseSLRs(data, false)
	if err != nil {
		return nil, err
	}
	bs := &Bitstream{raw: data, slrs: slrs}
	bs.captureMainIDCode()
	return bs, nil
}

// LoadReadback parses a readback capture (FDRO reads carry the frame
// data instead of FDRI writes).
func LoadReadback(data []byte) (*Bitstream, error) {
	slrs, err := parseSLRs(data, true)
	if err != nil {
		return nil, err
	}
	bs := &Bitstream{raw: data, slrs: slrs, isReadback: true}
	bs.captureMainIDCode()
	return bs, nil
}

// LoadReadbackFrom derives a readback-shaped Bitstream directly from an
// already-parsed reference (typically the plain bitstream that was sent
// to the device before performing the physical readback), without
// re-parsing raw readback bytes. If reference is already a readback, its
// SLR list is copied verbatim, matching bitstream.cpp's "reference is
// itself a readback" fast path; otherwise contiguous frame-data slices of
// data are sized from the reference's SLR frame sizes.
func LoadReadbackFrom(data []byte, reference *Bitstream) (*Bitstream, error) {
	bs := &Bitstream{raw: data, isReadback: true}

	if reference.isReadback {
		bs.slrs = append([]SLR(nil), reference.slrs...)
		bs.mainIDCode, bs.hasMainIDCode = reference.mainIDCode, reference.hasMainIDCode
		return bs, nil
	}

	offset := 0
	for _, ref := range reference.slrs {
		size := ref.FrameDataEnd - ref.FrameDataStart
		if offset+size > len(data) {
			return nil, fmt.Errorf("%w: readback data shorter than reference frame data", ErrOutOfBounds)
		}
		bs.slrs = append(bs.slrs, SLR{
			Index:          ref.Index,
			IDCode:         ref.IDCode,
			HasIDCode:      ref.HasIDCode,
			FrameDataStart: offset,
			FrameDataEnd:   offset + size,
		})
		offset += size
	}
	bs.mainIDCode, bs.hasMainIDCode = reference.mainIDCode, reference.hasMainIDCode
	return bs, nil
}

func (bs *Bitstream) captureMainIDCode() {
	if len(bs.slrs) == 0 {
		return
	}
	bs.mainIDCode, bs.hasMainIDCode = bs.slrs[0].IDCode, bs.slrs[0].HasIDCode
}

// SLRs returns every SLR found in the bitstream, outermost first.
func (bs *Bitstream) SLRs() []SLR { return bs.slrs }

// IsReadback reports whether this Bitstream was parsed as a readback
// capture.
func (bs *Bitstream) IsReadback() bool { return bs.isReadback }

// MainIDCode returns the IDCODE written in the first (outermost) SLR
// context, used to resolve which Device's frame-data padding rules apply
// when converting between write and readback shapes.
func (bs *Bitstream) MainIDCode() (uint32, bool) { return bs.mainIDCode, bs.hasMainIDCode }

// Bytes returns the Bitstream's backing buffer. Mutating it outside of
// Edit is the caller's responsibility to keep consistent with the parsed
// SLR table.
func (bs *Bitstream) Bytes() []byte { return bs.raw }

// FrameData returns a bit accessor over the given SLR's frame data.
func (bs *Bitstream) FrameData(slr int) (*FrameData, error) {
	if slr < 0 || slr >= len(bs.slrs) {
		return nil, fmt.Errorf("%w: slr index %d", ErrOutOfBounds, slr)
	}
	return bs.slrs[slr].frameData(bs.raw), nil
}

// DeviceForSLR resolves the catalog Device for the given SLR's IDCODE.
func (bs *Bitstream) DeviceForSLR(slr int) (*Device, error) {
	if slr < 0 || slr >= len(bs.slrs) {
		return nil, fmt.Errorf("%w: slr index %d", ErrOutOfBounds, slr)
	}
	if !bs.slrs[slr].HasIDCode {
		return nil, fmt.Errorf("%w: SLR %d carries no IDCODE", ErrIdcodeMismatch, slr)
	}
	return DeviceByIDCode(bs.slrs[slr].IDCode)
}

// EditFunc is invoked once per packet by Edit. raw is the packet's byte
// range view, sliced from the Bitstream's own backing buffer: writes to
// it mutate the bitstream directly.
type EditFunc func(p Packet, raw []byte) error

// Edit re-parses the bitstream and invokes fn once per packet, with a
// mutable slice over that packet's own bytes (header and payload
// inclusive). It does not interpret FAR/IDCODE/CMD side effects; use
// ConfigEngine directly for edits that need controller state.
func (bs *Bitstream) Edit(fn EditFunc) error {
	return ParsePackets(bs.raw, func(p Packet) (bool, error) {
		if err := fn(p, bs.raw[p.ByteRange[0]:p.ByteRange[1]]); err != nil {
			return false, err
		}
		return true, nil
	})
}

// StripCRCChecks rewrites every CRC-register write-check packet (a
// single-word Type-1 write to CRC) into two Type-1 NOP words of equal
// total length, disabling the configuration engine's CRC verification
// without touching the bitstream's length or alignment.
func (bs *Bitstream) StripCRCChecks() error {
	return bs.Edit(func(p Packet, raw []byte) error {
		if p.Register != RegCRC || p.Op != OpWrite {
			return nil
		}
		if p.Kind != HeaderType1 || p.WordCount != 1 || len(raw) != 8 {
			return fmt.Errorf("%w: at offset %d", ErrMalformedCrcPacket, p.ByteOffset)
		}

		const type1Nop uint32 = 0b001 << 29 // op=NOP(00), register=CRC(0), word_count=0
		binary.BigEndian.PutUint32(raw[0:4], type1Nop)
		binary.BigEndian.PutUint32(raw[4:8], type1Nop)
		return nil
	})
}

// Save returns the Bitstream's current byte contents (a plain bitstream,
// or a readback capture if loaded as one). It returns the backing buffer
// exactly as parsed: for a readback capture, that buffer already had its
// device-specific pipeline padding stripped out of each SLR's recorded
// frame-data range by parseSLRs, but the raw bytes outside that range
// (including the padding itself) are untouched and still present.
func (bs *Bitstream) Save() []byte {
	out := make([]byte, len(bs.raw))
	copy(out, bs.raw)
	return out
}

// SaveAsReadback emits the concatenation of every SLR's frame data, in
// SLR order, with no header/sync/trailer framing and no pipeline padding.
// This mirrors save_as_readback's documented limitation in the reference
// implementation: some devices require extra pipeline words or a padding
// frame around each SLR's data that this function does not reconstruct.
func (bs *Bitstream) SaveAsReadback() []byte {
	var total int
	for _, s := range bs.slrs {
		total += s.FrameDataEnd - s.FrameDataStart
	}

	out := make([]byte, 0, total)
	for _, s := range bs.slrs {
		out = append(out, bs.raw[s.FrameDataStart:s.FrameDataEnd]...)
	}
	return out
}
