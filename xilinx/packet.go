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

// SyncWord is the 32-bit configuration frame synchronization word that
// begins every Xilinx Series-7/UltraScale+ configuration stream.
const SyncWord uint32 = 0xAA995566

// Op is a configuration packet opcode.
type Op uint8

const (
	OpNop Op = iota
	OpRead
	OpWrite
	OpReserved
)

func (o Op) String() string {
	switch o {
	case OpNop:
		return "NOP"
	case OpRead:
		return "Read"
	case OpWrite:
		return "Write"
	case OpReserved:
		return "Reserved"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// HeaderKind distinguishes Type-1 and Type-2 configuration packet headers
// from a bare SYNC word encountered where a header is expected.
type HeaderKind uint8

const (
	HeaderType1 HeaderKind = 1
	HeaderType2 HeaderKind = 2
	HeaderSync  HeaderKind = 3
)

func (k HeaderKind) String() string {
	switch k {
	case HeaderType1:
		return "Type1"
	case HeaderType2:
		return "Type2"
	case HeaderSync:
		return "Sync"
	default:
		return fmt.Sprintf("HeaderKind(%d)", uint8(k))
	}
}

// Register identifies a configuration register by its 5-bit code.
type Register uint8

const (
	RegCRC     Register = 0
	RegFAR     Register = 1
	RegFDRI    Register = 2
	RegFDRO    Register = 3
	RegCMD     Register = 4
	RegCTL0    Register = 5
	RegMASK    Register = 6
	RegSTAT    Register = 7
	RegLOUT    Register = 8
	RegCOR0    Register = 9
	RegMFWR    Register = 10
	RegCBC     Register = 11
	RegIDCODE  Register = 12
	RegAXSS    Register = 13
	RegCOR1    Register = 14
	RegWBSTAR  Register = 16
	RegTIMER   Register = 17
	RegBOOTSTS Register = 22
	RegCTL1    Register = 24
	RegRSVD30  Register = 30 // "switch-SLR": non-empty payload recurses into a nested SLR stream
	RegBSPI    Register = 31
)

func (r Register) String() string {
	switch r {
	case RegCRC:
		return "CRC"
	case RegFAR:
		return "FAR"
	case RegFDRI:
		return "FDRI"
	case RegFDRO:
		return "FDRO"
	case RegCMD:
		return "CMD"
	case RegCTL0:
		return "CTL0"
	case RegMASK:
		return "MASK"
	case RegSTAT:
		return "STAT"
	case RegLOUT:
		return "LOUT"
	case RegCOR0:
		return "COR0"
	case RegMFWR:
		return "MFWR"
	case RegCBC:
		return "CBC"
	case RegIDCODE:
		return "IDCODE"
	case RegAXSS:
		return "AXSS"
	case RegCOR1:
		return "COR1"
	case RegWBSTAR:
		return "WBSTAR"
	case RegTIMER:
		return "TIMER"
	case RegBOOTSTS:
		return "BOOTSTS"
	case RegCTL1:
		return "CTL1"
	case RegRSVD30:
		return "RSVD30"
	case RegBSPI:
		return "BSPI"
	default:
		return fmt.Sprintf("RSVD%d", uint8(r))
	}
}

// Cmd identifies a value written to the CMD register.
type Cmd uint8

const (
	CmdNul      Cmd = 0
	CmdWcfg     Cmd = 1
	CmdMfw      Cmd = 2
	CmdDghigh   Cmd = 3
	CmdRcfg     Cmd = 4
	CmdStart    Cmd = 5
	CmdUram     Cmd = 6
	CmdRcrc     Cmd = 7
	CmdAghigh   Cmd = 8
	CmdSwitch   Cmd = 9
	CmdGrestore Cmd = 10
	CmdShutdown Cmd = 11
	CmdDesync   Cmd = 13
	CmdIprog    Cmd = 15
	CmdCrcc     Cmd = 16
	CmdLtimer   Cmd = 17
	CmdBspiRead Cmd = 18
	CmdFallEdge Cmd = 19
)

func (c Cmd) String() string {
	switch c {
	case CmdNul:
		return "NUL"
	case CmdWcfg:
		return "WCFG"
	case CmdMfw:
		return "MFW"
	case CmdDghigh:
		return "DGHIGH"
	case CmdRcfg:
		return "RCFG"
	case CmdStart:
		return "START"
	case CmdUram:
		return "URAM"
	case CmdRcrc:
		return "RCRC"
	case CmdAghigh:
		return "AGHIGH"
	case CmdSwitch:
		return "SWITCH"
	case CmdGrestore:
		return "GRESTORE"
	case CmdShutdown:
		return "SHUTDOWN"
	case CmdDesync:
		return "DESYNC"
	case CmdIprog:
		return "IPROG"
	case CmdCrcc:
		return "CRCC"
	case CmdLtimer:
		return "LTIMER"
	case CmdBspiRead:
		return "BSPI_READ"
	case CmdFallEdge:
		return "FALL_EDGE"
	default:
		return fmt.Sprintf("CMD(%d)", uint8(c))
	}
}

// Packet is a decoded configuration packet: a Type-1 or Type-2 header plus
// its payload words. ByteRange gives the packet's [start, end) byte extent
// (header inclusive) within the stream it was parsed from, which callers
// such as Bitstream.Edit use to mutate the backing buffer in place.
type Packet struct {
	Kind       HeaderKind
	Op         Op
	Register   Register
	WordCount  uint32
	ByteOffset int // offset of the header's first byte within the stream
	ByteRange  [2]int
	PayloadOffset int // offset of Payload's first byte within the stream
	Payload    []byte // raw big-endian payload words, length = WordCount*4
}

// decodeHeader splits a raw 32-bit header word into its fields. A bare
// SYNC word decodes as HeaderSync with no further fields; ok is false if
// hdr is neither the SYNC word nor a Type-1/Type-2 header.
func decodeHeader(hdr uint32) (kind HeaderKind, op Op, reg Register, wordCount uint32, ok bool) {
	if hdr == SyncWord {
		return HeaderSync, 0, 0, 0, true
	}
	switch hdr >> 29 {
	case 0b001:
		return HeaderType1, Op((hdr >> 27) & 0x3), Register((hdr >> 13) & 0x1F), hdr & 0x7FF, true
	case 0b010:
		return HeaderType2, Op((hdr >> 27) & 0x3), 0, hdr & 0x07FFFFFF, true
	default:
		return 0, 0, 0, 0, false
	}
}

// findSync scans data for the SYNC word, returning the byte offset of the
// first byte *after* it (i.e. the offset at which packet parsing begins).
// Series-7/UltraScale+ bitstreams often repeat the sync word immediately;
// matching the C++ reference parser's synchronize(), every consecutive
// duplicate of the first sync word found is skipped too, so parsing
// begins at the first non-sync word. A sync word encountered later in the
// stream (not immediately following the first) is not skipped here; it is
// tolerated instead by ParsePackets' main loop, exactly as parse_packet's
// own "silently tolerate SYNC packets" check does.
func findSync(data []byte) (int, error) {
	for i := 0; i+4 <= len(data); i++ {
		v := uint32(data[i])<<24 | uint32(data[i+1])<<16 | uint32(data[i+2])<<8 | uint32(data[i+3])
		if v == SyncWord {
			i += 4
			for i+4 <= len(data) {
				dup := uint32(data[i])<<24 | uint32(data[i+1])<<16 | uint32(data[i+2])<<8 | uint32(data[i+3])
				if dup != SyncWord {
					break
				}
				i += 4
			}
			return i, nil
		}
	}
	return 0, ErrSyncNotFound
}

// PacketHandler is invoked once per decoded packet by ParsePackets. It
// returns false to stop iteration early (e.g. once the caller has found
// what it was looking for).
type PacketHandler func(Packet) (bool, error)

// ParsePackets synchronizes to the start of the configuration stream in
// data and invokes fn for every packet until the data is exhausted, fn
// returns false, or a decode error occurs.
//
// Grounded on bitstream_engine.cpp's synchronize()+parse_packet() pair: a
// non-NOP Type-1 header with word_count == 0 must be immediately followed
// by a Type-2 header, whose word count (wide enough for payloads larger
// than Type-1's 11-bit field allows) applies to the Type-1's register; a
// Type-2 header anywhere else is rejected.
func ParsePackets(data []byte, fn PacketHandler) error {
	pos, err := findSync(data)
	if err != nil {
		return err
	}

	buf := newWordBuffer(data[pos:])
	wordPos := 0

	var pendingReg Register
	havePending := false

	for wordPos < buf.numWords() {
		hdrOff := pos + wordPos*4
		hdr, err := buf.word(wordPos)
		if err != nil {
			return err
		}
		wordPos++

		kind, op, reg, wordCount, ok := decodeHeader(hdr)
		if !ok {
			return fmt.Errorf("%w: offset %d header %#08x", ErrUnhandledPacket, hdrOff, hdr)
		}

		if kind == HeaderSync {
			// Silently tolerate a SYNC word wherever a header is expected,
			// matching parse_packet's own handling; it carries no payload
			// and does not satisfy a pending Type-1 zero-count lookahead.
			if havePending {
				return fmt.Errorf("%w: expected type-2 continuation at offset %d, found SYNC", ErrUnhandledPacket, hdrOff)
			}
			continue
		}

		if kind == HeaderType2 {
			if !havePending {
				return fmt.Errorf("%w: type-2 packet without preceding type-1 header at offset %d", ErrUnhandledPacket, hdrOff)
			}
			reg = pendingReg
		} else if havePending {
			return fmt.Errorf("%w: expected type-2 continuation at offset %d, found %v", ErrUnhandledPacket, hdrOff, kind)
		}
		havePending = false

		if kind == HeaderType1 && op != OpNop && wordCount == 0 {
			// Lookahead: the true word count is carried by the Type-2
			// packet that must immediately follow.
			havePending = true
			pendingReg = reg
			continue
		}

		payloadStart := pos + wordPos*4
		payloadEnd := payloadStart + int(wordCount)*4
		if payloadEnd > len(data) {
			return fmt.Errorf("%w: offset %d wants %d words", ErrPayloadOverflow, hdrOff, wordCount)
		}

		p := Packet{
			Kind:          kind,
			Op:            op,
			Register:      reg,
			WordCount:     wordCount,
			ByteOffset:    hdrOff,
			ByteRange:     [2]int{hdrOff, payloadEnd},
			PayloadOffset: payloadStart,
			Payload:       data[payloadStart:payloadEnd],
		}
		wordPos += int(wordCount)

		cont, err := fn(p)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}

	return nil
}
