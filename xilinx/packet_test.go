package xilinx

import (
	"encoding/binary"
	"errors"
	"testing"
)

func bigEndianWords(words ...uint32) []byte {
	out := make([]byte, 4*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func type1Header(op Op, reg Register, wordCount uint32) uint32 {
	return (0b001 << 29) | (uint32(op) << 27) | (uint32(reg) << 13) | (wordCount & 0x7FF)
}

func type2Header(op Op, wordCount uint32) uint32 {
	return (0b010 << 29) | (uint32(op) << 27) | (wordCount & 0x07FFFFFF)
}

func TestParsePacketsDecodesType1Write(t *testing.T) {
	data := bigEndianWords(
		SyncWord,
		type1Header(OpWrite, RegFAR, 1),
		0x00001234,
	)

	var got []Packet
	err := ParsePackets(data, func(p Packet) (bool, error) {
		got = append(got, p)
		return true, nil
	})
	if err != nil {
		t.Fatalf("ParsePackets: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d packets, want 1", len(got))
	}
	p := got[0]
	if p.Kind != HeaderType1 || p.Op != OpWrite || p.Register != RegFAR || p.WordCount != 1 {
		t.Errorf("unexpected packet: %+v", p)
	}
	if binary.BigEndian.Uint32(p.Payload) != 0x00001234 {
		t.Errorf("payload = %x, want 0x1234", p.Payload)
	}
}

func TestParsePacketsType2Lookahead(t *testing.T) {
	// A Type-1 write to FDRI with word_count==0 is followed by a Type-2
	// header carrying the true word count.
	data := bigEndianWords(
		SyncWord,
		type1Header(OpWrite, RegFDRI, 0),
		type2Header(OpWrite, 2),
		0x11111111, 0x22222222,
	)

	var got []Packet
	err := ParsePackets(data, func(p Packet) (bool, error) {
		got = append(got, p)
		return true, nil
	})
	if err != nil {
		t.Fatalf("ParsePackets: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d packets, want 1", len(got))
	}
	p := got[0]
	if p.Kind != HeaderType2 || p.Register != RegFDRI || p.WordCount != 2 {
		t.Errorf("unexpected packet: %+v", p)
	}
	if len(p.Payload) != 8 {
		t.Errorf("payload len = %d, want 8", len(p.Payload))
	}
}

func TestParsePacketsRejectsBarePayloadOverflow(t *testing.T) {
	data := bigEndianWords(
		SyncWord,
		type1Header(OpWrite, RegFAR, 5), // claims 5 words, none present
	)
	err := ParsePackets(data, func(p Packet) (bool, error) { return true, nil })
	if !errors.Is(err, ErrPayloadOverflow) {
		t.Errorf("err = %v, want ErrPayloadOverflow", err)
	}
}

func TestParsePacketsRejectsMissingSync(t *testing.T) {
	data := bigEndianWords(0x01020304, 0x05060708)
	err := ParsePackets(data, func(p Packet) (bool, error) { return true, nil })
	if !errors.Is(err, ErrSyncNotFound) {
		t.Errorf("err = %v, want ErrSyncNotFound", err)
	}
}

func TestParsePacketsStopsOnHandlerRequest(t *testing.T) {
	data := bigEndianWords(
		SyncWord,
		type1Header(OpNop, RegCRC, 0),
		type1Header(OpNop, RegCRC, 0),
		type1Header(OpNop, RegCRC, 0),
	)

	count := 0
	err := ParsePackets(data, func(p Packet) (bool, error) {
		count++
		return count < 2, nil
	})
	if err != nil {
		t.Fatalf("ParsePackets: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestRegisterStringUnknownFallsBackToRSVD(t *testing.T) {
	if got := Register(29).String(); got != "RSVD29" {
		t.Errorf("Register(29).String() = %q, want RSVD29", got)
	}
}

func TestFindSyncSkipsDuplicates(t *testing.T) {
	data := bigEndianWords(
		SyncWord, SyncWord, SyncWord,
		type1Header(OpWrite, RegFAR, 1), 0x00001234,
	)
	pos, err := findSync(data)
	if err != nil {
		t.Fatalf("findSync: %v", err)
	}
	if pos != 12 {
		t.Errorf("findSync returned %d, want 12 (past all three sync words)", pos)
	}
}

func TestParsePacketsToleratesMidStreamSync(t *testing.T) {
	// A SYNC word reappearing between ordinary headers must be silently
	// skipped, not treated as an unhandled packet.
	data := bigEndianWords(
		SyncWord,
		type1Header(OpWrite, RegFAR, 1), 0x00000000,
		SyncWord,
		type1Header(OpWrite, RegCRC, 1), 0x00000000,
	)

	var got []Packet
	err := ParsePackets(data, func(p Packet) (bool, error) {
		got = append(got, p)
		return true, nil
	})
	if err != nil {
		t.Fatalf("ParsePackets: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d packets, want 2", len(got))
	}
	if got[0].Register != RegFAR || got[1].Register != RegCRC {
		t.Errorf("unexpected packets: %+v", got)
	}
}

func TestParsePacketsRejectsPendingLookaheadNotFollowedByType2(t *testing.T) {
	// A zero-count Type-1 write sets up a lookahead for a Type-2
	// continuation; any other header in that slot is malformed.
	data := bigEndianWords(
		SyncWord,
		type1Header(OpWrite, RegFDRI, 0),
		type1Header(OpWrite, RegFAR, 1), 0x00000000,
	)
	err := ParsePackets(data, func(p Packet) (bool, error) { return true, nil })
	if !errors.Is(err, ErrUnhandledPacket) {
		t.Errorf("err = %v, want ErrUnhandledPacket", err)
	}
}
