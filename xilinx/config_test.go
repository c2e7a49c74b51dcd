package xilinx

import (
	"errors"
	"testing"
)

func cmdWord(c Cmd) uint32 { return uint32(c) }

func TestConfigEngineTracksIDCodeAndFAR(t *testing.T) {
	data := bigEndianWords(
		SyncWord,
		type1Header(OpWrite, RegIDCODE, 1), 0x03722093,
		type1Header(OpWrite, RegFAR, 1), 0x00000010,
	)

	eng := &ConfigEngine{}
	var sawIDCode uint32
	var sawFAR uint32
	eng.Hooks.OnWrite = func(ctx *EngineContext, p Packet) error {
		if p.Register == RegIDCODE {
			sawIDCode, _ = ctx.IDCode()
		}
		if p.Register == RegFAR {
			sawFAR = ctx.FAR()
		}
		return nil
	}

	if err := eng.Process(data); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if sawIDCode != 0x03722093 {
		t.Errorf("idcode = %#x, want 0x03722093", sawIDCode)
	}
	if sawFAR != 0x10 {
		t.Errorf("far = %#x, want 0x10", sawFAR)
	}
}

func TestConfigEngineWriteModeTransitions(t *testing.T) {
	data := bigEndianWords(
		SyncWord,
		type1Header(OpWrite, RegCMD, 1), cmdWord(CmdWcfg),
	)

	eng := &ConfigEngine{}
	var mode WriteMode
	eng.Hooks.OnWrite = func(ctx *EngineContext, p Packet) error {
		if p.Register == RegCMD {
			mode = ctx.WriteMode()
		}
		return nil
	}
	if err := eng.Process(data); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if mode != WriteOnce {
		t.Errorf("mode = %v, want WriteOnce", mode)
	}
}

func TestConfigContextCanWriteFrameGating(t *testing.T) {
	c := newConfigContext()

	c.writeMode = ReadOnly
	if c.CanWriteFrame(1) {
		t.Errorf("ReadOnly: CanWriteFrame should be false")
	}

	c.writeMode = WriteOnce
	if !c.CanWriteFrame(1) {
		t.Errorf("WriteOnce: first write to frame 1 should be allowed")
	}
	c.MarkFrameWrite(1)
	if c.CanWriteFrame(1) {
		t.Errorf("WriteOnce: second write to frame 1 should be rejected")
	}
	if !c.CanWriteFrame(2) {
		t.Errorf("WriteOnce: first write to frame 2 should be allowed")
	}

	c.writeMode = Overwrite
	if !c.CanWriteFrame(1) {
		t.Errorf("Overwrite: write to already-written frame should be allowed")
	}
}

func TestConfigEngineRejectsSecondFDRIWrite(t *testing.T) {
	data := bigEndianWords(
		SyncWord,
		type1Header(OpWrite, RegCMD, 1), cmdWord(CmdWcfg),
		type1Header(OpWrite, RegFDRI, 1), 0x00000000,
		type1Header(OpWrite, RegFDRI, 1), 0x00000000,
	)

	eng := &ConfigEngine{}
	eng.Hooks.OnFrameData = func(ctx *EngineContext, p Packet, startFrame uint32) error { return nil }
	err := eng.Process(data)
	if !errors.Is(err, ErrUnsupportedBitstream) {
		t.Errorf("err = %v, want ErrUnsupportedBitstream", err)
	}
}

func TestConfigEngineSwitchSLRPushesAndPopsContext(t *testing.T) {
	nested := bigEndianWords(
		SyncWord,
		type1Header(OpWrite, RegIDCODE, 1), 0xAAAAAAAA,
	)
	data := bigEndianWords(
		SyncWord,
		type1Header(OpWrite, RegIDCODE, 1), 0x11111111,
	)
	data = append(data, bigEndianWords(type1Header(OpWrite, RegRSVD30, uint32(len(nested)/4)))...)
	data = append(data, nested...)

	eng := &ConfigEngine{}
	var slrIndices []int
	eng.Hooks.OnWrite = func(ctx *EngineContext, p Packet) error {
		if p.Register == RegIDCODE {
			slrIndices = append(slrIndices, ctx.SLRIndex)
		}
		return nil
	}
	if err := eng.Process(data); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(slrIndices) != 2 || slrIndices[0] != 0 || slrIndices[1] != 1 {
		t.Errorf("slrIndices = %v, want [0 1]", slrIndices)
	}
}
