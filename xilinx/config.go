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
)

// WriteMode tracks the configuration controller's write-protection state,
// entered by writing CMD register values NUL/WCFG/MFW.
type WriteMode int

const (
	// ReadOnly rejects every frame write. This is the controller's state
	// before any CMD is issued, and the state NUL returns it to.
	ReadOnly WriteMode = iota
	// WriteOnce permits writing a frame address exactly once; subsequent
	// writes to an already-written frame address are silently skipped.
	WriteOnce
	// Overwrite permits writing any frame address any number of times.
	Overwrite
)

func (m WriteMode) String() string {
	switch m {
	case ReadOnly:
		return "ReadOnly"
	case WriteOnce:
		return "WriteOnce"
	case Overwrite:
		return "Overwrite"
	default:
		return fmt.Sprintf("WriteMode(%d)", int(m))
	}
}

// configContext models the configuration controller's register state for
// one SLR's configuration stream. Register 0x1E (RSVD30, "switch-SLR")
// pushes a fresh context for the nested sub-stream it introduces; the
// engine pops back to the parent context once the sub-stream is exhausted.
type configContext struct {
	far         uint32
	idcode      uint32
	hasIDCode   bool
	writeMode   WriteMode
	writeBitmap map[uint32]struct{}
	sawFDRI     bool
	sawFDRO     bool
}

func newConfigContext() *configContext {
	return &configContext{writeBitmap: make(map[uint32]struct{})}
}

// CanWriteFrame reports whether the frame at frameAddr may be written,
// per the write-mode gating table:
//
//	ReadOnly   -> never
//	WriteOnce  -> only if this frame address has not been written before
//	Overwrite  -> always
func (c *configContext) CanWriteFrame(frameAddr uint32) bool {
	switch c.writeMode {
	case Overwrite:
		return true
	case WriteOnce:
		_, written := c.writeBitmap[frameAddr]
		return !written
	default:
		return false
	}
}

// MarkFrameWrite records that frameAddr has now been written, for
// WriteOnce gating.
func (c *configContext) MarkFrameWrite(frameAddr uint32) {
	c.writeBitmap[frameAddr] = struct{}{}
}

// ConfigHooks are invoked by ConfigEngine as it walks a configuration
// stream. Every hook is optional; a nil hook is simply skipped. Hooks
// return an error to abort the walk.
type ConfigHooks struct {
	// OnWrite is called for every register write packet, after the
	// engine has already applied any state-machine effect the register
	// carries (CMD/IDCODE/FAR/RSVD30).
	OnWrite func(ctx *EngineContext, p Packet) error
	// OnRead is called for every register read packet.
	OnRead func(ctx *EngineContext, p Packet) error
	// OnNop is called for every NOP packet.
	OnNop func(ctx *EngineContext, p Packet) error
	// OnReserved is called for every reserved-opcode packet.
	OnReserved func(ctx *EngineContext, p Packet) error
	// OnFrameData is called once per FDRI/MFWR write packet, with the
	// SLR-relative frame address the write started at.
	OnFrameData func(ctx *EngineContext, p Packet, startFrame uint32) error
}

// EngineContext exposes the current configuration state to hooks: the
// active SLR index (0 for the outermost stream) and the controller
// register state for that SLR.
type EngineContext struct {
	SLRIndex   int
	BaseOffset int // byte offset, within the original root buffer, of this SLR's local stream
	far        *configContext
}

func (c *EngineContext) FAR() uint32            { return c.far.far }
func (c *EngineContext) IDCode() (uint32, bool) { return c.far.idcode, c.far.hasIDCode }
func (c *EngineContext) WriteMode() WriteMode   { return c.far.writeMode }

// AbsolutePayloadRange returns p's payload byte range translated into the
// coordinate space of the original root buffer passed to Process.
func (c *EngineContext) AbsolutePayloadRange(p Packet) (start, end int) {
	return c.BaseOffset + p.PayloadOffset, c.BaseOffset + p.PayloadOffset + len(p.Payload)
}

// ConfigEngine replays the register-level side effects of a configuration
// stream: FAR tracking, IDCODE capture, the write-mode state machine, and
// SLR context stacking on RSVD30 ("switch-SLR").
//
// Grounded on config_engine.cpp's context_switch_guard + on_config_write
// dispatch: onConfigWrite handles each register with controller-visible
// side effects (CMD via onCmd, IDCODE, FAR, FDRI, MFWR), and a RSVD30
// write with a non-empty payload recurses via onSwitchSLR into a fresh
// pushed context exactly as context_switch_guard does.
//
// FDRI writes are rejected in ReadOnly mode and MFWR writes outside
// Overwrite mode. The engine does not apply frame-grained WriteOnce
// skipping (CanWriteFrame/MarkFrameWrite); it rejects a second FDRI write
// in one SLR instead.
type ConfigEngine struct {
	Hooks ConfigHooks

	stack       []*configContext
	baseOffsets []int
}

// Process walks every packet in data, starting a root (SLR 0) context.
func (e *ConfigEngine) Process(data []byte) error {
	e.stack = []*configContext{newConfigContext()}
	e.baseOffsets = []int{0}
	return ParsePackets(data, e.dispatch)
}

func (e *ConfigEngine) top() *configContext {
	return e.stack[len(e.stack)-1]
}

func (e *ConfigEngine) ectx() *EngineContext {
	return &EngineContext{
		SLRIndex:   len(e.stack) - 1,
		BaseOffset: e.baseOffsets[len(e.baseOffsets)-1],
		far:        e.top(),
	}
}

func (e *ConfigEngine) dispatch(p Packet) (bool, error) {
	switch p.Op {
	case OpWrite:
		if err := e.onConfigWrite(p); err != nil {
			return false, err
		}
		if e.Hooks.OnWrite != nil {
			if err := e.Hooks.OnWrite(e.ectx(), p); err != nil {
				return false, err
			}
		}
	case OpRead:
		if p.Register == RegFDRO {
			e.top().sawFDRO = true
		}
		if e.Hooks.OnRead != nil {
			if err := e.Hooks.OnRead(e.ectx(), p); err != nil {
				return false, err
			}
		}
	case OpNop:
		if e.Hooks.OnNop != nil {
			if err := e.Hooks.OnNop(e.ectx(), p); err != nil {
				return false, err
			}
		}
	default:
		if e.Hooks.OnReserved != nil {
			if err := e.Hooks.OnReserved(e.ectx(), p); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}

func (e *ConfigEngine) onConfigWrite(p Packet) error {
	ctx := e.top()

	switch p.Register {
	case RegCMD:
		if len(p.Payload) < 4 {
			return nil
		}
		return e.onCmd(Cmd(binary.BigEndian.Uint32(p.Payload) & 0x1F))

	case RegIDCODE:
		if len(p.Payload) < 4 {
			return nil
		}
		idcode := binary.BigEndian.Uint32(p.Payload)
		if ctx.hasIDCode && ctx.idcode != idcode {
			return fmt.Errorf("%w: IDCODE %#08x written after %#08x in the same SLR", ErrIdcodeMismatch, idcode, ctx.idcode)
		}
		ctx.idcode = idcode
		ctx.hasIDCode = true
		return nil

	case RegFAR:
		if len(p.Payload) < 4 {
			return nil
		}
		ctx.far = binary.BigEndian.Uint32(p.Payload)
		return nil

	case RegRSVD30:
		if len(p.Payload) == 0 {
			return nil
		}
		return e.onSwitchSLR(p)

	case RegFDRI:
		if ctx.writeMode == ReadOnly {
			return fmt.Errorf("%w: FDRI write while the controller is in ReadOnly mode", ErrUnsupportedBitstream)
		}
		if ctx.sawFDRI {
			return fmt.Errorf("%w: multiple FDRI writes in one SLR (compressed bitstream)", ErrUnsupportedBitstream)
		}
		ctx.sawFDRI = true
		if e.Hooks.OnFrameData != nil {
			return e.Hooks.OnFrameData(e.ectx(), p, ctx.far)
		}
		return nil

	case RegMFWR:
		if ctx.writeMode != Overwrite {
			return fmt.Errorf("%w: MFWR write while the controller is in %s mode", ErrUnsupportedBitstream, ctx.writeMode)
		}
		if e.Hooks.OnFrameData != nil {
			return e.Hooks.OnFrameData(e.ectx(), p, ctx.far)
		}
		return nil
	}

	return nil
}

func (e *ConfigEngine) onCmd(c Cmd) error {
	ctx := e.top()
	switch c {
	case CmdNul:
		ctx.writeMode = ReadOnly
	case CmdWcfg:
		ctx.writeMode = WriteOnce
	case CmdMfw:
		ctx.writeMode = Overwrite
	}
	return nil
}

// onSwitchSLR recurses into a fresh context for the nested sub-stream
// carried by an RSVD30 write, mirroring context_switch_guard's
// push-then-pop discipline via an explicit stack instead of RAII.
func (e *ConfigEngine) onSwitchSLR(p Packet) error {
	parentBase := e.baseOffsets[len(e.baseOffsets)-1]
	e.stack = append(e.stack, newConfigContext())
	e.baseOffsets = append(e.baseOffsets, parentBase+p.PayloadOffset)

	err := ParsePackets(p.Payload, e.dispatch)

	e.stack = e.stack[:len(e.stack)-1]
	e.baseOffsets = e.baseOffsets[:len(e.baseOffsets)-1]
	return err
}
