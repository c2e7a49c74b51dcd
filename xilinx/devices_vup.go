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

// XCVU9P (Virtex UltraScale+) IDCODE, as published in Xilinx configuration
// user guides.
const xcvu9pIDCode = 0x04B31093

// xcvu9pRAMB36 is a DELIBERATELY PARTIAL, illustrative RAMB36E2 tile table
// for XCVU9P. Unlike the XC7Z0xx tables in devices_v7.go, no full
// synthesis-derived tile list for this device was available to ground
// this catalog entry on (see DESIGN.md). The handful of entries below
// exercise the RAMB36E2 code path end to end but MUST NOT be treated as a
// complete or vendor-accurate tile map; substitute-brams/dump-brams
// against a real XCVU9P bitstream will only see these coordinates.
// xcvu9pPadding is UG570's 123-word (492-byte) configuration frame size,
// plus the 20 extra pipeline words UltraScale+'s deeper readback pipeline
// prepends ahead of a SLR's real frame data in an FDRO capture.
var xcvu9pPadding = ReadbackPadding{FrameSizeWords: 123, FrontPipelineWords: 20}

func init() {
	RegisterDevice(NewDevice("xcvu9p", xcvu9pIDCode, xcvu9pRAMB36, false, xcvu9pPadding))
}

var xcvu9pRAMB36 = func() []BRAM {
	entries := [][3]uint64{
		{0, 0, 0x00000000},
		{0, 1, 0x00000BA0},
		{0, 2, 0x00001740},
		{1, 0, 0x00F00000},
		{1, 1, 0x00F00BA0},
	}
	out := make([]BRAM, len(entries))
	for i, e := range entries {
		out[i] = NewRAMB36E2(uint(e[0]), uint(e[1]), e[2], 0)
	}
	return out
}()
